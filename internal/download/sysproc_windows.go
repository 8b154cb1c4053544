//go:build windows

package download

import (
	"os/exec"
	"syscall"
)

// hideConsoleWindow keeps the subprocess from flashing a console window.
func hideConsoleWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
