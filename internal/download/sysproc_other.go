//go:build !windows

package download

import "os/exec"

func hideConsoleWindow(*exec.Cmd) {}
