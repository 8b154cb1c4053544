// Package download obtains an audio-only rendition of a video by driving the
// yt-dlp command-line tool.
package download

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tubescribe/backend/internal/videoid"
)

// Downloader invokes yt-dlp to fetch the audio track of a video.
type Downloader struct {
	Binary  string // yt-dlp executable; "yt-dlp" when empty
	WorkDir string // where the transient asset is written
}

func New(binary, workDir string) *Downloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Downloader{Binary: binary, WorkDir: workDir}
}

// AudioFileName is the deterministic transient asset name for a video.
func AudioFileName(videoID string) string {
	return fmt.Sprintf("audio_%s.mp3", videoID)
}

// Audio downloads the audio-only rendition for videoID and returns the path
// of the downloaded file. onProgress (optional) receives fractional progress
// in [0,100] as the tool emits download-percentage lines. The caller owns the
// returned file and must delete it when the request ends.
func (d *Downloader) Audio(ctx context.Context, videoID string, onProgress func(float64)) (string, error) {
	outputPath := filepath.Join(d.WorkDir, AudioFileName(videoID))

	cmd := exec.CommandContext(ctx, d.Binary,
		"--extract-audio",
		"--audio-format", "mp3",
		"-o", outputPath,
		"--newline",
		videoid.WatchURL(videoID),
	)
	hideConsoleWindow(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("downloader stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", d.Binary, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if pct, ok := parseProgressLine(scanner.Text()); ok && onProgress != nil {
			onProgress(pct)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			os.Remove(outputPath)
			return "", ctx.Err()
		}
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = err.Error()
		}
		return "", fmt.Errorf("download failed: %s", diag)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("downloader exited cleanly but %s is missing", outputPath)
	}

	log.Printf("[download] audio ready: %s", outputPath)
	return outputPath, nil
}

// parseProgressLine extracts the percentage from a yt-dlp progress line such
// as "[download]  42.3% of 3.52MiB at 1.21MiB/s ETA 00:02".
func parseProgressLine(line string) (float64, bool) {
	if !strings.Contains(line, "[download]") || !strings.Contains(line, "%") {
		return 0, false
	}
	before, _, _ := strings.Cut(line, "%")
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return 0, false
	}
	pct, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}
