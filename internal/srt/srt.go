package srt

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Cue is a single span of subtitle text anchored to start/end offsets
// (seconds) within the media.
type Cue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DefaultDuration is used when a cue carries no usable end time.
const DefaultDuration = 3.0

// FormatTimestamp renders seconds as an SRT timestamp: HH:MM:SS,mmm.
// Hours are unbounded and milliseconds are truncated, never rounded.
func FormatTimestamp(seconds float64) string {
	// Small epsilon absorbs float representation error (3661.234 must not
	// land on 3661233.999... ms) without rounding up a real half-millisecond.
	totalMs := int64(math.Floor(seconds*1000 + 1e-6))
	if totalMs < 0 {
		totalMs = 0
	}
	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	s := totalMs / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// Render converts cues to an SRT document: 1-based consecutive numbering,
// timestamp range line, text, blank line between entries. Cues with End at
// or before Start get Start+DefaultDuration.
func Render(cues []Cue) string {
	entries := make([]string, 0, len(cues))
	for i, cue := range cues {
		end := cue.End
		if end <= cue.Start {
			end = cue.Start + DefaultDuration
		}
		entries = append(entries, fmt.Sprintf("%d\n%s --> %s\n%s\n",
			i+1, FormatTimestamp(cue.Start), FormatTimestamp(end), cue.Text))
	}
	return strings.Join(entries, "\n")
}

// FileName is the deterministic subtitle name for a video/language pair.
func FileName(videoID, lang string) string {
	return fmt.Sprintf("subtitle_%s_%s.srt", videoID, lang)
}

// WriteFile renders cues and persists them under dir, returning the path.
func WriteFile(dir, videoID, lang string, cues []Cue) (string, error) {
	path := filepath.Join(dir, FileName(videoID, lang))
	if err := os.WriteFile(path, []byte(Render(cues)), 0644); err != nil {
		return "", fmt.Errorf("save subtitle: %w", err)
	}
	return path, nil
}
