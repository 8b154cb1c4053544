package srt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{3661.234, "01:01:01,234"},
		{59.9995, "00:00:59,999"}, // truncated, not rounded up to a minute
		{0.001, "00:00:00,001"},
		{7325.5, "02:02:05,500"},
		{90000, "25:00:00,000"}, // hours past 24 stay as hours
		{-1, "00:00:00,000"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.seconds); got != c.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestRenderNumbering(t *testing.T) {
	cues := []Cue{
		{Text: "one", Start: 0, End: 1},
		{Text: "two", Start: 5, End: 7}, // gap in timing
		{Text: "three", Start: 6, End: 8},
	}
	out := Render(cues)
	blocks := strings.Split(out, "\n\n")
	if len(blocks) != len(cues) {
		t.Fatalf("got %d blocks, want %d\n%s", len(blocks), len(cues), out)
	}
	for i, block := range blocks {
		lines := strings.SplitN(block, "\n", 2)
		want := []string{"1", "2", "3"}[i]
		if lines[0] != want {
			t.Errorf("block %d numbered %q, want %q", i, lines[0], want)
		}
	}
}

func TestRenderDefaultEnd(t *testing.T) {
	out := Render([]Cue{{Text: "hi", Start: 10}})
	if !strings.Contains(out, "00:00:10,000 --> 00:00:13,000") {
		t.Errorf("missing default 3s duration:\n%s", out)
	}
}

func TestRenderIdempotent(t *testing.T) {
	cues := []Cue{
		{Text: "a", Start: 0, End: 2},
		{Text: "b", Start: 2, End: 4.5},
	}
	if Render(cues) != Render(cues) {
		t.Error("rendering the same cues twice differs")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, "dQw4w9WgXcQ", "fa", []Cue{{Text: "x", Start: 0, End: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "subtitle_dQw4w9WgXcQ_fa.srt" {
		t.Errorf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:00,000 --> 00:00:01,000\nx\n") {
		t.Errorf("unexpected content:\n%s", data)
	}
}
