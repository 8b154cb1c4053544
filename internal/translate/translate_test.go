package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tubescribe/backend/internal/srt"
)

func cuesFixture(n int) []srt.Cue {
	cues := make([]srt.Cue, n)
	for i := range cues {
		cues[i] = srt.Cue{Text: fmt.Sprintf("line%d", i), Start: float64(i), End: float64(i) + 1}
	}
	return cues
}

func TestContextWindow(t *testing.T) {
	cues := cuesFixture(6)
	cases := []struct {
		i    int
		want string
	}{
		{0, "line1 line2"},
		{1, "line0 line2 line3"},
		{2, "line0 line1 line3 line4"},
		{5, "line3 line4"},
	}
	for _, c := range cases {
		if got := ContextWindow(cues, c.i); got != c.want {
			t.Errorf("ContextWindow(i=%d) = %q, want %q", c.i, got, c.want)
		}
	}
}

func TestContextWindowSingleSegment(t *testing.T) {
	if got := ContextWindow(cuesFixture(1), 0); got != "" {
		t.Errorf("single-segment context should be empty, got %q", got)
	}
}

type fakeTranslator struct {
	failOn map[int]bool
	calls  int
}

func (f *fakeTranslator) Line(_ context.Context, text, targetLang, _ string) (string, error) {
	f.calls++
	if f.failOn[f.calls] {
		return "", errors.New("provider exploded")
	}
	return "  " + targetLang + ":\t" + text + "  ", nil
}

func TestCuesPreservesTimingAndNormalizes(t *testing.T) {
	cues := cuesFixture(3)
	out, err := Cues(context.Background(), &fakeTranslator{}, cues, "fa", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d cues, want 3", len(out))
	}
	for i, c := range out {
		if c.Start != cues[i].Start || c.End != cues[i].End {
			t.Errorf("cue %d timing changed: %+v", i, c)
		}
		if want := "fa: line" + fmt.Sprint(i); c.Text != want {
			t.Errorf("cue %d text = %q, want %q", i, c.Text, want)
		}
	}
}

func TestCuesDegradesFailedSegmentInPlace(t *testing.T) {
	cues := cuesFixture(3)
	tr := &fakeTranslator{failOn: map[int]bool{2: true}}
	out, err := Cues(context.Background(), tr, cues, "fa", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out[1].Text, "[translation failed:") {
		t.Errorf("failed segment not degraded: %q", out[1].Text)
	}
	if out[1].Start != cues[1].Start || out[1].End != cues[1].End {
		t.Error("degraded segment lost its timing")
	}
	// Neighbors unaffected.
	if strings.Contains(out[0].Text, "failed") || strings.Contains(out[2].Text, "failed") {
		t.Error("sentinel leaked into neighboring segments")
	}
}

func TestCuesReportsProgress(t *testing.T) {
	var seen []int
	_, err := Cues(context.Background(), &fakeTranslator{}, cuesFixture(4), "fa", func(done, total int) {
		if total != 4 {
			t.Errorf("total = %d, want 4", total)
		}
		seen = append(seen, done)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 4 || seen[0] != 1 || seen[3] != 4 {
		t.Errorf("unexpected progress sequence %v", seen)
	}
}

func TestCuesStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Cues(ctx, &fakeTranslator{}, cuesFixture(3), "fa", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpenAITranslatorLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Temperature != 0.3 {
			t.Errorf("temperature = %v", req.Temperature)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "Line: hello there") {
			t.Errorf("user prompt missing line: %q", req.Messages[1].Content)
		}
		if !strings.Contains(req.Messages[1].Content, "Surrounding context: before after") {
			t.Errorf("user prompt missing context: %q", req.Messages[1].Content)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"سلام"}}]}`))
	}))
	defer srv.Close()

	tr := NewOpenAITranslator("key", srv.URL, "")
	got, err := tr.Line(context.Background(), "hello there", "fa", "before after")
	if err != nil {
		t.Fatal(err)
	}
	if got != "سلام" {
		t.Errorf("Line = %q", got)
	}
}

func TestOpenAITranslatorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewOpenAITranslator("key", srv.URL, "")
	if _, err := tr.Line(context.Background(), "x", "fa", ""); err == nil {
		t.Fatal("expected provider error")
	}
}
