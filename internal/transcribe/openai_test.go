package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const verboseJSON = `{
  "text": "hello world again",
  "segments": [
    {"text": " hello", "start": 0.0, "end": 1.2},
    {"text": "world", "start": 1.2, "end": 2.0},
    {"text": "again", "start": 2.0, "end": 3.1}
  ]
}`

func audioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio_test.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestClient(url string) *Client {
	c := NewClient("test-key", url, "")
	c.retryPause = time.Millisecond
	return c
}

func TestTranscribeMapsSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("language = %q", got)
		}
		w.Write([]byte(verboseJSON))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Transcribe(context.Background(), audioFixture(t), "en")
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "hello world again" {
		t.Errorf("full text = %q", res.Text)
	}
	if len(res.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(res.Segments))
	}
	if s := res.Segments[0]; s.Text != "hello" || s.Start != 0 || s.End != 1.2 {
		t.Errorf("first segment = %+v", s)
	}
}

func TestTranscribeRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(verboseJSON))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), audioFixture(t), "en")
	if err != nil {
		t.Fatalf("third attempt should have succeeded: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("API called %d times, want 3", got)
	}
}

func TestTranscribeFailsAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), audioFixture(t), "en")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("API called %d times, want exactly 3", got)
	}
}

func TestTranscribeMissingKey(t *testing.T) {
	c := NewClient("", "", "")
	if _, err := c.Transcribe(context.Background(), audioFixture(t), "en"); err == nil {
		t.Fatal("expected configuration error")
	}
}
