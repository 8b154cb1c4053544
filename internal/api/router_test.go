package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tubescribe/backend/internal/auth"
	"github.com/tubescribe/backend/internal/config"
	"github.com/tubescribe/backend/internal/db"
	"github.com/tubescribe/backend/internal/job"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	queue := job.NewQueue(database.Conn())
	t.Cleanup(queue.Stop)

	cfg := &config.Config{CORSOrigins: []string{"*"}}
	router := NewRouter(database, auth.NewJWTService("test-secret"), cfg, queue)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, username, password string) (string, int) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Token string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	return out.Token, resp.StatusCode
}

func postTranscript(t *testing.T, srv *httptest.Server, token string, payload map[string]interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/transcripts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return resp
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	token, status := login(t, srv, "admin", "secret")
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	if _, status := login(t, srv, "admin", "wrong"); status != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", status)
	}
}

func TestTranscriptsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := postTranscript(t, srv, "", map[string]interface{}{
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCreateTranscript(t *testing.T) {
	srv := newTestServer(t)
	token, _ := login(t, srv, "admin", "secret")

	resp := postTranscript(t, srv, token, map[string]interface{}{
		"url":         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"target_lang": "fa",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	var j job.Job
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if j.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video_id = %q", j.VideoID)
	}
	if j.Status != job.StatusPending {
		t.Errorf("status = %q, want pending", j.Status)
	}
}

func TestCreateTranscriptRejectsBadURL(t *testing.T) {
	srv := newTestServer(t)
	token, _ := login(t, srv, "admin", "secret")

	for _, payload := range []map[string]interface{}{
		{"url": "https://example.com/not-a-video"},
		{"url": ""},
		{},
	} {
		resp := postTranscript(t, srv, token, payload)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %v: status = %d, want 400", payload, resp.StatusCode)
		}
	}
}
