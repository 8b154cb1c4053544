package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tubescribe/backend/internal/db"
	"github.com/tubescribe/backend/internal/db/models"
	"github.com/tubescribe/backend/internal/job"
	"github.com/tubescribe/backend/internal/videoid"
)

// TranscriptHandler exposes transcript requests over HTTP: create a job,
// poll its progress, cancel it, and download the resulting subtitle file.
type TranscriptHandler struct {
	queue    *job.Queue
	database *db.Database
}

func NewTranscriptHandler(queue *job.Queue, database *db.Database) *TranscriptHandler {
	return &TranscriptHandler{queue: queue, database: database}
}

type createTranscriptRequest struct {
	URL        string `json:"url"`
	TargetLang string `json:"target_lang,omitempty"`
	EmitSRT    *bool  `json:"emit_srt,omitempty"` // defaults to true
}

// Create validates the video reference and enqueues a transcript job.
// Unparseable input is rejected here, before any job exists.
func (h *TranscriptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		jsonError(w, "missing video URL", http.StatusBadRequest)
		return
	}
	id, ok := videoid.Extract(url)
	if !ok {
		jsonError(w, "invalid YouTube URL", http.StatusBadRequest)
		return
	}

	emitSRT := true
	if req.EmitSRT != nil {
		emitSRT = *req.EmitSRT
	}

	j, err := h.queue.Enqueue(job.JobTranscribe, id, job.TranscribeParams{
		URL:        url,
		TargetLang: req.TargetLang,
		EmitSRT:    emitSRT,
	})
	if err != nil {
		jsonError(w, "failed to enqueue request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// List returns all transcript jobs, newest first.
func (h *TranscriptHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.queue.ListJobs()
	if err != nil {
		jsonError(w, "failed to list jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	jsonResponse(w, jobs, http.StatusOK)
}

// Get returns one transcript job with its progress and result.
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	j, err := h.queue.GetJob(id)
	if err != nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, j, http.StatusOK)
}

// Cancel aborts a pending or running transcript job.
func (h *TranscriptHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queue.CancelJob(id); err != nil {
		jsonError(w, "failed to cancel job: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Retry re-queues a failed or cancelled transcript job.
func (h *TranscriptHandler) Retry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queue.RetryJob(id); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	jsonResponse(w, map[string]string{"status": "retrying"}, http.StatusOK)
}

// History lists completed transcripts from the archive.
func (h *TranscriptHandler) History(w http.ResponseWriter, r *http.Request) {
	transcripts, err := h.database.ListTranscripts()
	if err != nil {
		jsonError(w, "failed to list transcripts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if transcripts == nil {
		transcripts = []*models.Transcript{}
	}
	jsonResponse(w, transcripts, http.StatusOK)
}

// DownloadSRT serves the subtitle file a completed job produced.
func (h *TranscriptHandler) DownloadSRT(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.database.GetTranscript(id)
	if err != nil {
		jsonError(w, "transcript not found", http.StatusNotFound)
		return
	}
	if t.SRTPath == "" {
		jsonError(w, "no subtitle file was requested for this transcript", http.StatusNotFound)
		return
	}
	if _, err := os.Stat(t.SRTPath); err != nil {
		jsonError(w, "subtitle file missing on disk", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/x-subrip; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(t.SRTPath)+`"`)
	http.ServeFile(w, r, t.SRTPath)
}
