package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobTranscribe JobType = "transcribe"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued transcript request
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	VideoID     string          `json:"video_id"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Stage       string          `json:"stage,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranscribeParams are parameters for a transcript request
type TranscribeParams struct {
	URL        string `json:"url"`
	TargetLang string `json:"target_lang,omitempty"` // empty = keep source language
	EmitSRT    bool   `json:"emit_srt"`
}

// JobHandler processes a job and returns the JSON payload stored as the job
// result. report publishes progress (0..1) plus the current pipeline stage.
type JobHandler func(ctx context.Context, job *Job, report func(progress float64, stage string)) (json.RawMessage, error)
