package job

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue manages job persistence and dispatching. A single worker goroutine
// drains the pending channel, so requests never overlap.
type Queue struct {
	db       *sql.DB
	mu       sync.RWMutex
	pending  chan string // job IDs to process
	cancels  map[string]context.CancelFunc
	handlers map[JobType]JobHandler
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewQueue creates and starts a job queue backed by db.
func NewQueue(db *sql.DB) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		db:       db,
		pending:  make(chan string, 100),
		cancels:  make(map[string]context.CancelFunc),
		handlers: make(map[JobType]JobHandler),
		ctx:      ctx,
		cancel:   cancel,
	}

	// Resume any pending/running jobs from DB on startup
	go q.resumeJobs()

	// Single worker: one active request at a time
	go q.worker()

	return q
}

// RegisterHandler registers a handler for a job type
func (q *Queue) RegisterHandler(jobType JobType, handler JobHandler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Enqueue creates a new job and adds it to the queue
func (q *Queue) Enqueue(jobType JobType, videoID string, params interface{}) (*Job, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	job := &Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    StatusPending,
		VideoID:   videoID,
		Params:    paramsJSON,
		Progress:  0,
		CreatedAt: time.Now(),
	}

	_, err = q.db.Exec(`
		INSERT INTO jobs (id, type, status, video_id, params, progress, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Type, job.Status, job.VideoID, job.Params, job.Progress, job.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	q.push(job.ID)

	return job, nil
}

// GetJob retrieves a job by ID
func (q *Queue) GetJob(id string) (*Job, error) {
	row := q.db.QueryRow(`
		SELECT id, type, status, video_id, params, progress, stage, result, error, created_at, started_at, completed_at
		FROM jobs WHERE id = ?`, id)
	return scanJob(row.Scan)
}

// ListJobs returns all jobs ordered by creation time (newest first)
func (q *Queue) ListJobs() ([]*Job, error) {
	rows, err := q.db.Query(`
		SELECT id, type, status, video_id, params, progress, stage, result, error, created_at, started_at, completed_at
		FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(scan func(...interface{}) error) (*Job, error) {
	job := &Job{}
	var params, result sql.NullString
	var stage, errMsg sql.NullString
	var startedAt, completedAt sql.NullTime

	err := scan(&job.ID, &job.Type, &job.Status, &job.VideoID, &params, &job.Progress,
		&stage, &result, &errMsg, &job.CreatedAt, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if params.Valid {
		job.Params = json.RawMessage(params.String)
	}
	if result.Valid {
		job.Result = json.RawMessage(result.String)
	}
	if stage.Valid {
		job.Stage = stage.String
	}
	if errMsg.Valid {
		job.Error = errMsg.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return job, nil
}

// CancelJob cancels a pending or running job
func (q *Queue) CancelJob(id string) error {
	q.mu.Lock()
	if cancelFn, ok := q.cancels[id]; ok {
		cancelFn()
		delete(q.cancels, id)
	}
	q.mu.Unlock()

	_, err := q.db.Exec(`
		UPDATE jobs SET status = ?, completed_at = ?
		WHERE id = ? AND status IN (?, ?)`,
		StatusCancelled, time.Now(), id, StatusPending, StatusRunning,
	)
	return err
}

// RetryJob re-queues a failed or cancelled job
func (q *Queue) RetryJob(id string) error {
	res, err := q.db.Exec(`
		UPDATE jobs SET status = ?, progress = 0, stage = NULL, error = NULL, started_at = NULL, completed_at = NULL
		WHERE id = ? AND status IN (?, ?)`,
		StatusPending, id, StatusFailed, StatusCancelled,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("job %s is not in a retryable state", id)
	}
	q.push(id)
	return nil
}

// push hands a job ID to the worker. When the buffer is full the handoff
// moves to a goroutine that blocks until the worker drains a slot, so no
// accepted job is ever silently dropped.
func (q *Queue) push(id string) {
	select {
	case q.pending <- id:
	default:
		log.Printf("[job] queue buffer full, job %s waits for a free slot", id)
		go func() {
			select {
			case q.pending <- id:
			case <-q.ctx.Done():
			}
		}()
	}
}

// UpdateProgress updates the progress and stage of a running job
func (q *Queue) UpdateProgress(id string, progress float64, stage string) {
	q.db.Exec("UPDATE jobs SET progress = ?, stage = ? WHERE id = ?", progress, stage, id)
}

// Stop shuts down the queue
func (q *Queue) Stop() {
	q.cancel()
}

// worker processes jobs from the pending channel one at a time
func (q *Queue) worker() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case jobID := <-q.pending:
			q.processJob(jobID)
		}
	}
}

// processJob runs a single job
func (q *Queue) processJob(jobID string) {
	job, err := q.GetJob(jobID)
	if err != nil {
		log.Printf("[job] failed to load job %s: %v", jobID, err)
		return
	}

	// Skip if not pending (cancelled while queued, or already handled)
	if job.Status != StatusPending {
		return
	}

	q.mu.RLock()
	handler, ok := q.handlers[job.Type]
	q.mu.RUnlock()

	if !ok {
		q.failJob(job, fmt.Sprintf("no handler for job type: %s", job.Type))
		return
	}

	// Mark as running
	now := time.Now()
	q.db.Exec("UPDATE jobs SET status = ?, started_at = ? WHERE id = ?",
		StatusRunning, now, job.ID)

	// Per-job cancellable context
	ctx, cancelFn := context.WithCancel(q.ctx)
	q.mu.Lock()
	q.cancels[job.ID] = cancelFn
	q.mu.Unlock()

	report := func(progress float64, stage string) {
		q.UpdateProgress(job.ID, progress, stage)
	}

	result, err := handler(ctx, job, report)

	// Read the context state before releasing it: after cancelFn below,
	// ctx.Err() is always non-nil and would mask success and failure alike.
	cancelled := ctx.Err() != nil

	q.mu.Lock()
	delete(q.cancels, job.ID)
	q.mu.Unlock()
	cancelFn()

	switch {
	case cancelled:
		// CancelJob already recorded the cancelled status
		log.Printf("[job] job %s cancelled", job.ID)
	case err != nil:
		q.failJob(job, err.Error())
	default:
		q.completeJob(job, result)
	}
}

func (q *Queue) completeJob(job *Job, result json.RawMessage) {
	now := time.Now()
	q.db.Exec("UPDATE jobs SET status = ?, progress = 1.0, result = ?, completed_at = ? WHERE id = ?",
		StatusCompleted, string(result), now, job.ID)
	log.Printf("[job] job %s completed", job.ID)
}

func (q *Queue) failJob(job *Job, errMsg string) {
	now := time.Now()
	q.db.Exec("UPDATE jobs SET status = ?, error = ?, completed_at = ? WHERE id = ?",
		StatusFailed, errMsg, now, job.ID)
	log.Printf("[job] job %s failed: %s", job.ID, errMsg)
}

// resumeJobs re-queues any pending jobs found in DB on startup
func (q *Queue) resumeJobs() {
	// Mark any previously "running" jobs as pending (server restarted)
	q.db.Exec("UPDATE jobs SET status = ? WHERE status = ?", StatusPending, StatusRunning)

	rows, err := q.db.Query("SELECT id FROM jobs WHERE status = ? ORDER BY created_at ASC", StatusPending)
	if err != nil {
		log.Printf("[job] failed to resume jobs: %v", err)
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		q.push(id)
		count++
	}

	if count > 0 {
		log.Printf("[job] resumed %d pending jobs", count)
	}
}
