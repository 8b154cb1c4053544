package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tubescribe/backend/internal/db"
	"github.com/tubescribe/backend/internal/db/models"
	"github.com/tubescribe/backend/internal/job"
)

// Service runs transcript jobs through the pipeline and archives the outcome.
type Service struct {
	pipeline *Pipeline
	database *db.Database
}

func NewService(p *Pipeline, database *db.Database) *Service {
	return &Service{pipeline: p, database: database}
}

// HandleJob processes a transcript job from the queue.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, report func(progress float64, stage string)) (json.RawMessage, error) {
	var params job.TranscribeParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}

	log.Printf("[pipeline] starting request: video=%s target=%q srt=%v",
		j.VideoID, params.TargetLang, params.EmitSRT)

	result, err := s.pipeline.Run(ctx, Request{
		URL:        params.URL,
		TargetLang: params.TargetLang,
		EmitSRT:    params.EmitSRT,
	}, func(e Event) {
		report(e.Progress, string(e.State))
	})
	if err != nil {
		return nil, err
	}

	if s.database != nil {
		saveErr := s.database.SaveTranscript(&models.Transcript{
			ID:           j.ID,
			VideoID:      result.VideoID,
			Language:     result.Language,
			Source:       result.Source,
			SegmentCount: result.SegmentCount,
			SRTPath:      result.SRTPath,
		})
		if saveErr != nil {
			log.Printf("[pipeline] could not archive transcript for job %s: %v", j.ID, saveErr)
		}
	}

	return json.Marshal(result)
}
