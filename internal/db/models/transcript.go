package models

import "time"

// Transcript is the persisted record of a completed transcript request.
// ID matches the job that produced it.
type Transcript struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	Source       string    `json:"source"` // "captions" or "speech"
	SegmentCount int       `json:"segment_count"`
	SRTPath      string    `json:"srt_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
