// Package pipeline sequences one transcript request end to end: identify the
// video, try pre-existing captions, fall back to audio download plus speech
// transcription, optionally translate, then render and persist the subtitle
// file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tubescribe/backend/internal/captions"
	"github.com/tubescribe/backend/internal/srt"
	"github.com/tubescribe/backend/internal/transcribe"
	"github.com/tubescribe/backend/internal/translate"
	"github.com/tubescribe/backend/internal/videoid"
)

// State names one phase of a transcript request.
type State string

const (
	StateIdle             State = "idle"
	StateIdentifying      State = "identifying"
	StateFetchingCaptions State = "fetching_captions"
	StateAcquiringAudio   State = "acquiring_audio"
	StateTranscribing     State = "transcribing"
	StateTranslating      State = "translating"
	StateFormatting       State = "formatting"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Event is one observable progress update. Progress is the overall request
// fraction in [0,1]; Message is a short human-readable status.
type Event struct {
	State    State   `json:"state"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
}

// Request is one immutable transcript request.
type Request struct {
	URL        string // free-form video reference (URL or bare ID)
	TargetLang string // empty or equal to the source language: no translation
	EmitSRT    bool
}

// Result is the outcome of a successful request.
type Result struct {
	VideoID      string `json:"video_id"`
	Language     string `json:"language"`
	Source       string `json:"source"` // "captions" or "speech"
	Text         string `json:"text"`
	SRTPath      string `json:"srt_path,omitempty"`
	SegmentCount int    `json:"segment_count"`
}

// ErrInvalidInput marks an unparseable video reference; surfaced immediately,
// never retried.
var ErrInvalidInput = errors.New("invalid video reference")

// CaptionFetcher, AudioAcquirer and Transcriber are the pipeline's external
// collaborators, narrowed to what one request needs.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID string) captions.Result
}

type AudioAcquirer interface {
	Audio(ctx context.Context, videoID string, onProgress func(float64)) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path, language string) (*transcribe.Result, error)
}

// Pipeline holds the collaborators shared by all requests. Requests are
// serialized by the job queue; the pipeline itself keeps no mutable state.
type Pipeline struct {
	Captions    CaptionFetcher
	Downloader  AudioAcquirer
	Transcriber Transcriber
	Translator  translate.Translator
	SourceLang  string // caption/transcription hint, e.g. "en"
	OutputDir   string // where subtitle files land
}

// Run executes one request. Events (optional) observes every state
// transition and sub-progress step. The transient audio asset, if any, is
// removed before Run returns, on every path.
func (p *Pipeline) Run(ctx context.Context, req Request, events func(Event)) (res *Result, err error) {
	emit := func(e Event) {
		if events != nil {
			events(e)
		}
	}

	var audioPath string
	defer func() {
		if audioPath != "" {
			if rmErr := os.Remove(audioPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Printf("[pipeline] could not delete transient audio %s: %v", audioPath, rmErr)
			}
		}
		if err != nil {
			emit(Event{State: StateFailed, Message: err.Error()})
		}
	}()

	emit(Event{State: StateIdentifying, Message: "Extracting video identifier"})
	id, ok := videoid.Extract(strings.TrimSpace(req.URL))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInput, req.URL)
	}

	emit(Event{State: StateFetchingCaptions, Progress: 0.05, Message: "Checking for an existing transcript"})
	var (
		segments []srt.Cue
		fullText string
		source   string
	)
	if capRes := p.Captions.Fetch(ctx, id); capRes.Available {
		segments = capRes.Segments
		source = "captions"
		texts := make([]string, len(segments))
		for i, s := range segments {
			texts[i] = s.Text
		}
		fullText = strings.Join(texts, " ")
	} else {
		// Caption failures are not errors: fall back to the audio path.
		log.Printf("[pipeline] no captions for %s (%s), falling back to speech transcription", id, capRes.Reason)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		emit(Event{State: StateAcquiringAudio, Progress: 0.1, Message: "Downloading audio"})
		audioPath, err = p.Downloader.Audio(ctx, id, func(pct float64) {
			emit(Event{
				State:    StateAcquiringAudio,
				Progress: 0.1 + 0.3*pct/100,
				Message:  fmt.Sprintf("Downloading audio... %.0f%%", pct),
			})
		})
		if err != nil {
			return nil, fmt.Errorf("acquire audio: %w", err)
		}

		emit(Event{State: StateTranscribing, Progress: 0.4, Message: "Transcribing audio"})
		tr, err := p.Transcriber.Transcribe(ctx, audioPath, p.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("transcribe: %w", err)
		}
		segments = tr.Segments
		fullText = tr.Text
		source = "speech"
	}

	lang := p.SourceLang
	if req.TargetLang != "" && req.TargetLang != p.SourceLang {
		lang = req.TargetLang
		emit(Event{State: StateTranslating, Progress: 0.5, Message: "Translating segments"})
		segments, err = translate.Cues(ctx, p.Translator, segments, req.TargetLang, func(done, total int) {
			emit(Event{
				State:    StateTranslating,
				Progress: 0.5 + 0.4*float64(done)/float64(total),
				Message:  fmt.Sprintf("Translating subtitles... %d%%", done*100/total),
			})
		})
		if err != nil {
			return nil, fmt.Errorf("translate: %w", err)
		}
		texts := make([]string, len(segments))
		for i, s := range segments {
			texts[i] = s.Text
		}
		fullText = strings.Join(texts, "\n")
	}

	result := &Result{
		VideoID:      id,
		Language:     lang,
		Source:       source,
		Text:         fullText,
		SegmentCount: len(segments),
	}

	if req.EmitSRT {
		emit(Event{State: StateFormatting, Progress: 0.95, Message: "Writing subtitle file"})
		result.SRTPath, err = srt.WriteFile(p.OutputDir, id, lang, segments)
		if err != nil {
			return nil, err
		}
	}

	emit(Event{State: StateDone, Progress: 1, Message: "Completed"})
	return result, nil
}
