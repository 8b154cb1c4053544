// Package translate rewrites timed subtitle segments into a target language
// using a remote language model, one segment at a time with neighboring
// segments supplied as context.
package translate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tubescribe/backend/internal/srt"
)

// Translator translates a single subtitle line. contextText carries the
// surrounding lines and may be empty.
type Translator interface {
	Line(ctx context.Context, text, targetLang, contextText string) (string, error)
}

// contextRange is how many neighboring segments on each side feed the
// per-line translation context.
const contextRange = 2

// ContextWindow joins the text of up to contextRange neighbors on each side
// of cues[i], excluding the segment itself.
func ContextWindow(cues []srt.Cue, i int) string {
	start := i - contextRange
	if start < 0 {
		start = 0
	}
	end := i + contextRange + 1
	if end > len(cues) {
		end = len(cues)
	}
	parts := make([]string, 0, end-start-1)
	for j := start; j < end; j++ {
		if j == i {
			continue
		}
		parts = append(parts, cues[j].Text)
	}
	return strings.Join(parts, " ")
}

// Cues translates every segment in order, preserving timing. A failed
// segment is degraded in place with a sentinel embedding the reason so one
// bad line never aborts the batch. onProgress (optional) is called after
// each segment with (done, total).
func Cues(ctx context.Context, tr Translator, cues []srt.Cue, targetLang string, onProgress func(done, total int)) ([]srt.Cue, error) {
	out := make([]srt.Cue, len(cues))
	failed := 0
	for i, cue := range cues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := tr.Line(ctx, cue.Text, targetLang, ContextWindow(cues, i))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed++
			text = fmt.Sprintf("[translation failed: %v]", err)
		}

		out[i] = srt.Cue{
			Text:  normalizeWhitespace(text),
			Start: cue.Start,
			End:   cue.End,
		}
		if onProgress != nil {
			onProgress(i+1, len(cues))
		}
	}
	if failed > 0 {
		log.Printf("[translate] %d/%d segments degraded to sentinel text", failed, len(cues))
	}
	return out, nil
}

// normalizeWhitespace collapses runs of whitespace to single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
