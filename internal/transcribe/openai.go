// Package transcribe converts an audio asset into timed text segments using
// a remote speech-recognition model.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tubescribe/backend/internal/srt"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"

	maxAttempts = 3
	maxFileSize = 25 * 1024 * 1024 // provider upload limit
)

// Result carries the full transcript text plus its timed segments, mapped
// one-to-one from the provider's response.
type Result struct {
	Text     string
	Segments []srt.Cue
}

// Client calls the OpenAI audio transcription API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	retryPause time.Duration
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		retryPause: time.Second,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Transcribe uploads the audio at path and returns timed segments. Any
// failure is retried with a fixed pause, up to maxAttempts total; the last
// failure propagates.
func (c *Client) Transcribe(ctx context.Context, path, language string) (*Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("audio file %s exceeds the %dMB upload limit", path, maxFileSize/(1024*1024))
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := c.transcribeOnce(ctx, path, language)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < maxAttempts {
			log.Printf("[transcribe] attempt %d/%d failed: %v", attempt, maxAttempts, err)
			select {
			case <-time.After(c.retryPause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("transcription failed after %d attempts: %w", maxAttempts, lastErr)
}

// verboseResponse is the provider's verbose_json payload, reduced to the
// fields the pipeline consumes.
type verboseResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

func (c *Client) transcribeOnce(ctx context.Context, path, language string) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, err
	}

	writer.WriteField("model", c.model)
	writer.WriteField("response_format", "verbose_json")
	if language != "" && language != "auto" {
		writer.WriteField("language", language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription API error (status %d): %s", resp.StatusCode, string(body))
	}

	var vr verboseResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("parse transcription response: %w", err)
	}

	segments := make([]srt.Cue, 0, len(vr.Segments))
	for _, s := range vr.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, srt.Cue{Text: text, Start: s.Start, End: s.End})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcription returned no segments")
	}

	log.Printf("[transcribe] %d segments from %s", len(segments), filepath.Base(path))
	return &Result{Text: vr.Text, Segments: segments}, nil
}
