// Package captions retrieves pre-existing timed transcripts for a video from
// the YouTube timedtext endpoint.
package captions

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tubescribe/backend/internal/srt"
)

const defaultBaseURL = "https://video.google.com/timedtext"

// Result is the two-variant outcome of a caption lookup. A missing or
// unusable transcript is not an error: the orchestrator treats every
// unavailable reason the same way and falls back to audio transcription.
type Result struct {
	Available bool
	Segments  []srt.Cue
	Reason    string // why captions were unavailable; empty on success
}

func notAvailable(format string, args ...interface{}) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Client queries the captions provider for a fixed source language.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewClient(baseURL, language string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// timedtext XML: <transcript><text start="1.3" dur="2.5">line</text>...</transcript>
type transcriptXML struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch looks up a transcript for videoID. All failure modes collapse into
// Result{Available: false}; only the reason text differs.
func (c *Client) Fetch(ctx context.Context, videoID string) Result {
	u := fmt.Sprintf("%s?lang=%s&v=%s", c.baseURL, url.QueryEscape(c.language), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return notAvailable("build request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return notAvailable("captions request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return notAvailable("captions provider status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return notAvailable("read captions response: %v", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return notAvailable("no %s transcript for %s", c.language, videoID)
	}

	var tx transcriptXML
	if err := xml.Unmarshal(body, &tx); err != nil {
		return notAvailable("parse captions: %v", err)
	}

	segments := make([]srt.Cue, 0, len(tx.Texts))
	for _, t := range tx.Texts {
		// The provider entity-encodes its payload a second time inside the XML.
		text := strings.TrimSpace(html.UnescapeString(t.Text))
		if text == "" {
			continue
		}
		segments = append(segments, srt.Cue{
			Text:  text,
			Start: t.Start,
			End:   t.Start + t.Dur,
		})
	}
	if len(segments) == 0 {
		return notAvailable("transcript for %s is empty", videoID)
	}

	log.Printf("[captions] fetched %d segments for %s (lang=%s)", len(segments), videoID, c.language)
	return Result{Available: true, Segments: segments}
}
