// Package videoid extracts the 11-character YouTube video identifier from
// user-supplied URLs in any of the known shapes.
package videoid

import "regexp"

// Patterns are tried in order; the first match wins, so the generic
// watch-URL shape takes priority when a string could satisfy several.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
	regexp.MustCompile(`(?:youtu\.be/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:shorts/)([0-9A-Za-z_-]{11})`),
}

// Extract returns the video ID contained in raw, or ok=false when no known
// URL shape matches. Pure string matching, no network access.
func Extract(raw string) (id string, ok bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL is the canonical watch URL for an extracted ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
