package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// isSilentPath marks high-frequency polling endpoints that are only logged on
// errors (status >= 400): clients poll job progress every second or so.
func isSilentPath(path string) bool {
	return strings.HasPrefix(path, "/api/transcripts/") && strings.Count(path, "/") == 3
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		if r.Method == http.MethodGet && isSilentPath(r.URL.Path) && wrapped.statusCode < 400 {
			return
		}
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
	})
}
