package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tubescribe/backend/internal/api/handlers"
	"github.com/tubescribe/backend/internal/api/middleware"
	"github.com/tubescribe/backend/internal/auth"
	"github.com/tubescribe/backend/internal/config"
	"github.com/tubescribe/backend/internal/db"
	"github.com/tubescribe/backend/internal/job"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, queue *job.Queue) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.MaxBodySize(1 << 20))
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	authHandler := handlers.NewAuthHandler(database, jwtService)
	transcriptHandler := handlers.NewTranscriptHandler(queue, database)

	// Requests fan out into paid provider calls; throttle creation.
	createLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Auth (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			r.Get("/auth/me", authHandler.Me)

			r.With(createLimiter.Handler).Post("/transcripts", transcriptHandler.Create)
			r.Get("/transcripts", transcriptHandler.List)
			r.Get("/transcripts/history", transcriptHandler.History)
			r.Get("/transcripts/{id}", transcriptHandler.Get)
			r.Delete("/transcripts/{id}", transcriptHandler.Cancel)
			r.Post("/transcripts/{id}/retry", transcriptHandler.Retry)
			r.Get("/transcripts/{id}/srt", transcriptHandler.DownloadSRT)
		})
	})

	return r
}
