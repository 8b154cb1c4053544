package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tubescribe/backend/internal/api"
	"github.com/tubescribe/backend/internal/auth"
	"github.com/tubescribe/backend/internal/captions"
	"github.com/tubescribe/backend/internal/config"
	"github.com/tubescribe/backend/internal/db"
	"github.com/tubescribe/backend/internal/download"
	"github.com/tubescribe/backend/internal/job"
	"github.com/tubescribe/backend/internal/pipeline"
	"github.com/tubescribe/backend/internal/transcribe"
	"github.com/tubescribe/backend/internal/translate"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// Ensure working directories exist
	for _, dir := range []string{cfg.DataPath, cfg.OutputPath, cfg.WorkPath} {
		os.MkdirAll(dir, 0755)
	}

	// Log to console and the append log file
	if logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
		log.Printf("could not open log file %s: %v", cfg.LogPath, err)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	if cfg.OpenAIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not set; requests without captions will fail")
	}

	// Assemble the transcript pipeline
	p := &pipeline.Pipeline{
		Captions:    captions.NewClient(cfg.CaptionsURL, cfg.SourceLang),
		Downloader:  download.New(cfg.YtdlpBin, cfg.WorkPath),
		Transcriber: transcribe.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel),
		Translator:  translate.NewOpenAITranslator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranslateModel),
		SourceLang:  cfg.SourceLang,
		OutputDir:   cfg.OutputPath,
	}

	// Job queue: one request at a time, persisted across restarts
	queue := job.NewQueue(database.Conn())
	defer queue.Stop()
	queue.RegisterHandler(job.JobTranscribe, pipeline.NewService(p, database).HandleJob)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, queue)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Subtitle output: %s", cfg.OutputPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		queue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
