package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Port     int
	DataPath string
	DBPath   string
	LogPath  string

	// OutputPath receives subtitle files; WorkPath holds the transient
	// audio assets (deleted by request end).
	OutputPath string
	WorkPath   string

	OpenAIKey       string
	OpenAIBaseURL   string
	TranscribeModel string
	TranslateModel  string

	YtdlpBin    string
	CaptionsURL string
	SourceLang  string

	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "./data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:     port,
		DataPath: dataPath,
		DBPath:   getEnv("DB_PATH", filepath.Join(dataPath, "tubescribe.db")),
		LogPath:  getEnv("LOG_PATH", filepath.Join(dataPath, "tubescribe.log")),

		OutputPath: getEnv("OUTPUT_PATH", filepath.Join(dataPath, "subtitles")),
		WorkPath:   getEnv("WORK_PATH", filepath.Join(dataPath, "work")),

		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		TranscribeModel: getEnv("TRANSCRIBE_MODEL", "whisper-1"),
		TranslateModel:  getEnv("TRANSLATE_MODEL", "gpt-4o-mini"),

		YtdlpBin:    getEnv("YTDLP_BIN", "yt-dlp"),
		CaptionsURL: os.Getenv("CAPTIONS_URL"),
		SourceLang:  getEnv("SOURCE_LANG", "en"),

		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
