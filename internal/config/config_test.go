package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret") // silence the random-secret warning path

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.SourceLang != "en" {
		t.Errorf("SourceLang = %q", cfg.SourceLang)
	}
	if cfg.YtdlpBin != "yt-dlp" {
		t.Errorf("YtdlpBin = %q", cfg.YtdlpBin)
	}
	if cfg.DBPath != filepath.Join(cfg.DataPath, "tubescribe.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9999")
	t.Setenv("SOURCE_LANG", "ja")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	if cfg.Port != 9999 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.SourceLang != "ja" {
		t.Errorf("SourceLang = %q", cfg.SourceLang)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}
