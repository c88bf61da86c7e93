package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port 8080, got %q", cfg.Port)
	}
	if cfg.StorageBackend != BackendCSV {
		t.Errorf("Expected default backend %q, got %q", BackendCSV, cfg.StorageBackend)
	}
	if cfg.DataDir != "data" {
		t.Errorf("Expected default DataDir 'data', got %q", cfg.DataDir)
	}
	if cfg.ImageBackend != ImagesLocal {
		t.Errorf("Expected default image backend %q, got %q", ImagesLocal, cfg.ImageBackend)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("Expected default TokenTTL 168h, got %v", cfg.TokenTTL)
	}
	if cfg.ImageMaxBytes() != 5*1024*1024 {
		t.Errorf("Expected 5MB upload limit, got %d", cfg.ImageMaxBytes())
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "JWT_SECRET=from-file\nPORT=9090\nDATA_DIR=/tmp/catalog\nWATCH_DATA=true\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("Expected JWTSecret from .env, got %q", cfg.JWTSecret)
	}
	if cfg.Port != "7070" {
		t.Errorf("Expected environment to override .env PORT, got %q", cfg.Port)
	}
	if cfg.DataDir != "/tmp/catalog" {
		t.Errorf("Expected DataDir from .env, got %q", cfg.DataDir)
	}
	if !cfg.WatchData {
		t.Error("Expected WatchData to be true")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			JWTSecret:      "secret",
			StorageBackend: BackendCSV,
			DataDir:        "data",
			ImageBackend:   ImagesLocal,
			ImageDir:       "images",
			ImageMaxMB:     5,
			TokenTTL:       time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "unknown storage", mutate: func(c *Config) { c.StorageBackend = "mongo" }, wantErr: "STORAGE_BACKEND"},
		{name: "postgres without url", mutate: func(c *Config) { c.StorageBackend = BackendPostgres }, wantErr: "DATABASE_URL"},
		{name: "supabase without key", mutate: func(c *Config) {
			c.ImageBackend = ImagesSupabase
			c.SupabaseURL = "https://example.supabase.co"
		}, wantErr: "SUPABASE"},
		{name: "unknown images", mutate: func(c *Config) { c.ImageBackend = "s3" }, wantErr: "IMAGE_BACKEND"},
		{name: "zero upload limit", mutate: func(c *Config) { c.ImageMaxMB = 0 }, wantErr: "IMAGE_MAX_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
