package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	DataDir        string `mapstructure:"DATA_DIR"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	WatchData      bool   `mapstructure:"WATCH_DATA"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	AdminEmail    string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`

	ImageBackend   string `mapstructure:"IMAGE_BACKEND"`
	ImageDir       string `mapstructure:"IMAGE_DIR"`
	ImageMaxMB     int    `mapstructure:"IMAGE_MAX_MB"`
	SupabaseURL    string `mapstructure:"SUPABASE_URL"`
	SupabaseKey    string `mapstructure:"SUPABASE_KEY"`
	SupabaseBucket string `mapstructure:"SUPABASE_BUCKET"`
}

const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"

	ImagesLocal    = "local"
	ImagesSupabase = "supabase"
)

var AppConfig *Config

var defaults = map[string]any{
	"PORT":            "8080",
	"GIN_MODE":        "debug",
	"DATA_DIR":        "data",
	"STORAGE_BACKEND": BackendCSV,
	"DATABASE_URL":    "",
	"WATCH_DATA":      false,
	"JWT_SECRET":      "",
	"TOKEN_TTL":       "168h",
	"ADMIN_EMAIL":     "",
	"ADMIN_PASSWORD":  "",
	"IMAGE_BACKEND":   ImagesLocal,
	"IMAGE_DIR":       "images",
	"IMAGE_MAX_MB":    5,
	"SUPABASE_URL":    "",
	"SUPABASE_KEY":    "",
	"SUPABASE_BUCKET": "",
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	cfg, err := Load(".")
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}
	AppConfig = cfg
}

// Load reads <dir>/.env (if present) and the environment, environment winning.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks backend selections and the secrets they require.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case BackendCSV:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required for the csv backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.ImageBackend {
	case ImagesLocal:
		if c.ImageDir == "" {
			return errors.New("IMAGE_DIR is required for local images")
		}
	case ImagesSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" || c.SupabaseBucket == "" {
			return errors.New("SUPABASE_URL, SUPABASE_KEY and SUPABASE_BUCKET are required for supabase images")
		}
	default:
		return fmt.Errorf("unknown IMAGE_BACKEND %q", c.ImageBackend)
	}
	if c.ImageMaxMB <= 0 {
		return errors.New("IMAGE_MAX_MB must be positive")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// ImageMaxBytes is the upload limit in bytes.
func (c *Config) ImageMaxBytes() int64 {
	return int64(c.ImageMaxMB) * 1024 * 1024
}
