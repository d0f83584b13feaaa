package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"audio-notes/internal/app/model"
)

var validate = validator.New()

// Default returns the built-in configuration, rooted at baseDir. The layout
// mirrors what the recorder deposits: recordings at the root, transcripts/
// and processed/ underneath, the sqlite store alongside.
func Default(baseDir string) *model.PipelineConfig {
	return &model.PipelineConfig{
		ASRURL:         "http://127.0.0.1:5000/transcribe",
		Provider:       "http",
		SourceDir:      baseDir,
		TranscriptDir:  filepath.Join(baseDir, "transcripts"),
		ProcessedDir:   filepath.Join(baseDir, "processed"),
		DBDriver:       "sqlite",
		SQLitePath:     filepath.Join(baseDir, "transcripts.db"),
		Extensions:     []string{".m4a", ".aac", ".acc", ".wav"},
		PollInterval:   3 * time.Second,
		ErrorBackoff:   10 * time.Second,
		MaxAttempts:    3,
		RetryBackoff:   5 * time.Second,
		RequestTimeout: 30 * time.Minute,
		NotifyTimeout:  5 * time.Second,
		FFmpegPath:     "ffmpeg",
		SampleRate:     16000,
		Channels:       1,
		ListenAddr:     ":5009",
	}
}

// Load builds the immutable pipeline configuration: built-in defaults,
// overlaid with the YAML file (if any), then environment overrides, then
// validated. The result is the only configuration object in the process;
// nothing reads mutable globals after startup.
func Load(configPath, baseDir string) (*model.PipelineConfig, error) {
	loadDotEnv()

	cfg := Default(baseDir)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.DBDriver == "sqlite" && cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite_path is required when db_driver is sqlite")
	}
	if cfg.DBDriver == "postgres" && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres_dsn is required when db_driver is postgres")
	}

	return cfg, nil
}

// loadDotEnv loads a .env file when present. Missing files are fine; the
// environment may be set system-wide.
func loadDotEnv() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyEnvOverrides(cfg *model.PipelineConfig) {
	if v := os.Getenv("ASR_HTTP_URL"); v != "" {
		cfg.ASRURL = v
	}
	if v := os.Getenv("SOURCE_DIR"); v != "" {
		cfg.SourceDir = v
	}
	if v := os.Getenv("TRANSCRIPT_DIR"); v != "" {
		cfg.TranscriptDir = v
	}
	if v := os.Getenv("PROCESSED_DIR"); v != "" {
		cfg.ProcessedDir = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
		cfg.DBDriver = "postgres"
	}
	if v := os.Getenv("FFMPEG_PATH"); v != "" {
		cfg.FFmpegPath = v
	}
}

// EnsureDirs creates the transcript and processed directories. The source
// directory is deliberately not created: if it is missing the recorder is
// misconfigured and the scanner reports it every cycle instead.
func EnsureDirs(cfg *model.PipelineConfig) error {
	for _, dir := range []string{cfg.TranscriptDir, cfg.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
