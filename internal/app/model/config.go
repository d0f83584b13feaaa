package model

import "time"

// PipelineConfig is the process-wide configuration, resolved once at startup
// and read-only for the lifetime of the run. Components receive it by
// pointer and must not mutate it.
type PipelineConfig struct {
	// Remote ASR endpoint, e.g. http://192.168.1.111:5000/transcribe.
	ASRURL string `yaml:"asr_url" validate:"required,url"`

	// Transcriber backend: "http" for the ASR HTTP service, "openai" for
	// the OpenAI Whisper API.
	Provider string `yaml:"provider" validate:"oneof=http openai"`

	// Directory layout.
	SourceDir     string `yaml:"source_dir" validate:"required"`
	TranscriptDir string `yaml:"transcript_dir" validate:"required"`
	ProcessedDir  string `yaml:"processed_dir" validate:"required"`

	// Durable store. Driver selects the DAO implementation.
	DBDriver    string `yaml:"db_driver" validate:"oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`

	// Best-effort webhook; empty disables notification.
	WebhookURL string `yaml:"webhook_url" validate:"omitempty,url"`

	// Supported source extensions, matched case-insensitively.
	Extensions []string `yaml:"extensions" validate:"min=1"`

	// Loop timing.
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`
	ErrorBackoff time.Duration `yaml:"error_backoff" validate:"gt=0"`

	// Transcription retry policy.
	MaxAttempts    int           `yaml:"max_attempts" validate:"gte=1"`
	RetryBackoff   time.Duration `yaml:"retry_backoff" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	NotifyTimeout  time.Duration `yaml:"notify_timeout" validate:"gt=0"`

	// Canonical audio parameters required by the ASR service.
	FFmpegPath string `yaml:"ffmpeg_path"`
	SampleRate int    `yaml:"sample_rate" validate:"gt=0"`
	Channels   int    `yaml:"channels" validate:"gt=0"`

	// Status server.
	ListenAddr string `yaml:"listen_addr"`
	LogFile    string `yaml:"log_file"`

	// Optional mirror of archived originals to S3-compatible storage.
	Mirror MirrorConfig `yaml:"mirror"`
}

// MirrorConfig configures the optional object-storage copy of archived
// recordings. Disabled unless Endpoint and Bucket are both set.
type MirrorConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// MirrorEnabled reports whether archived originals should also be uploaded
// to object storage.
func (c *PipelineConfig) MirrorEnabled() bool {
	return c.Mirror.Endpoint != "" && c.Mirror.Bucket != ""
}
