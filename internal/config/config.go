package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the content API.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"atlas-cms"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"ATLAS_API_PORT" envDefault:"8380"`
	LogLevel        string        `env:"ATLAS_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"ATLAS_LOG_FORMAT" envDefault:"console"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no default)
	DatabaseURL string `env:"DB_POSTGRESQL_DSN,notEmpty"`

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Storage Backend Selection
	StorageBackend string `env:"ATLAS_STORAGE_BACKEND" envDefault:"s3"` // Options: "s3" or "local"

	// Local Storage Configuration
	LocalStoragePath    string `env:"ATLAS_LOCAL_STORAGE_PATH"`
	LocalStorageBaseURL string `env:"ATLAS_LOCAL_STORAGE_BASE_URL"`

	// S3 Storage Configuration
	S3Endpoint       string `env:"ATLAS_S3_ENDPOINT"`
	S3PublicEndpoint string `env:"ATLAS_S3_PUBLIC_ENDPOINT"`
	S3Region         string `env:"ATLAS_S3_REGION" envDefault:"us-east-1"`
	S3Bucket         string `env:"ATLAS_S3_BUCKET"`
	S3AccessKeyID    string `env:"ATLAS_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"ATLAS_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle   bool   `env:"ATLAS_S3_USE_PATH_STYLE" envDefault:"true"`

	// Upload limits
	MaxFileBytes     int64 `env:"ATLAS_MAX_FILE_BYTES" envDefault:"10485760"`    // 10 MiB
	MaxBatchBytes    int64 `env:"ATLAS_MAX_BATCH_BYTES" envDefault:"104857600"`  // 100 MiB
	MaxFilesPerBatch int   `env:"ATLAS_MAX_FILES_PER_BATCH" envDefault:"50"`

	// Accepted MIME types per declared file type
	AllowedImageTypes []string `env:"ATLAS_ALLOWED_IMAGE_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif,image/webp,image/svg+xml"`
	AllowedAudioTypes []string `env:"ATLAS_ALLOWED_AUDIO_TYPES" envSeparator:"," envDefault:"audio/mpeg"`

	// Upload pipeline
	UploadConcurrency    int           `env:"ATLAS_UPLOAD_CONCURRENCY" envDefault:"2"`
	BatchTimeout         time.Duration `env:"ATLAS_BATCH_TIMEOUT" envDefault:"5m"`
	UploadRetryAttempts  int           `env:"ATLAS_UPLOAD_RETRY_ATTEMPTS" envDefault:"3"`
	UploadRetryBaseDelay time.Duration `env:"ATLAS_UPLOAD_RETRY_BASE_DELAY" envDefault:"1s"`
	UploadAttemptTimeout time.Duration `env:"ATLAS_UPLOAD_ATTEMPT_TIMEOUT" envDefault:"30s"`

	// Image transcoding
	ImageMaxDimension int           `env:"ATLAS_IMAGE_MAX_DIMENSION" envDefault:"1200"`
	ImageQuality      int           `env:"ATLAS_IMAGE_QUALITY" envDefault:"80"`
	ThumbnailWidth    int           `env:"ATLAS_THUMBNAIL_WIDTH" envDefault:"100"`
	ThumbnailQuality  int           `env:"ATLAS_THUMBNAIL_QUALITY" envDefault:"70"`
	TranscodeTimeout  time.Duration `env:"ATLAS_TRANSCODE_TIMEOUT" envDefault:"30s"`

	// Authentication
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.S3PublicEndpoint = strings.TrimSpace(cfg.S3PublicEndpoint)

	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 10 * 1024 * 1024
	}
	if cfg.MaxBatchBytes < cfg.MaxFileBytes {
		return nil, fmt.Errorf("ATLAS_MAX_BATCH_BYTES must be at least ATLAS_MAX_FILE_BYTES")
	}
	if cfg.UploadConcurrency < 1 {
		cfg.UploadConcurrency = 1
	}
	if cfg.UploadRetryAttempts < 1 {
		cfg.UploadRetryAttempts = 1
	}
	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	return backend == "" || backend == "s3"
}
