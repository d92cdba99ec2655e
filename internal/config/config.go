package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds connection settings for the export metadata database.
// Driver is either "postgres" or "sqlite3".
type DatabaseConfig struct {
	Driver             string `env:"DRIVER" envDefault:"sqlite3"`
	Host               string `env:"HOST"`
	Port               string `env:"PORT" envDefault:"5432"`
	User               string `env:"USER"`
	Password           string `env:"PASSWORD"`
	Name               string `env:"NAME"`
	SSLMode            string `env:"SSLMODE" envDefault:"disable"`
	Path               string `env:"PATH" envDefault:"summarizer.db"`
	MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// StorageConfig selects where exported documents are kept.
// Backend is one of "local", "minio" or "gcs".
type StorageConfig struct {
	Backend  string `env:"BACKEND" envDefault:"local"`
	LocalDir string `env:"LOCAL_DIR"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// GCSConfig holds Google Cloud Storage settings. Credentials come from the
// environment (ADC).
type GCSConfig struct {
	Bucket string `env:"BUCKET"`
}

// HuggingFaceConfig configures the Hugging Face inference backend.
type HuggingFaceConfig struct {
	BaseURL           string `env:"BASE_URL" envDefault:"https://api-inference.huggingface.co/models"`
	Token             string `env:"TOKEN"`
	DefaultModel      string `env:"DEFAULT_MODEL" envDefault:"sshleifer/distilbart-cnn-12-6"`
	MultilingualModel string `env:"MULTILINGUAL_MODEL" envDefault:"csebuetnlp/mT5_multilingual_XLSum"`
}

// OpenAIConfig configures the OpenAI Responses backend.
type OpenAIConfig struct {
	APIKey            string `env:"API_KEY"`
	BaseURL           string `env:"BASE_URL"`
	DefaultModel      string `env:"DEFAULT_MODEL" envDefault:"gpt-4o-mini"`
	MultilingualModel string `env:"MULTILINGUAL_MODEL" envDefault:"gpt-4o-mini"`
}

// GeminiConfig configures the Gemini API backend.
type GeminiConfig struct {
	APIKey            string `env:"API_KEY"`
	DefaultModel      string `env:"DEFAULT_MODEL" envDefault:"gemini-2.5-flash"`
	MultilingualModel string `env:"MULTILINGUAL_MODEL" envDefault:"gemini-2.5-flash"`
}

// VertexConfig configures the Vertex AI backend.
type VertexConfig struct {
	ProjectID         string `env:"PROJECT_ID"`
	Region            string `env:"REGION" envDefault:"us-central1"`
	DefaultModel      string `env:"DEFAULT_MODEL" envDefault:"gemini-1.5-pro"`
	MultilingualModel string `env:"MULTILINGUAL_MODEL" envDefault:"gemini-1.5-pro"`
}

// SummarizerConfig selects the model backend and bounds each call.
type SummarizerConfig struct {
	Backend   string        `env:"BACKEND" envDefault:"huggingface"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"120s"`
	RateLimit float64       `env:"RATE_LIMIT" envDefault:"2"`
	RateBurst int           `env:"RATE_BURST" envDefault:"4"`
}

// ExportConfig controls how long exported documents are kept.
type ExportConfig struct {
	TTL         time.Duration `env:"TTL" envDefault:"1h"`
	JanitorSpec string        `env:"JANITOR_SPEC" envDefault:"@every 10m"`
	PresignTTL  time.Duration `env:"PRESIGN_TTL" envDefault:"15m"`
	PDFCompress bool          `env:"PDF_COMPRESS" envDefault:"true"`
}

// TracingConfig mirrors the standard OTEL_* variables read at startup.
type TracingConfig struct {
	Disabled    bool   `env:"SDK_DISABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"smartsummary"`
	Protocol    string `env:"EXPORTER_OTLP_PROTOCOL" envDefault:"grpc"`
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	Sampler     string `env:"TRACES_SAMPLER" envDefault:"parentbased_traceidratio"`
	SamplerArg  string `env:"TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Timezone    string `env:"APP_TIMEZONE" envDefault:"UTC"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	BodyLimitMB int    `env:"BODY_LIMIT_MB" envDefault:"16"`

	Database    DatabaseConfig    `envPrefix:"DB_"`
	Storage     StorageConfig     `envPrefix:"STORAGE_"`
	MinIO       MinIOConfig       `envPrefix:"MINIO_"`
	GCS         GCSConfig         `envPrefix:"GCS_"`
	Summarizer  SummarizerConfig  `envPrefix:"SUMMARIZER_"`
	HuggingFace HuggingFaceConfig `envPrefix:"HF_"`
	OpenAI      OpenAIConfig      `envPrefix:"OPENAI_"`
	Gemini      GeminiConfig      `envPrefix:"GEMINI_"`
	Vertex      VertexConfig      `envPrefix:"VERTEX_"`
	Export      ExportConfig      `envPrefix:"EXPORT_"`
	Tracing     TracingConfig     `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() (*AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize lowercases the backend selectors so DB_DRIVER=Postgres and
// DB_DRIVER=postgres behave the same everywhere they are compared.
func (c *AppConfig) normalize() {
	for _, v := range []*string{&c.Database.Driver, &c.Storage.Backend, &c.Summarizer.Backend} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks the settings that depend on the selected backends.
func (c *AppConfig) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "postgres":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the postgres driver")
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite3 driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "local":
	case "minio":
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for the minio storage backend")
		}
	case "gcs":
		if c.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the gcs storage backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	switch strings.ToLower(c.Summarizer.Backend) {
	case "huggingface":
		if c.HuggingFace.BaseURL == "" {
			return fmt.Errorf("HF_BASE_URL is required for the huggingface backend")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
		}
	case "vertex":
		if c.Vertex.ProjectID == "" || c.Vertex.Region == "" {
			return fmt.Errorf("VERTEX_PROJECT_ID and VERTEX_REGION are required for the vertex backend")
		}
	default:
		return fmt.Errorf("unsupported SUMMARIZER_BACKEND %q", c.Summarizer.Backend)
	}

	if c.Summarizer.Timeout <= 0 {
		return fmt.Errorf("SUMMARIZER_TIMEOUT must be positive")
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	return nil
}
