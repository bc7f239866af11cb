package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	envconfig "meeting-minutes/internal/config"
)

// Config is the complete runtime configuration of the service
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	OpenAI   OpenAIConfig   `yaml:"openai,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Storage  StorageConfig  `yaml:"storage,omitempty"`
	Database DatabaseConfig `yaml:"database,omitempty"`
}

// PipelineConfig controls the chunked transcription pipeline.
// WindowSeconds and Concurrency are fixed for the lifetime of a process.
type PipelineConfig struct {
	WindowSeconds     int    `yaml:"window_seconds"`
	Concurrency       int    `yaml:"concurrency"`
	SegmentTimeoutSec int    `yaml:"segment_timeout_sec,omitempty"`
	FFmpegPath        string `yaml:"ffmpeg_path,omitempty"`
	FFprobePath       string `yaml:"ffprobe_path,omitempty"`
	WorkDir           string `yaml:"work_dir,omitempty"`
}

// OpenAIConfig selects models and endpoint of the OpenAI compatible service
type OpenAIConfig struct {
	BaseURL            string `yaml:"base_url,omitempty"`
	TranscriptionModel string `yaml:"transcription_model,omitempty"`
	SummaryModel       string `yaml:"summary_model,omitempty"`
	SystemPromptPath   string `yaml:"system_prompt_path,omitempty"`
}

// ServerConfig represents HTTP server settings
type ServerConfig struct {
	Host           string `yaml:"host,omitempty"`
	Port           string `yaml:"port,omitempty"`
	Environment    string `yaml:"environment,omitempty"`
	UploadDir      string `yaml:"upload_dir,omitempty"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes,omitempty"`
	StaticDir      string `yaml:"static_dir,omitempty"`
}

// StorageConfig selects where finished summaries are archived
type StorageConfig struct {
	ArchiveDir string       `yaml:"archive_dir,omitempty"`
	Minio      *MinioConfig `yaml:"minio,omitempty"`
}

// MinioConfig enables archiving to an S3 compatible bucket
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// DatabaseConfig selects the job record store
type DatabaseConfig struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// SegmentTimeout returns the per-call timeout, zero when disabled
func (p PipelineConfig) SegmentTimeout() time.Duration {
	return time.Duration(p.SegmentTimeoutSec) * time.Second
}

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

// LoadConfig loads configuration from a YAML file. An empty path yields DefaultConfig.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML bytes, expands ${ENV} references, applies defaults and validates
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func expandValue(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}"))
	}
	return value
}

// expandEnvironmentVariables expands ${VAR} values in the fields that usually hold secrets or paths
func (c *Config) expandEnvironmentVariables() {
	c.OpenAI.BaseURL = expandValue(c.OpenAI.BaseURL)
	c.OpenAI.SystemPromptPath = expandValue(c.OpenAI.SystemPromptPath)
	c.Database.DSN = expandValue(c.Database.DSN)
	c.Server.UploadDir = expandValue(c.Server.UploadDir)
	c.Server.StaticDir = expandValue(c.Server.StaticDir)
	c.Storage.ArchiveDir = expandValue(c.Storage.ArchiveDir)

	if m := c.Storage.Minio; m != nil {
		m.Endpoint = expandValue(m.Endpoint)
		m.AccessKey = expandValue(m.AccessKey)
		m.SecretKey = expandValue(m.SecretKey)
		m.Bucket = expandValue(m.Bucket)
	}
}

// setDefaults sets default values for the configuration
func (c *Config) setDefaults() {
	if c.Pipeline.WindowSeconds == 0 {
		c.Pipeline.WindowSeconds = envconfig.DefaultWindowSeconds
	}
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = envconfig.DefaultConcurrency
	}
	if c.Pipeline.FFmpegPath == "" {
		c.Pipeline.FFmpegPath = envconfig.DefaultFFmpegPath
	}
	if c.Pipeline.FFprobePath == "" {
		c.Pipeline.FFprobePath = envconfig.DefaultFFprobePath
	}

	if c.OpenAI.TranscriptionModel == "" {
		c.OpenAI.TranscriptionModel = envconfig.DefaultTranscriptionModel
	}
	if c.OpenAI.SummaryModel == "" {
		c.OpenAI.SummaryModel = envconfig.DefaultSummaryModel
	}
	if c.OpenAI.SystemPromptPath == "" {
		c.OpenAI.SystemPromptPath = envconfig.DefaultSystemPrompt
	}

	if c.Server.Host == "" {
		c.Server.Host = envconfig.DefaultHost
	}
	if c.Server.Port == "" {
		c.Server.Port = envconfig.DefaultHTTPPortFromEnv()
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = envconfig.DefaultUploadDir
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = envconfig.DefaultMaxUploadBytes
	}

	if c.Storage.ArchiveDir == "" {
		c.Storage.ArchiveDir = envconfig.DefaultArchiveDir
	}

	if c.Database.Driver == "" {
		c.Database.Driver = envconfig.DefaultDatabaseDriver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = envconfig.DefaultDatabaseDSN
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := envconfig.ValidateWindow(c.Pipeline.WindowSeconds); err != nil {
		return err
	}
	if err := envconfig.ValidateConcurrency(c.Pipeline.Concurrency, "pipeline"); err != nil {
		return err
	}
	if err := envconfig.ValidateTimeout(c.Pipeline.SegmentTimeout(), "segment"); err != nil {
		return err
	}
	if c.OpenAI.BaseURL != "" {
		if err := envconfig.ValidateURL(c.OpenAI.BaseURL, "openai base"); err != nil {
			return err
		}
	}
	if err := envconfig.ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid database driver '%s'", c.Database.Driver)
	}

	if m := c.Storage.Minio; m != nil {
		if m.Endpoint == "" || m.Bucket == "" {
			return fmt.Errorf("minio storage requires endpoint and bucket")
		}
	}

	return nil
}
