package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Cloud         CloudConfig         `yaml:"cloud"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Gemini        GeminiConfig        `yaml:"gemini"`
}

type TranscriptionConfig struct {
	// Backend selects the transcription provider: device, cloud or local.
	Backend  string `yaml:"backend"`
	Language string `yaml:"language"`
}

type CloudConfig struct {
	BaseURL      string `yaml:"base_url"`
	PollAttempts int    `yaml:"poll_attempts"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
}

type PathsConfig struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Records     string `yaml:"records"`
	Credentials string `yaml:"credentials"`
	Temp        string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

// Load reads and validates the YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Transcription.Backend {
	case "":
		c.Transcription.Backend = "device"
	case "device", "cloud", "local":
	default:
		return fmt.Errorf("transcription.backend must be device, cloud or local, got %q", c.Transcription.Backend)
	}

	if c.Transcription.Backend == "local" && c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required for the local backend")
	}
	if c.Transcription.Backend == "cloud" && c.Cloud.BaseURL == "" {
		return fmt.Errorf("cloud.base_url is required for the cloud backend")
	}

	if c.Transcription.Language == "" {
		c.Transcription.Language = "auto"
	}
	if c.Cloud.PollAttempts == 0 {
		c.Cloud.PollAttempts = 200
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Records == "" {
		c.Paths.Records = "data/records"
	}
	if c.Paths.Credentials == "" {
		c.Paths.Credentials = "data/credentials"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
