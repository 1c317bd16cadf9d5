package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultAddr            = ":3000"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 3 * time.Minute
	defaultBackendURL      = "http://localhost:8080/api/transcript"
	defaultCaptionsTimeout = 30 * time.Second
	defaultYouTubeTimeout  = 30 * time.Second
	defaultLanguage        = "en"
	defaultProvider        = ProviderGemini
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultGroqModel       = "llama-3.3-70b-versatile"
	defaultSummaryTimeout  = 2 * time.Minute
)

const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

type Config struct {
	GenAIAPIKey   string
	GroqAPIKey    string
	YouTubeAPIKey string
	GCPProject    string

	Server     ServerConfig     `yaml:"server"`
	Captions   CaptionsConfig   `yaml:"captions"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Groq       GroqConfig       `yaml:"groq"`
	Secrets    SecretsConfig    `yaml:"secrets"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type CaptionsConfig struct {
	Enabled    *bool         `yaml:"enabled"`
	BackendURL string        `yaml:"backend_url"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    int           `yaml:"retries"`
}

type YouTubeConfig struct {
	Direct    *bool         `yaml:"direct"`
	Innertube *bool         `yaml:"innertube"`
	Languages []string      `yaml:"languages"`
	Timeout   time.Duration `yaml:"timeout"`
}

type SummarizerConfig struct {
	Provider string        `yaml:"provider"` // "gemini" or "groq"
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

type GroqConfig struct {
	Model string `yaml:"model"`
}

// SecretsConfig names Secret Manager secrets used for API keys that are not
// set in the environment.
type SecretsConfig struct {
	GenAIAPIKey   string `yaml:"genai_api_key"`
	GroqAPIKey    string `yaml:"groq_api_key"`
	YouTubeAPIKey string `yaml:"youtube_api_key"`
}

func (c CaptionsConfig) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

func (c YouTubeConfig) DirectEnabled() bool { return c.Direct == nil || *c.Direct }

func (c YouTubeConfig) InnertubeEnabled() bool { return c.Innertube == nil || *c.Innertube }

func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, defaultConfigPath)
}

// LoadFrom builds the configuration from .env, the environment and the YAML
// file at path. A missing file is not an error.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GenAIAPIKey:   os.Getenv("GOOGLE_GENAI_API_KEY"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		GCPProject:    os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	if err := loadYAMLConfig(cfg, path); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.needsSecrets() {
		src, err := NewSecretManager(ctx, cfg.GCPProject)
		if err != nil {
			slog.Warn("Secret Manager unavailable, API keys must come from the environment", "error", err)
		} else {
			defer func() { _ = src.Close() }()
			resolveSecrets(ctx, cfg, src)
		}
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No config file found, using defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("CAPTIONS_BACKEND_URL"); url != "" {
		cfg.Captions.BackendURL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(cfg)
	applyCaptionsDefaults(cfg)
	applyYouTubeDefaults(cfg)
	applySummarizerDefaults(cfg)
	applyGroqDefaults(cfg)
}

func applyServerDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
}

func applyCaptionsDefaults(cfg *Config) {
	if cfg.Captions.BackendURL == "" {
		cfg.Captions.BackendURL = defaultBackendURL
	}
	if cfg.Captions.Timeout == 0 {
		cfg.Captions.Timeout = defaultCaptionsTimeout
	}
	if cfg.Captions.Retries < 0 {
		cfg.Captions.Retries = 0
	}
}

func applyYouTubeDefaults(cfg *Config) {
	if len(cfg.YouTube.Languages) == 0 {
		cfg.YouTube.Languages = []string{defaultLanguage}
	}
	if cfg.YouTube.Timeout == 0 {
		cfg.YouTube.Timeout = defaultYouTubeTimeout
	}
}

func applySummarizerDefaults(cfg *Config) {
	if cfg.Summarizer.Provider == "" {
		cfg.Summarizer.Provider = defaultProvider
	}
	if cfg.Summarizer.Model == "" && cfg.Summarizer.Provider == ProviderGemini {
		cfg.Summarizer.Model = defaultGeminiModel
	}
	if cfg.Summarizer.Timeout == 0 {
		cfg.Summarizer.Timeout = defaultSummaryTimeout
	}
}

func applyGroqDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

// SummarizerModel returns the model for the configured provider. A Gemini
// model left in place after switching to Groq falls back to groq.model.
func (c *Config) SummarizerModel() string {
	if c.Summarizer.Provider == ProviderGroq &&
		(c.Summarizer.Model == "" || strings.HasPrefix(c.Summarizer.Model, "gemini")) {
		return c.Groq.Model
	}
	return c.Summarizer.Model
}

func (c *Config) needsSecrets() bool {
	if c.GCPProject == "" {
		return false
	}
	return (c.GenAIAPIKey == "" && c.Secrets.GenAIAPIKey != "") ||
		(c.GroqAPIKey == "" && c.Secrets.GroqAPIKey != "") ||
		(c.YouTubeAPIKey == "" && c.Secrets.YouTubeAPIKey != "")
}
