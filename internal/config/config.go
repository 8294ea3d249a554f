// Package config assembles the API server configuration from defaults, an
// optional YAML file and environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "textdigest/pkg/config"
)

// FileEnv names the environment variable holding the optional YAML file path.
const FileEnv = "TEXTDIGEST_CONFIG"

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig              `yaml:"server"`
	Log       LogConfig                 `yaml:"log"`
	Summary   SummaryConfig             `yaml:"summary"`
	HTTP      HTTPConfig                `yaml:"http"`
	RateLimit pkgconfig.RateLimitConfig `yaml:"ratelimit"`
}

// ServerConfig controls the listener and its lifecycle.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Version         string        `yaml:"version"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SummaryConfig bounds summarization requests.
type SummaryConfig struct {
	DefaultMaxLength int `yaml:"default_max_length"`
	MaxLengthLimit   int `yaml:"max_length_limit"`
	MaxInputChars    int `yaml:"max_input_chars"`
}

// HTTPConfig bounds individual HTTP requests.
type HTTPConfig struct {
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Version:         "dev",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Summary: SummaryConfig{
			DefaultMaxLength: 150,
			MaxLengthLimit:   5000,
			MaxInputChars:    100000,
		},
		HTTP: HTTPConfig{
			MaxBodyBytes:   1 << 20,
			RequestTimeout: 10 * time.Second,
		},
		RateLimit: pkgconfig.DefaultRateLimitConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// TEXTDIGEST_CONFIG if set, then environment variables. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := pkgconfig.GetEnvString(FileEnv, ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	pkgconfig.RecordLoad()
	return &cfg, nil
}

// mergeFile overlays the keys present in the YAML file onto c.
// The path comes from the operator's environment, not from requests.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- operator supplied path
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = pkgconfig.GetEnvString("SERVER_ADDR", c.Server.Addr)
	c.Server.Version = pkgconfig.GetEnvString("VERSION", c.Server.Version)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Log.Level = pkgconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = pkgconfig.GetEnvString("LOG_FORMAT", c.Log.Format)

	c.Summary.DefaultMaxLength = pkgconfig.GetEnvInt("SUMMARY_MAX_LENGTH", c.Summary.DefaultMaxLength)
	c.Summary.MaxLengthLimit = pkgconfig.GetEnvInt("SUMMARY_MAX_LENGTH_LIMIT", c.Summary.MaxLengthLimit)
	c.Summary.MaxInputChars = pkgconfig.GetEnvInt("SUMMARY_MAX_INPUT_CHARS", c.Summary.MaxInputChars)

	c.HTTP.MaxBodyBytes = pkgconfig.GetEnvInt64("HTTP_MAX_BODY_BYTES", c.HTTP.MaxBodyBytes)
	c.HTTP.RequestTimeout = pkgconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)

	c.RateLimit = pkgconfig.LoadRateLimitConfig(c.RateLimit)
}

// Validate reports every out of range setting at once.
func (c *Config) Validate() error {
	var errs []error
	reject := func(field string, err error) {
		pkgconfig.RecordValidationError(field)
		errs = append(errs, err)
	}

	if c.Server.Addr == "" {
		reject("server.addr", errors.New("server addr is required"))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		reject("server.shutdown_timeout", fmt.Errorf("shutdown_timeout: %w", err))
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		reject("log.format", fmt.Errorf("log format must be json or text, got %q", c.Log.Format))
	}

	if c.Summary.DefaultMaxLength <= 0 {
		reject("summary.default_max_length",
			fmt.Errorf("default_max_length must be positive, got %d", c.Summary.DefaultMaxLength))
	}
	if c.Summary.MaxLengthLimit < c.Summary.DefaultMaxLength {
		reject("summary.max_length_limit", fmt.Errorf("max_length_limit (%d) cannot be below default_max_length (%d)",
			c.Summary.MaxLengthLimit, c.Summary.DefaultMaxLength))
	}
	if c.Summary.MaxInputChars <= 0 {
		reject("summary.max_input_chars",
			fmt.Errorf("max_input_chars must be positive, got %d", c.Summary.MaxInputChars))
	}

	if c.HTTP.MaxBodyBytes <= 0 {
		reject("http.max_body_bytes", fmt.Errorf("max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if err := pkgconfig.ValidateDurationRange(c.HTTP.RequestTimeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		reject("http.request_timeout", fmt.Errorf("request_timeout: %w", err))
	}

	return errors.Join(errs...)
}
