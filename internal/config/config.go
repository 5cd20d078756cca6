package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdfcheck/internal/fetcher"
	"github.com/kpauljoseph/pdfcheck/internal/pdf"
	"github.com/kpauljoseph/pdfcheck/pkg/logger"
	"github.com/kpauljoseph/pdfcheck/pkg/utils"
)

type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	MaxBodySize string        `yaml:"max_body_size"`
}

type Config struct {
	Backend  string     `yaml:"backend"`
	LogLevel string     `yaml:"log_level"`
	ScanDir  string     `yaml:"scan_dir"`
	HTTP     HTTPConfig `yaml:"http"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = string(pdf.DefaultBackend)
	}
	if c.LogLevel == "" {
		c.LogLevel = logger.LevelInfo.String()
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = fetcher.DefaultTimeout
	}
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := pdf.New(pdf.Backend(c.Backend)); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	if c.HTTP.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("http.timeout must not be negative, got %v", c.HTTP.Timeout))
	}
	if _, err := c.MaxBodyBytes(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// MaxBodyBytes parses http.max_body_size. Zero means unlimited.
func (c *Config) MaxBodyBytes() (int64, error) {
	n, err := utils.ParseSize(c.HTTP.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("http.max_body_size: %w", err)
	}
	return n, nil
}

func (c *Config) Level() logger.LogLevel {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}
