// Package config loads server settings from the environment, with an
// optional YAML overlay file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth. Empty disables bearer auth on the API.
	APIKey string `yaml:"api_key"`

	// Upload limits.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Classifier tunables.
	SimilarityCutoff float64 `yaml:"similarity_cutoff"`

	// Document registry.
	MaxDocuments int `yaml:"max_documents"`

	// Durations come from the environment only; YAML keeps to scalars.
	DocumentTTL  time.Duration `yaml:"-"`
	ReadTimeout  time.Duration `yaml:"-"`
	WriteTimeout time.Duration `yaml:"-"`
}

// Load reads settings from the environment. When DOCMODEL_CONFIG names a
// YAML file, its values are applied first and the environment overrides
// them.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("DOCMODEL_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("DOCMODEL_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.SimilarityCutoff = envFloat("SIMILARITY_CUTOFF", cfg.SimilarityCutoff)
	cfg.MaxDocuments = envInt("MAX_DOCUMENTS", cfg.MaxDocuments)
	cfg.DocumentTTL = envDuration("DOCUMENT_TTL", cfg.DocumentTTL)
	cfg.ReadTimeout = envDuration("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = envDuration("WRITE_TIMEOUT", cfg.WriteTimeout)

	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:             "8090",
		MaxUploadBytes:   52428800, // 50MB
		SimilarityCutoff: 0.7,
		MaxDocuments:     200,
		DocumentTTL:      24 * time.Hour,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     120 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.SimilarityCutoff <= 0 || c.SimilarityCutoff > 1 {
		return fmt.Errorf("SIMILARITY_CUTOFF must be in (0, 1]")
	}
	if c.MaxDocuments <= 0 {
		return fmt.Errorf("MAX_DOCUMENTS must be positive")
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} references in the YAML overlay.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values;
// unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
