package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8090" {
		t.Errorf("port = %q, want 8090", cfg.Port)
	}
	if cfg.SimilarityCutoff != 0.7 {
		t.Errorf("cutoff = %v, want 0.7", cfg.SimilarityCutoff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SIMILARITY_CUTOFF", "0.85")
	t.Setenv("DOCUMENT_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.SimilarityCutoff != 0.85 {
		t.Errorf("cutoff = %v", cfg.SimilarityCutoff)
	}
	if cfg.DocumentTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.DocumentTTL)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	t.Setenv("TEST_DOC_KEY", "secret-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7070\"\napi_key: ${TEST_DOC_KEY}\nmax_documents: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCMODEL_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7070" {
		t.Errorf("port = %q, want 7070", cfg.Port)
	}
	if cfg.APIKey != "secret-from-env" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.MaxDocuments != 10 {
		t.Errorf("max documents = %d", cfg.MaxDocuments)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCMODEL_CONFIG", path)
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9999" {
		t.Errorf("port = %q, env should win", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"zero upload", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"cutoff too high", func(c *Config) { c.SimilarityCutoff = 1.5 }, true},
		{"zero documents", func(c *Config) { c.MaxDocuments = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
