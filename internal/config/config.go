// Package config loads backend configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the inference fallback chain.
type LLMConfig struct {
	// Endpoint is the generative-language API base URL.
	Endpoint string `yaml:"endpoint"`
	// APIKey is normally supplied via GEMINI_API_KEY, not the file.
	APIKey string `yaml:"api_key"`
	// Backends is the ranked model list, most capable first.
	Backends []string `yaml:"backends"`
	// AttemptTimeoutMs bounds each backend attempt.
	AttemptTimeoutMs int `yaml:"attempt_timeout_ms"`
}

// AttemptTimeout returns the per-attempt timeout as a duration.
func (c LLMConfig) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutMs) * time.Millisecond
}

// Config is the full backend configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	// RedisURL switches the range cache to Redis when set; empty keeps
	// the cache in the local SQLite database.
	RedisURL string `yaml:"redis_url"`
	// Retention caps the stored reading and session history.
	Retention int `yaml:"retention"`
	// AllowedOrigins configures CORS; "*" allows any origin.
	AllowedOrigins []string  `yaml:"allowed_origins"`
	LLM            LLMConfig `yaml:"llm"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		ListenAddr:     ":3000",
		DBPath:         filepath.Join(home, ".nasgh", "nasgh.db"),
		Retention:      100,
		AllowedOrigins: []string{"*"},
		LLM: LLMConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
			Backends: []string{
				"gemini-2.0-pro",
				"gemini-2.0-flash",
				"gemini-2.0-flash-lite",
			},
			AttemptTimeoutMs: 8000,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty or missing), then environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NASGH_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("NASGH_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("NASGH_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("NASGH_RETENTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retention = n
		}
	}
	if v := os.Getenv("NASGH_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("NASGH_GEMINI_ENDPOINT"); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("NASGH_MODELS"); v != "" {
		c.LLM.Backends = splitList(v)
	}
	if v := os.Getenv("NASGH_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LLM.AttemptTimeoutMs = n
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
