package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"book-rec.yaml",
	"book-rec.yml",
	"/etc/book-rec/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order. path overrides the file lookup.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// PORT is honoured for platforms that assign the listen port.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BOOKREC_ADDR") == "" {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	"bookrec_catalog_path":           "catalog.path",
	"bookrec_covers_dir":             "catalog.covers_dir",
	"bookrec_covers_url_prefix":      "catalog.covers_url_prefix",
	"bookrec_embed_provider":         "embed.provider",
	"bookrec_embed_url":              "embed.url",
	"bookrec_embed_model":            "embed.model",
	"bookrec_embed_dimension":        "embed.dimension",
	"bookrec_embed_batch_size":       "embed.batch_size",
	"bookrec_embed_workers":          "embed.workers",
	"bookrec_embed_timeout":          "embed.timeout",
	"bookrec_embed_breaker_failures": "embed.breaker_failures",
	"bookrec_embed_breaker_timeout":  "embed.breaker_timeout",
	"bookrec_genres_file":            "genres.file",
	"bookrec_default_k":              "recommend.default_k",
	"bookrec_max_k":                  "recommend.max_k",
	"bookrec_warm_index":             "recommend.warm_index",
	"bookrec_addr":                   "server.addr",
	"bookrec_static_dir":             "server.static_dir",
	"bookrec_rate_limit_requests":    "server.rate_limit_requests",
	"bookrec_rate_limit_window":      "server.rate_limit_window",
	"log_level":                      "logging.level",
	"log_format":                     "logging.format",
	"log_caller":                     "logging.caller",
}

// envTransformFunc maps environment variable names to config keys.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
