// Package config holds the runtime configuration of the recommender.
package config

import "time"

const (
	EmbedProviderAPI   = "api"
	EmbedProviderLocal = "local"
)

type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Embed     EmbedConfig     `koanf:"embed"`
	Genres    GenresConfig    `koanf:"genres"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type CatalogConfig struct {
	// Path to a .csv or SQLite file. Empty means the built-in catalog.
	Path            string `koanf:"path"`
	CoversDir       string `koanf:"covers_dir"`
	CoversURLPrefix string `koanf:"covers_url_prefix"`
}

type EmbedConfig struct {
	Provider        string        `koanf:"provider"         validate:"oneof=api local"`
	URL             string        `koanf:"url"              validate:"required_if=Provider api"`
	Model           string        `koanf:"model"`
	Dimension       int           `koanf:"dimension"        validate:"gte=0"`
	BatchSize       int           `koanf:"batch_size"       validate:"gte=1"`
	Workers         int           `koanf:"workers"          validate:"gte=1"`
	Timeout         time.Duration `koanf:"timeout"          validate:"gte=0"`
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"gte=1"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"  validate:"gt=0"`
}

type GenresConfig struct {
	// File is an optional YAML genre table replacing the built-in one.
	File string `koanf:"file"`
}

type RecommendConfig struct {
	DefaultK int `koanf:"default_k" validate:"gte=1"`
	MaxK     int `koanf:"max_k"     validate:"gtefield=DefaultK"`

	// WarmIndex builds the corpus index at startup instead of on first use.
	WarmIndex bool `koanf:"warm_index"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr"                validate:"required"`
	StaticDir         string        `koanf:"static_dir"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"   validate:"gt=0"`
	ReadTimeout       time.Duration `koanf:"read_timeout"        validate:"gte=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout"       validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"  validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Default returns the configuration used before any file or environment
// overrides are applied.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:            "books.csv",
			CoversDir:       "static/covers",
			CoversURLPrefix: "/static/covers",
		},
		Embed: EmbedConfig{
			Provider:        EmbedProviderAPI,
			URL:             "http://localhost:8000/embed",
			Model:           "all-MiniLM-L6-v2",
			Dimension:       384,
			BatchSize:       64,
			Workers:         4,
			Timeout:         30 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Server: ServerConfig{
			Addr:              ":8000",
			StaticDir:         "static",
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
