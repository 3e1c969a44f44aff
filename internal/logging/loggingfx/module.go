package loggingfx

import (
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/logging"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// NewLogger creates the root logger from the logging section
func NewLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
}

// NewFxLogger adapts the root logger for fx.WithLogger
func NewFxLogger(logger zerolog.Logger) fxevent.Logger {
	return &logging.FxLogger{Logger: logger.With().Str("component", "fx").Logger()}
}

// Module provides the root logger
var Module = fx.Module("logging",
	fx.Provide(NewLogger),
)
