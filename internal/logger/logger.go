package logger

import (
	"os"
	"time"

	"fundchamps/internal/config"

	"github.com/rs/zerolog"
)

// New builds the service logger from LOG_LEVEL / LOG_FORMAT. Everything that
// logs receives this instance explicitly; there is no package-level logger.
func New(cfg *config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}
