package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the root logger. Unknown levels fall back to info rather
// than failing startup.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "parking-service").
		Logger()
}
