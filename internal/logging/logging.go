// Package logging sets up the zerolog root logger. Subsystems derive
// scoped loggers from it via With().Str("subsystem", ...).
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the root logger at the given level. With console set,
// output is human formatted instead of JSON.
func New(level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if console {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
