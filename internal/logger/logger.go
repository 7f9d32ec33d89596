package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. An unknown level falls back to
// info and is reported so the caller can log it once the logger works.
func Setup(level string, pretty bool) error {
	return setup(os.Stdout, level, pretty)
}

func setup(out io.Writer, level string, pretty bool) error {
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return fmt.Errorf("unknown log level %q, using info", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
