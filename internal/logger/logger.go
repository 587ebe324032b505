package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// AppName tags every log line and names the program's connections.
const AppName = "voice-attendance"

// Setup builds the process logger on stderr, keeping stdout for the operator
// console. level falls back to warn, the quiet default for an interactive
// session; format is "json" or "pretty".
func Setup(level, format string) zerolog.Logger {
	return New(os.Stderr, level, format)
}

// New builds a logger writing to w. Pretty output is colored only when w is a
// terminal, so redirected logs stay plain text.
func New(w io.Writer, level, format string) zerolog.Logger {
	writer := w
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Str("app", AppName).
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
