package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. It starts on stderr at info level and is
// reconfigured by Setup once flags and config are parsed.
var Logger zerolog.Logger

func init() {
	Setup(os.Stderr, "info", true)
}

// Setup points the global logger at w. When console is true the output is the
// human-readable colored console format, otherwise one JSON object per line.
// Unknown levels fall back to info.
func Setup(w io.Writer, level string, console bool) {
	out := w
	if console {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	// Set global logger
	log.Logger = Logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Discard silences all logging, used while the terminal UI owns the screen
// and no log file was configured.
func Discard() {
	Logger = zerolog.Nop()
	log.Logger = Logger
}

// Info logs an info message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// SetDebugMode switches the logger to debug level.
func SetDebugMode() {
	Logger = Logger.Level(zerolog.DebugLevel)
	log.Logger = Logger
}
