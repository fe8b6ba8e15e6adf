package debug

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

var (
	logger  atomic.Pointer[slog.Logger]
	enabled atomic.Bool
)

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// Setup sends debug output to w at the given level
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	logger.Store(l)
	enabled.Store(true)
	return l
}

// Logger returns the debug logger, discarding until Setup is called
func Logger() *slog.Logger {
	return logger.Load()
}

// Log writes a formatted debug message
func Log(format string, args ...any) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return enabled.Load()
}
