package present

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a presentation loop is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for present and all its sub-packages.
// By default, present produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by present:
//   - [slog.LevelDebug]: buffer reallocation, coordinator decisions
//   - [slog.LevelInfo]: fullscreen/windowed transitions, surface lifecycle
//   - [slog.LevelWarn]: stand-by entry, ignored mode-switch races, nonsensical
//     view flag combinations, leaked resources
//
// Example:
//
//	present.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by present.
// Sub-packages (view/, swapchain/, backend/...) call this to share the same
// logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
