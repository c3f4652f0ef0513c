package bgremover

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent = slog.New(slog.DiscardHandler)
	logger atomic.Pointer[slog.Logger]
)

// SetLogger routes pipeline and batch diagnostics to l. Stage counts are
// logged at debug level and failed batch items at warn level. A nil l turns
// logging off again, which is also the initial state.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger set by SetLogger, or one that discards
// everything.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
