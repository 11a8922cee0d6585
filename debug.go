package reveal

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// logger is the package-wide fallback logger. Sections created without an
// explicit SectionConfig.Logger use it.
var logger = zap.NewNop()

// SetLogger replaces the package-wide logger. Passing nil restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// globalDebug enables fail-fast checks. Only valid with a single goroutine
// driving the engine, which is the supported model.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, use-after-dispose
// panics instead of returning ErrDisposed, and pages log per-frame stats at
// debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// useAfterDispose reports a lifecycle bug. It always logs; in debug mode it
// panics with a message naming the operation and the handle.
func useAfterDispose(op, kind string, id uint32) error {
	return reportDisposed(logger, op, kind, fmt.Sprintf("ID was %d", id), zap.Uint32("id", id))
}

// reportDisposed logs op on a disposed handle to l and panics in debug mode.
// ident names the handle in the panic message and the returned error.
func reportDisposed(l *zap.Logger, op, kind, ident string, fields ...zap.Field) error {
	l.Warn("use after dispose",
		append([]zap.Field{zap.String("op", op), zap.String("handle", kind)}, fields...)...)
	if globalDebug {
		panic(fmt.Sprintf("reveal debug: %s on disposed %s (%s)", op, kind, ident))
	}
	return fmt.Errorf("%s %s (%s): %w", kind, op, ident, ErrDisposed)
}

// frameStats holds per-frame counters. Only populated when debug mode is on.
type frameStats struct {
	sections     int
	watchers     int
	timers       int
	pendingLoads int
	updateTime   time.Duration
}

// debugLog writes frame stats at debug level.
func (p *Page) debugLog(stats frameStats) {
	if !globalDebug {
		return
	}
	p.log.Debug("frame",
		zap.Float64("scrollY", p.viewport.ScrollY),
		zap.Int("sections", stats.sections),
		zap.Int("watchers", stats.watchers),
		zap.Int("timers", stats.timers),
		zap.Int("pendingLoads", stats.pendingLoads),
		zap.Duration("update", stats.updateTime))
}

// handleIDCounter is a plain counter (no atomic: the engine is single-threaded).
var handleIDCounter uint32

func nextHandleID() uint32 {
	handleIDCounter++
	return handleIDCounter
}
