// Package seglog provides the structured logger every segcore component
// takes as a constructor dependency. It wraps zap the way the rest of this
// codebase expects: a *zap.SugaredLogger, pre-tagged with the name of the
// component that owns it, so log lines can be filtered by subsystem without
// every call site repeating "component", "segcore", etc.
package seglog

import (
	"go.uber.org/zap"
)

// New builds a production zap logger and returns it tagged with the given
// component name. It panics if the logger cannot be constructed, matching
// zap's own recommended bootstrap pattern: a broken logging setup isn't a
// condition callers are expected to recover from.
func New(component string) *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("seglog: failed to initialize zap logger: " + err.Error())
	}
	return logger.Sugar().Named(component)
}

// NewDevelopment builds a development zap logger (human-readable, colored
// level, caller info) tagged with the given component name. Intended for
// local runs and tests where NewProduction's JSON output is harder to read.
func NewDevelopment(component string) *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("seglog: failed to initialize zap logger: " + err.Error())
	}
	return logger.Sugar().Named(component)
}

// Nop returns a logger that discards everything, for tests that need to
// satisfy a constructor's Logger field without asserting on log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
