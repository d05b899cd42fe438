// Package logger provides the structured logging setup used across the
// database core. The block file, record allocator and hierarchical DB each
// receive a *zap.SugaredLogger from their caller rather than reaching for a
// package-level global; twdb.Open hands all three the one logger it builds
// with component "twdb". The signature engine does no logging.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured *zap.SugaredLogger tagged with the
// given component name (e.g. "blockfile", "hierdb", "signature"). Every
// message the returned logger emits carries a "component" field so log
// aggregation can filter by subsystem without parsing message text.
func New(component string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Fall back to a no-op logger that discards everything rather than
		// panicking; the database stays usable without logging.
		log = zap.NewNop()
	}

	return log.Sugar().With("component", component)
}

// NewDevelopment builds a development-configured *zap.SugaredLogger — human
// readable, colorized level names, stack traces on warnings and above. Tests
// and local debugging use this instead of New.
func NewDevelopment(component string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log = zap.NewNop()
	}

	return log.Sugar().With("component", component)
}

// NewNop returns a logger that discards everything, for tests that construct
// a subsystem directly and don't care about its log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
