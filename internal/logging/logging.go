// Package logging builds the zap logger and carries it through a context.
package logging

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where diagnostics go.
type Options struct {
	// Debug writes development-style logs at debug level to Stderr.
	Debug bool

	// Stderr receives debug logs.
	Stderr io.Writer

	// FilePath receives info-level JSON logs when Debug is off.
	// Empty disables file logging.
	FilePath string

	// Verbose lowers the file logger to debug level.
	Verbose bool
}

// New builds a logger for one CLI run.
// Falls back to a no-op logger if the log file cannot be opened.
func New(opts Options) *zap.Logger {
	if opts.Debug {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.Lock(zapcore.AddSync(opts.Stderr)),
			zapcore.DebugLevel,
		)
		return zap.New(core)
	}

	if opts.FilePath == "" {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{opts.FilePath}
	cfg.ErrorOutputPaths = []string{opts.FilePath}
	cfg.Sampling = nil
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

type ctxKey struct{}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithLogger, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
