package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogContext holds structured logging context information.
type LogContext struct {
	LoadID      string
	RootDir     string
	Transformer string
	Stage       string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// NewLoadID returns a fresh identifier for one load call.
func NewLoadID() string {
	return uuid.NewString()
}

// WithLoadID adds a load ID to the context.
func WithLoadID(ctx context.Context, loadID string) context.Context {
	lc := extractLogContext(ctx)
	lc.LoadID = loadID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithRootDir adds the configured root directory to the context.
func WithRootDir(ctx context.Context, rootDir string) context.Context {
	lc := extractLogContext(ctx)
	lc.RootDir = rootDir
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTransformer adds the active transformer name to the context.
func WithTransformer(ctx context.Context, name string) context.Context {
	lc := extractLogContext(ctx)
	lc.Transformer = name
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a pipeline stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// Attrs returns slog attributes from the context's LogContext.
func Attrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}

	if lc.LoadID != "" {
		attrs = append(attrs, slog.String("load_id", lc.LoadID))
	}
	if lc.RootDir != "" {
		attrs = append(attrs, slog.String("root_dir", lc.RootDir))
	}
	if lc.Transformer != "" {
		attrs = append(attrs, slog.String("transformer", lc.Transformer))
	}
	if lc.Stage != "" {
		attrs = append(attrs, slog.String("stage", lc.Stage))
	}

	return attrs
}

// Log writes msg at level through logger, prefixed with the context's attributes.
// A nil logger falls back to slog.Default().
func Log(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	all := append(Attrs(ctx), attrs...)
	logger.LogAttrs(ctx, level, msg, all...)
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Log(ctx, nil, slog.LevelInfo, msg, attrs...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Log(ctx, nil, slog.LevelWarn, msg, attrs...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Log(ctx, nil, slog.LevelError, msg, attrs...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Log(ctx, nil, slog.LevelDebug, msg, attrs...)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}
