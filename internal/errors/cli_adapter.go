package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dse, ok := As(err); ok {
		return a.exitCodeFromDocSource(dse)
	}

	return 1
}

// exitCodeFromDocSource maps DocSourceError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocSource(err *DocSourceError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryPath:
		return 3 // Unresolvable input
	case CategoryTransform:
		return 4 // Pipeline failure
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInternal:
		return 10 // Internal error
	case CategoryFileSystem:
		return 11 // I/O error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dse, ok := As(err); ok {
		return a.formatDocSource(dse)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDocSource formats a DocSourceError for display.
func (a *CLIErrorAdapter) formatDocSource(err *DocSourceError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation, CategoryPath:
		return err.Message
	case CategoryTransform:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dse, ok := As(err); ok {
		return dse.Category == CategoryInternal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if dse, ok := As(err); ok {
		level := slogLevelFromSeverity(dse.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(dse.Category)),
		}
		for k, v := range dse.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if dse.Cause != nil {
			attrs = append(attrs, slog.String("cause", dse.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, dse.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts DocSourceError severity to slog level.
func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
