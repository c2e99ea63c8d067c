// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. It configures a JSON handler at
// the requested level and carries request- or job-scoped loggers on a context.
package logger
