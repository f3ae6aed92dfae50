// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and carries request-scoped loggers on the context so
// that stores and services log with the trace ID of the request that invoked them.
package logger
