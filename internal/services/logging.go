package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service   string
	Component string
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// operationStatus classifies err the same way handlers map it to HTTP codes.
func operationStatus(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, "success"
	case IsValidation(err) || IsBusinessRule(err):
		return slog.LevelWarn, "validation_error"
	case IsConflict(err):
		return slog.LevelWarn, "conflict"
	case IsNotFound(err):
		return slog.LevelInfo, "not_found"
	default:
		return slog.LevelError, "error"
	}
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID string, duration time.Duration, err error) {
	level, status := operationStatus(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("session_id", sessionID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		if validationErr, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErr)))
		} else if businessErr, ok := err.(*BusinessRuleError); ok {
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	if level == slog.LevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger times one operation and logs its outcome
type ContextualLogger struct {
	logger    *ServiceLogger
	ctx       context.Context
	operation string
	sessionID string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, sessionID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		ctx:       ctx,
		operation: operation,
		sessionID: sessionID,
		startTime: time.Now(),
	}
}

func (cl *ContextualLogger) LogResult(err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.sessionID, time.Since(cl.startTime), err)
}
