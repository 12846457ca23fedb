package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/rqos/agency-ops-backend/internal/middleware"
)

// BaseService provides the logging helpers shared by all services.
type BaseService struct {
	clock Clock
}

// GetLogger gets the request-scoped logger from context or falls back to the
// default logger.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now reads the injected clock, defaulting to the real clock when none was set.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return realClock{}.Now()
	}
	return s.clock.Now()
}
