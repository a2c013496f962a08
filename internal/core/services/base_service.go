package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/clubtreasury/treasury/internal/utils"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Analytics *utils.PosthogClientWrapper
	Clock     func() time.Time
}

// Now returns the current time from the injected clock, in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track sends an analytics event when analytics is configured.
func (s *BaseService) Track(distinctID, event string, props map[string]any) {
	s.Analytics.Enqueue(distinctID, event, props)
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithAnalytics attaches the analytics client.
func WithAnalytics(client *utils.PosthogClientWrapper) ServiceOption {
	return func(b *BaseService) {
		b.Analytics = client
	}
}

// WithClock replaces the wall clock, used by tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(opts ...ServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
