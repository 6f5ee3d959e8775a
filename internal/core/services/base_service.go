package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.Authorizer
	Clock      func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a non-fatal problem with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current time from the injected clock, in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Authorize runs the authorization boundary. A service without an authorizer denies everything.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, action domain.Action, txn *domain.Transaction) error {
	authz := s.Authorizer
	if authz == nil {
		authz = NewAuthorizer()
	}
	if err := authz.Authorize(actor, action, txn); err != nil {
		s.LogDebug(ctx, "Authorization denied",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
			slog.String("action", string(action)))
		return err
	}
	return nil
}
