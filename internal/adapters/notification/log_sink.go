package notification

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/middleware"
)

// logSink writes notifications to the log. Used when no webhook is configured.
type logSink struct{}

func NewLogSink() portssvc.NotificationSink {
	return logSink{}
}

func (logSink) Send(ctx context.Context, destination, text string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification",
		slog.String("destination", destination),
		slog.String("text", text))
	return nil
}
