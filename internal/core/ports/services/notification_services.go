package services

import (
	"context"
	"io"
)

// NotificationSink delivers a pre-formatted text to a phone-number-like destination.
// Failures wrap apperrors.ErrNotification.
type NotificationSink interface {
	Send(ctx context.Context, destination, text string) error
}

// OutboxDispatcherSvc drains pending notifications.
type OutboxDispatcherSvc interface {
	// DispatchPending attempts up to batchSize pending messages and reports how many were sent.
	DispatchPending(ctx context.Context, batchSize int) (sent int, err error)

	// Wake asks a running dispatcher loop to drain soon. It never blocks.
	Wake()

	// Run drains on every tick and wake-up until ctx is done.
	Run(ctx context.Context) error
}

// ProofStore keeps uploaded proof files and hands back opaque references.
type ProofStore interface {
	Save(ctx context.Context, transactionID, filename string, content io.Reader) (string, error)

	// Remove deletes a stored proof. A reference that no longer exists is not an error.
	Remove(ctx context.Context, ref string) error
}
