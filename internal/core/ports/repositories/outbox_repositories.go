package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// OutboxRepositoryFacade stores notifications written alongside state changes.
type OutboxRepositoryFacade interface {
	// EnqueueMessages appends pending messages.
	EnqueueMessages(ctx context.Context, messages ...domain.OutboxMessage) error

	// ClaimPending moves up to limit messages, oldest first, to SENDING until now+lease.
	// Pending messages and SENDING ones whose lease ran out are eligible. The claim is
	// one short write; callers deliver outside any unit of work.
	ClaimPending(ctx context.Context, limit int, now time.Time, lease time.Duration) ([]domain.OutboxMessage, error)

	// MarkSent settles a claimed message.
	MarkSent(ctx context.Context, messageID string, sentAt time.Time) error

	// MarkAttemptFailed returns a claimed message to PENDING, or to FAILED when giveUp is set.
	MarkAttemptFailed(ctx context.Context, messageID string, lastError string, giveUp bool) error

	ListByTransaction(ctx context.Context, transactionID string) ([]domain.OutboxMessage, error)
}
