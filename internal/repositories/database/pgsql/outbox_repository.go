package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/mapping"
)

type PgxOutboxRepository struct {
	BaseRepository
}

var _ portsrepo.OutboxRepositoryFacade = (*PgxOutboxRepository)(nil)

const outboxColumns = `message_id, transaction_id, destination, body, status, attempts, last_error, created_at, sent_at, claimed_until`

func (r *PgxOutboxRepository) EnqueueMessages(ctx context.Context, messages ...domain.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, msg := range messages {
		m := mapping.ToModelOutboxMessage(msg)
		batch.Queue(`INSERT INTO notification_outbox (`+outboxColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.MessageID, m.TransactionID, m.Destination, m.Body, m.Status, m.Attempts, m.LastError, m.CreatedAt, m.SentAt, m.ClaimedUntil)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return classify(err, "failed to enqueue notifications")
	}
	return nil
}

func (r *PgxOutboxRepository) list(ctx context.Context, query string, args ...any) ([]domain.OutboxMessage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outbox", err)
	}
	defer rows.Close()

	var out []domain.OutboxMessage
	for rows.Next() {
		var m models.OutboxMessage
		if err := rows.Scan(&m.MessageID, &m.TransactionID, &m.Destination, &m.Body, &m.Status, &m.Attempts, &m.LastError, &m.CreatedAt, &m.SentAt, &m.ClaimedUntil); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outbox message", err)
		}
		out = append(out, mapping.ToDomainOutboxMessage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outbox", err)
	}
	return out, nil
}

// ClaimPending leases a batch in a single statement, so no lock outlives it.
// SKIP LOCKED keeps concurrent dispatchers from claiming the same rows.
func (r *PgxOutboxRepository) ClaimPending(ctx context.Context, limit int, now time.Time, lease time.Duration) ([]domain.OutboxMessage, error) {
	msgs, err := r.list(ctx, `
		UPDATE notification_outbox
		SET status = 'SENDING', claimed_until = $2
		WHERE message_id IN (
			SELECT message_id
			FROM notification_outbox
			WHERE status = 'PENDING' OR (status = 'SENDING' AND claimed_until < $3)
			ORDER BY created_at, message_id
			LIMIT $1
			FOR UPDATE SKIP LOCKED)
		RETURNING `+outboxColumns, limit, now.Add(lease), now)
	if err != nil {
		return nil, err
	}
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].MessageID < msgs[j].MessageID
	})
	return msgs, nil
}

func (r *PgxOutboxRepository) exec(ctx context.Context, messageID, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, append([]any{messageID}, args...)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update outbox message "+messageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: outbox message %s", apperrors.ErrNotFound, messageID)
	}
	return nil
}

func (r *PgxOutboxRepository) MarkSent(ctx context.Context, messageID string, sentAt time.Time) error {
	return r.exec(ctx, messageID, `
		UPDATE notification_outbox
		SET status = 'SENT', attempts = attempts + 1, sent_at = $2, last_error = NULL, claimed_until = NULL
		WHERE message_id = $1 AND status = 'SENDING'`, sentAt)
}

func (r *PgxOutboxRepository) MarkAttemptFailed(ctx context.Context, messageID string, lastError string, giveUp bool) error {
	return r.exec(ctx, messageID, `
		UPDATE notification_outbox
		SET attempts = attempts + 1,
		    last_error = $2,
		    status = CASE WHEN $3 THEN 'FAILED' ELSE 'PENDING' END,
		    claimed_until = NULL
		WHERE message_id = $1 AND status = 'SENDING'`, lastError, giveUp)
}

func (r *PgxOutboxRepository) ListByTransaction(ctx context.Context, transactionID string) ([]domain.OutboxMessage, error) {
	return r.list(ctx, `
		SELECT `+outboxColumns+`
		FROM notification_outbox
		WHERE transaction_id = $1
		ORDER BY created_at, message_id`, transactionID)
}
