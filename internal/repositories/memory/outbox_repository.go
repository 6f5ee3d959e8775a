package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

type outboxRepo struct{ s *Store }

func (r outboxRepo) EnqueueMessages(ctx context.Context, messages ...domain.OutboxMessage) error {
	return r.s.write(ctx, "EnqueueMessages", func(d *dataset) error {
		d.outbox = append(d.outbox, messages...)
		return nil
	})
}

// ClaimPending leases messages in its own write, so delivery never holds txMu.
func (r outboxRepo) ClaimPending(ctx context.Context, limit int, now time.Time, lease time.Duration) ([]domain.OutboxMessage, error) {
	var out []domain.OutboxMessage
	until := now.Add(lease)
	err := r.s.write(ctx, "ClaimPending", func(d *dataset) error {
		for i := range d.outbox {
			m := &d.outbox[i]
			expired := m.Status == domain.OutboxSending && m.ClaimedUntil != nil && m.ClaimedUntil.Before(now)
			if m.Status != domain.OutboxPending && !expired {
				continue
			}
			m.Status = domain.OutboxSending
			m.ClaimedUntil = &until
			out = append(out, *m)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r outboxRepo) modify(ctx context.Context, op, messageID string, fn func(m *domain.OutboxMessage)) error {
	return r.s.write(ctx, op, func(d *dataset) error {
		for i := range d.outbox {
			if d.outbox[i].MessageID == messageID && d.outbox[i].Status == domain.OutboxSending {
				fn(&d.outbox[i])
				d.outbox[i].ClaimedUntil = nil
				return nil
			}
		}
		return fmt.Errorf("%w: claimed outbox message %s", apperrors.ErrNotFound, messageID)
	})
}

func (r outboxRepo) MarkSent(ctx context.Context, messageID string, sentAt time.Time) error {
	return r.modify(ctx, "MarkSent", messageID, func(m *domain.OutboxMessage) {
		m.Status = domain.OutboxSent
		m.Attempts++
		m.SentAt = &sentAt
		m.LastError = nil
	})
}

func (r outboxRepo) MarkAttemptFailed(ctx context.Context, messageID string, lastError string, giveUp bool) error {
	return r.modify(ctx, "MarkAttemptFailed", messageID, func(m *domain.OutboxMessage) {
		m.Attempts++
		m.LastError = &lastError
		m.Status = domain.OutboxPending
		if giveUp {
			m.Status = domain.OutboxFailed
		}
	})
}

func (r outboxRepo) ListByTransaction(_ context.Context, transactionID string) ([]domain.OutboxMessage, error) {
	var out []domain.OutboxMessage
	err := r.s.read("ListByTransaction", func(d *dataset) error {
		for _, m := range d.outbox {
			if m.TransactionID == transactionID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}
