package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

type historyRepo struct{ s *Store }

func (r historyRepo) AppendHistory(ctx context.Context, entries ...domain.StatusHistoryEntry) error {
	return r.s.write(ctx, "AppendHistory", func(d *dataset) error {
		for _, e := range entries {
			existing := slices.Clip(d.history[e.TransactionID])
			if e.EntryID == "" {
				e.EntryID = uuid.NewString()
			}
			e.Sequence = len(existing) + 1
			d.history[e.TransactionID] = append(existing, e)
		}
		return nil
	})
}

func (r historyRepo) ListHistory(_ context.Context, transactionID string) ([]domain.StatusHistoryEntry, error) {
	var out []domain.StatusHistoryEntry
	err := r.s.read("ListHistory", func(d *dataset) error {
		out = slices.Clone(d.history[transactionID])
		return nil
	})
	return out, err
}
