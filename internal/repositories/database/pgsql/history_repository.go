package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/mapping"
)

// PgxHistoryRepository appends to status_history. A trigger rejects UPDATE and DELETE on the table.
type PgxHistoryRepository struct {
	BaseRepository
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendHistory numbers entries after the highest existing sequence. Callers hold the
// transaction row lock, so two writers never race for the same number.
func (r *PgxHistoryRepository) AppendHistory(ctx context.Context, entries ...domain.StatusHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.EntryID == "" {
			e.EntryID = uuid.NewString()
		}
		m := mapping.ToModelStatusHistory(e)
		batch.Queue(`
			INSERT INTO status_history (entry_id, transaction_id, machine, from_state, to_state, actor_id, reason, created_at, sequence)
			SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::timestamptz, COALESCE(MAX(sequence), 0) + 1
			FROM status_history WHERE transaction_id = $2::text`,
			m.EntryID, m.TransactionID, m.Machine, m.FromState, m.ToState, m.ActorID, m.Reason, m.CreatedAt)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return classify(err, "failed to append status history")
	}
	return nil
}

func (r *PgxHistoryRepository) ListHistory(ctx context.Context, transactionID string) ([]domain.StatusHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT entry_id, transaction_id, machine, from_state, to_state, actor_id, reason, created_at, sequence
		FROM status_history
		WHERE transaction_id = $1
		ORDER BY sequence`, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status history", err)
	}
	defer rows.Close()

	var out []domain.StatusHistoryEntry
	for rows.Next() {
		var m models.StatusHistory
		if err := rows.Scan(&m.EntryID, &m.TransactionID, &m.Machine, &m.FromState, &m.ToState, &m.ActorID, &m.Reason, &m.CreatedAt, &m.Sequence); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status history", err)
		}
		out = append(out, mapping.ToDomainStatusHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status history", err)
	}
	return out, nil
}
