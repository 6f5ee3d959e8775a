package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/mapping"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, sequence_number, kind, owner_id, contact_phone, status, payment_status, inventory_state,
	amount, currency_code,
	profile_id, exchange_rate, commission_percentage, commission_fixed, min_amount, max_amount,
	delivery_method, target_currency, commission, total, delivered_amount,
	recipient_name, recipient_phone, recipient_user_id, recipient_account,
	payment_proof_ref, delivery_proof_ref,
	payment_validated_at, payment_validated_by, processing_started_at, processed_by,
	shipped_at, shipped_by, delivered_at, delivered_by, completed_at, completed_by,
	cancelled_at, cancelled_by, rejection_reason, cancellation_reason,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.SequenceNumber, &m.Kind, &m.OwnerID, &m.ContactPhone, &m.Status, &m.PaymentStatus, &m.InventoryState,
		&m.Amount, &m.CurrencyCode,
		&m.ProfileID, &m.ExchangeRate, &m.CommissionPercentage, &m.CommissionFixed, &m.MinAmount, &m.MaxAmount,
		&m.DeliveryMethod, &m.TargetCurrency, &m.Commission, &m.Total, &m.DeliveredAmount,
		&m.RecipientName, &m.RecipientPhone, &m.RecipientUserID, &m.RecipientAccount,
		&m.PaymentProofRef, &m.DeliveryProofRef,
		&m.PaymentValidatedAt, &m.PaymentValidatedBy, &m.ProcessingStartedAt, &m.ProcessedBy,
		&m.ShippedAt, &m.ShippedBy, &m.DeliveredAt, &m.DeliveredBy, &m.CompletedAt, &m.CompletedBy,
		&m.CancelledAt, &m.CancelledBy, &m.RejectionReason, &m.CancellationReason,
		&m.Version, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, transactionID string, forUpdate bool) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	lines, err := r.findLines(ctx, []string{txn.TransactionID})
	if err != nil {
		return nil, err
	}
	txn.Lines = lines[txn.TransactionID]
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, transactionID, false)
}

// FindTransactionByIDForUpdate takes a row lock; concurrent lifecycle operations on the same transaction queue behind it.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, transactionID, true)
}

// findLines loads the lines of many transactions in one query.
func (r *PgxTransactionRepository) findLines(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error) {
	out := make(map[string][]domain.TransactionLine, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT line_id, transaction_id, item_id, item_kind, quantity, unit_price, line_total, position
		FROM transaction_lines
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position`, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.TransactionLine
		if err := rows.Scan(&m.LineID, &m.TransactionID, &m.ItemID, &m.ItemKind, &m.Quantity, &m.UnitPrice, &m.LineTotal, &m.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction line", err)
		}
		out[m.TransactionID] = append(out[m.TransactionID], mapping.ToDomainTransactionLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction lines", err)
	}
	return out, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var p placeholders
	var conds []string
	if filter.OwnerID != nil {
		conds = append(conds, "owner_id = "+p.add(*filter.OwnerID))
	}
	if filter.Kind != nil {
		conds = append(conds, "kind = "+p.add(string(*filter.Kind)))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+p.add(string(*filter.Status)))
	}
	if nextToken != nil && *nextToken != "" {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(created_at, transaction_id) < (%s, %s)", p.add(afterAt), p.add(afterID)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, transaction_id DESC"
	if limit > 0 {
		// one extra row tells us whether another page exists
		query += " LIMIT " + p.add(limit+1)
	}

	rows, err := r.db.Query(ctx, query, p.args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}
	rows.Close()

	var next *string
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		tok := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &tok
	}

	ids := make([]string, len(txns))
	for i, t := range txns {
		ids[i] = t.TransactionID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range txns {
		txns[i].Lines = lines[txns[i].TransactionID]
	}
	return txns, next, nil
}

func (r *PgxTransactionRepository) FindReservations(ctx context.Context, transactionID string) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT transaction_id, item_id, quantity
		FROM transaction_reservations
		WHERE transaction_id = $1
		ORDER BY item_id`, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reservations", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.TransactionID, &res.ItemID, &res.Quantity); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reservations", err)
	}
	return out, nil
}

// InsertTransaction runs in a savepoint so a sequence collision leaves the caller's transaction usable for a retry.
func (r *PgxTransactionRepository) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	return r.inSavepoint(ctx, func(q querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO transactions (`+transactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21,
			        $22, $23, $24, $25, $26, $27,
			        $28, $29, $30, $31, $32, $33, $34, $35, $36, $37,
			        $38, $39, $40, $41, $42, $43, $44, $45, $46)`,
			m.TransactionID, m.SequenceNumber, m.Kind, m.OwnerID, m.ContactPhone, m.Status, m.PaymentStatus, m.InventoryState,
			m.Amount, m.CurrencyCode,
			m.ProfileID, m.ExchangeRate, m.CommissionPercentage, m.CommissionFixed, m.MinAmount, m.MaxAmount,
			m.DeliveryMethod, m.TargetCurrency, m.Commission, m.Total, m.DeliveredAmount,
			m.RecipientName, m.RecipientPhone, m.RecipientUserID, m.RecipientAccount,
			m.PaymentProofRef, m.DeliveryProofRef,
			m.PaymentValidatedAt, m.PaymentValidatedBy, m.ProcessingStartedAt, m.ProcessedBy,
			m.ShippedAt, m.ShippedBy, m.DeliveredAt, m.DeliveredBy, m.CompletedAt, m.CompletedBy,
			m.CancelledAt, m.CancelledBy, m.RejectionReason, m.CancellationReason,
			m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return classify(err, "failed to insert transaction "+m.SequenceNumber)
		}

		if len(txn.Lines) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, l := range mapping.ToModelTransactionLines(txn.Lines) {
			batch.Queue(`
				INSERT INTO transaction_lines (line_id, transaction_id, item_id, item_kind, quantity, unit_price, line_total, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				l.LineID, l.TransactionID, l.ItemID, l.ItemKind, l.Quantity, l.UnitPrice, l.LineTotal, l.Position)
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return classify(err, "failed to insert lines for transaction "+m.SequenceNumber)
		}
		return nil
	})
}

// UpdateTransactionState writes only the lifecycle columns; identity, owner, money and lines never change.
func (r *PgxTransactionRepository) UpdateTransactionState(ctx context.Context, txn domain.Transaction, expectedVersion int) error {
	m := mapping.ToModelTransaction(txn)
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET
			status = $2, payment_status = $3, inventory_state = $4,
			payment_proof_ref = $5, delivery_proof_ref = $6,
			payment_validated_at = $7, payment_validated_by = $8,
			processing_started_at = $9, processed_by = $10,
			shipped_at = $11, shipped_by = $12,
			delivered_at = $13, delivered_by = $14,
			completed_at = $15, completed_by = $16,
			cancelled_at = $17, cancelled_by = $18,
			rejection_reason = $19, cancellation_reason = $20,
			last_updated_at = $21, last_updated_by = $22,
			version = version + 1
		WHERE transaction_id = $1 AND version = $23`,
		m.TransactionID, m.Status, m.PaymentStatus, m.InventoryState,
		m.PaymentProofRef, m.DeliveryProofRef,
		m.PaymentValidatedAt, m.PaymentValidatedBy,
		m.ProcessingStartedAt, m.ProcessedBy,
		m.ShippedAt, m.ShippedBy,
		m.DeliveredAt, m.DeliveredBy,
		m.CompletedAt, m.CompletedBy,
		m.CancelledAt, m.CancelledBy,
		m.RejectionReason, m.CancellationReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`, m.TransactionID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check transaction "+m.TransactionID, err)
	}
	if !exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return fmt.Errorf("%w: transaction %s changed concurrently (expected version %d)",
		apperrors.ErrInvalidTransition, m.TransactionID, expectedVersion)
}

func (r *PgxTransactionRepository) ReplaceReservations(ctx context.Context, transactionID string, reservations []domain.Reservation) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM transaction_reservations WHERE transaction_id = $1`, transactionID)
	for _, res := range reservations {
		batch.Queue(`INSERT INTO transaction_reservations (transaction_id, item_id, quantity) VALUES ($1, $2, $3)`,
			transactionID, res.ItemID, res.Quantity)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return classify(err, "failed to replace reservations for transaction "+transactionID)
	}
	return nil
}
