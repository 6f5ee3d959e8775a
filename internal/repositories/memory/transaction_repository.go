package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

type transactionRepo struct{ s *Store }

func cloneTransaction(t domain.Transaction) domain.Transaction {
	t.Lines = slices.Clone(t.Lines)
	if t.Remittance != nil {
		r := *t.Remittance
		t.Remittance = &r
	}
	return t
}

func (r transactionRepo) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	var out domain.Transaction
	err := r.s.read("FindTransactionByID", func(d *dataset) error {
		t, ok := d.transactions[transactionID]
		if !ok {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		out = cloneTransaction(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindTransactionByIDForUpdate needs no extra lock: units of work are already serialized.
func (r transactionRepo) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.FindTransactionByID(ctx, transactionID)
}

func (r transactionRepo) ListTransactions(_ context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var out []domain.Transaction
	err := r.s.read("ListTransactions", func(d *dataset) error {
		for _, t := range d.transactions {
			if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
				continue
			}
			if filter.Kind != nil && t.Kind != *filter.Kind {
				continue
			}
			if filter.Status != nil && t.Status != *filter.Status {
				continue
			}
			out = append(out, cloneTransaction(t))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].TransactionID > out[j].TransactionID
	})

	if nextToken != nil && *nextToken != "" {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		idx := sort.Search(len(out), func(i int) bool {
			t := out[i]
			return t.CreatedAt.Before(afterAt) || (t.CreatedAt.Equal(afterAt) && t.TransactionID < afterID)
		})
		out = out[idx:]
	}

	var next *string
	if limit > 0 && len(out) > limit {
		out = out[:limit]
		last := out[limit-1]
		tok := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &tok
	}
	return out, next, nil
}

func (r transactionRepo) FindReservations(_ context.Context, transactionID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.s.read("FindReservations", func(d *dataset) error {
		out = slices.Clone(d.reservations[transactionID])
		return nil
	})
	return out, err
}

func (r transactionRepo) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.s.write(ctx, "InsertTransaction", func(d *dataset) error {
		if _, ok := d.transactions[txn.TransactionID]; ok {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
		}
		if _, ok := d.sequences[txn.SequenceNumber]; ok {
			return fmt.Errorf("%w: sequence number %s", apperrors.ErrDuplicate, txn.SequenceNumber)
		}
		d.transactions[txn.TransactionID] = cloneTransaction(txn)
		d.sequences[txn.SequenceNumber] = txn.TransactionID
		return nil
	})
}

func (r transactionRepo) UpdateTransactionState(ctx context.Context, txn domain.Transaction, expectedVersion int) error {
	return r.s.write(ctx, "UpdateTransactionState", func(d *dataset) error {
		current, ok := d.transactions[txn.TransactionID]
		if !ok {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
		}
		if current.Version != expectedVersion {
			return fmt.Errorf("%w: transaction %s changed concurrently (version %d, expected %d)",
				apperrors.ErrInvalidTransition, txn.TransactionID, current.Version, expectedVersion)
		}
		updated := cloneTransaction(txn)
		// identity, owner, money and lines are immutable after creation
		updated.SequenceNumber = current.SequenceNumber
		updated.Kind = current.Kind
		updated.OwnerID = current.OwnerID
		updated.Amount = current.Amount
		updated.CurrencyCode = current.CurrencyCode
		updated.Lines = current.Lines
		updated.Remittance = current.Remittance
		updated.CreatedAt = current.CreatedAt
		updated.CreatedBy = current.CreatedBy
		updated.Version = expectedVersion + 1
		d.transactions[txn.TransactionID] = updated
		return nil
	})
}

func (r transactionRepo) ReplaceReservations(ctx context.Context, transactionID string, reservations []domain.Reservation) error {
	return r.s.write(ctx, "ReplaceReservations", func(d *dataset) error {
		if len(reservations) == 0 {
			delete(d.reservations, transactionID)
			return nil
		}
		d.reservations[transactionID] = slices.Clone(reservations)
		return nil
	})
}
