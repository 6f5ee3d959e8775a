package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Inventory().CreateInventory(ctx, "item-1", 5))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		require.NoError(t, st.Inventory().Reserve(ctx, "item-1", 3))
		rec, err := st.Inventory().FindInventory(ctx, "item-1")
		require.NoError(t, err)
		assert.Equal(t, 3, rec.ReservedQuantity, "writes are visible inside the unit of work")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rec, err := s.Inventory().FindInventory(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.ReservedQuantity)
}

func TestWithinTx_NestedFailureKeepsOuterWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Inventory().CreateInventory(ctx, "item-1", 5))

	err := s.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		require.NoError(t, st.Inventory().Reserve(ctx, "item-1", 1))
		nestedErr := st.WithinTx(ctx, func(ctx context.Context, inner portsrepo.Store) error {
			require.NoError(t, inner.Inventory().Reserve(ctx, "item-1", 2))
			return errors.New("savepoint rollback")
		})
		assert.Error(t, nestedErr)
		return nil
	})
	require.NoError(t, err)

	rec, err := s.Inventory().FindInventory(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ReservedQuantity)
}

func TestInventoryGuards(t *testing.T) {
	ctx := context.Background()
	inv := NewStore().Inventory()
	require.NoError(t, inv.CreateInventory(ctx, "x", 2))

	assert.ErrorIs(t, inv.Reserve(ctx, "x", 3), apperrors.ErrInsufficientStock)
	assert.ErrorIs(t, inv.Reserve(ctx, "missing", 1), apperrors.ErrNotFound)
	require.NoError(t, inv.Reserve(ctx, "x", 2))
	assert.ErrorIs(t, inv.Release(ctx, "x", 3), apperrors.ErrInventoryInvariant)
	assert.ErrorIs(t, inv.Commit(ctx, "x", 3), apperrors.ErrInventoryInvariant)

	_, err := inv.AdjustStock(ctx, "x", -1)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "stock cannot drop below reserved")

	require.NoError(t, inv.Commit(ctx, "x", 2))
	rec, err := inv.FindInventory(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, 0, rec.ReservedQuantity)
}

func TestConcurrentReserveLastUnit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Inventory().CreateInventory(ctx, "x", 1))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Inventory().Reserve(ctx, "x", 1)
		}()
	}
	wg.Wait()
	close(results)

	var ok, short int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, short)
}

func TestTransactionVersionGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:  "t1",
		SequenceNumber: "ORD-20260101-00001",
		Kind:           domain.KindOrder,
		OwnerID:        "u1",
		Status:         domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
		Amount:         decimal.NewFromInt(10),
		AuditFields:    domain.NewAuditFields("u1", now),
	}
	require.NoError(t, repo.InsertTransaction(ctx, txn))

	dup := txn
	dup.TransactionID = "t2"
	assert.ErrorIs(t, repo.InsertTransaction(ctx, dup), apperrors.ErrDuplicate)

	txn.Status = domain.StatusProcessing
	require.NoError(t, repo.UpdateTransactionState(ctx, txn, 0))
	assert.ErrorIs(t, repo.UpdateTransactionState(ctx, txn, 0), apperrors.ErrInvalidTransition)

	got, err := repo.FindTransactionByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, domain.StatusProcessing, got.Status)
}

func TestListTransactionsPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.InsertTransaction(ctx, domain.Transaction{
			TransactionID:  string(rune('a' + i)),
			SequenceNumber: string(rune('A' + i)),
			Kind:           domain.KindOrder,
			OwnerID:        "u1",
			AuditFields:    domain.NewAuditFields("u1", base.Add(time.Duration(i)*time.Minute)),
		}))
	}

	page1, next, err := repo.ListTransactions(ctx, domain.TransactionFilter{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, "e", page1[0].TransactionID)
	assert.Equal(t, "d", page1[1].TransactionID)

	page2, next, err := repo.ListTransactions(ctx, domain.TransactionFilter{}, 2, next)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "c", page2[0].TransactionID)

	page3, next, err := repo.ListTransactions(ctx, domain.TransactionFilter{}, 2, next)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Nil(t, next)
}

func TestInjectFault(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("disk gone")
	s.InjectFault("CreateInventory", boom)
	assert.ErrorIs(t, s.Inventory().CreateInventory(ctx, "x", 1), boom)
	s.InjectFault("CreateInventory", nil)
	assert.NoError(t, s.Inventory().CreateInventory(ctx, "x", 1))
}
