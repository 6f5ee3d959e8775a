package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/statemachine"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/accounting"
)

// CreateOrder prices the requested lines, reserves stock for every constituent and
// persists the order in PENDING. Any shortage aborts the whole order.
func (s *transactionService) CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Transaction, error) {
	if err := s.Authorize(ctx, actor, domain.ActionCreate, nil); err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx)

	var created *domain.Transaction
	queued := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		resolved, err := resolveOrderLines(ctx, st.Catalog(), req.Lines, s.defaultCurrency)
		if err != nil {
			return err
		}

		if err := s.ledger.Reserve(ctx, st.Inventory(), resolved.Claims); err != nil {
			return err
		}

		now := s.Now()
		txn := &domain.Transaction{
			TransactionID:  s.newID(),
			Kind:           domain.KindOrder,
			OwnerID:        actor.UserID,
			ContactPhone:   req.ContactPhone,
			Status:         statemachine.OrderStatus.Initial(),
			PaymentStatus:  statemachine.Payment.Initial(),
			InventoryState: domain.InventoryReserved,
			Amount:         accounting.OrderTotal(resolved.Lines),
			CurrencyCode:   resolved.CurrencyCode,
			Lines:          resolved.Lines,
			AuditFields:    domain.NewAuditFields(actor.UserID, now),
		}
		for i := range txn.Lines {
			txn.Lines[i].LineID = s.newID()
			txn.Lines[i].TransactionID = txn.TransactionID
		}

		q, err := s.persistNew(ctx, st, txn, actor)
		if err != nil {
			return err
		}
		if err := st.Transactions().ReplaceReservations(ctx, txn.TransactionID, withTransactionID(resolved.Claims, txn.TransactionID)); err != nil {
			return err
		}
		queued = q
		created = txn
		return nil
	})
	if err != nil {
		s.logFailure(ctx, logger.With(slog.String("operation", "create_order")), err)
		return nil, err
	}

	logger.Info("Order created",
		slog.String("transaction_id", created.TransactionID),
		slog.String("sequence_number", created.SequenceNumber),
		slog.Int("lines", len(created.Lines)))
	if queued {
		s.wake()
	}
	return created, nil
}

func withTransactionID(claims []domain.Reservation, transactionID string) []domain.Reservation {
	out := make([]domain.Reservation, len(claims))
	for i, c := range claims {
		c.TransactionID = transactionID
		out[i] = c
	}
	return out
}
