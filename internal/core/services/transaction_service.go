package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/statemachine"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

const (
	defaultSequenceRetries = 5
	defaultListLimit       = 20
	maxListLimit           = 100
)

// transactionService orchestrates orders and remittances.
type transactionService struct {
	BaseService
	store           portsrepo.Store
	ledger          inventoryLedger
	notices         noticeComposer
	sequences       SequenceGenerator
	waker           func()
	newID           func() string
	sequenceRetries int
	defaultCurrency string
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithAuthorizer overrides the default role authorizer.
func WithAuthorizer(authz portssvc.Authorizer) TransactionServiceOption {
	return func(s *transactionService) { s.Authorizer = authz }
}

// WithClock injects the time source.
func WithClock(clock func() time.Time) TransactionServiceOption {
	return func(s *transactionService) { s.Clock = clock }
}

// WithSequenceGenerator replaces the random sequence number source.
func WithSequenceGenerator(gen SequenceGenerator) TransactionServiceOption {
	return func(s *transactionService) { s.sequences = gen }
}

// WithSequenceRetries bounds how many sequence numbers are tried before giving up.
func WithSequenceRetries(n int) TransactionServiceOption {
	return func(s *transactionService) {
		if n > 0 {
			s.sequenceRetries = n
		}
	}
}

// WithAdminPhone sets the destination for admin-facing notifications.
func WithAdminPhone(phone string) TransactionServiceOption {
	return func(s *transactionService) { s.notices.adminPhone = phone }
}

// WithDefaultCurrency sets the currency used for catalog items that have none.
func WithDefaultCurrency(code string) TransactionServiceOption {
	return func(s *transactionService) { s.defaultCurrency = code }
}

// WithDispatcherWake is called after every committed change that queued notifications.
func WithDispatcherWake(wake func()) TransactionServiceOption {
	return func(s *transactionService) { s.waker = wake }
}

// NewTransactionService creates the orchestrator over store.
func NewTransactionService(store portsrepo.Store, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		BaseService:     BaseService{Authorizer: NewAuthorizer()},
		store:           store,
		sequences:       NewRandomSequenceGenerator(),
		newID:           uuid.NewString,
		sequenceRetries: defaultSequenceRetries,
		defaultCurrency: "USD",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// transition accumulates the effects of one operation on a locked transaction.
type transition struct {
	txn     *domain.Transaction
	actor   domain.Actor
	now     time.Time
	history []domain.StatusHistoryEntry
	event   lifecycleEvent
}

// moveStatus validates and applies a lifecycle edge.
func (t *transition) moveStatus(to domain.TransactionStatus, reason *string) error {
	m := statemachine.StatusMachineFor(t.txn.Kind)
	if m == nil {
		return fmt.Errorf("%w: unknown transaction kind %s", apperrors.ErrValidation, t.txn.Kind)
	}
	if err := m.Validate(t.txn.Status, to); err != nil {
		return err
	}
	t.record(domain.MachineStatus, string(t.txn.Status), string(to), reason)
	t.txn.Status = to
	return nil
}

// movePayment validates and applies a payment edge.
func (t *transition) movePayment(to domain.PaymentStatus, reason *string) error {
	if err := statemachine.Payment.Validate(t.txn.PaymentStatus, to); err != nil {
		return err
	}
	t.record(domain.MachinePayment, string(t.txn.PaymentStatus), string(to), reason)
	t.txn.PaymentStatus = to
	return nil
}

func (t *transition) record(machine domain.MachineName, from, to string, reason *string) {
	t.history = append(t.history, domain.StatusHistoryEntry{
		TransactionID: t.txn.TransactionID,
		Machine:       machine,
		FromState:     from,
		ToState:       to,
		ActorID:       t.actor.UserID,
		Reason:        reason,
		CreatedAt:     t.now,
	})
}

// transitionStep validates its edges first and only then performs side effects.
type transitionStep func(ctx context.Context, st portsrepo.Store, t *transition) error

// runTransition is the template every lifecycle operation follows: lock, authorize,
// validate and apply, conditionally persist, append history, queue notifications.
func (s *transactionService) runTransition(ctx context.Context, op string, actor domain.Actor, action domain.Action, transactionID string, step transitionStep) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx).With(slog.String("operation", op), slog.String("transaction_id", transactionID))

	var result *domain.Transaction
	queued := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		txn, err := st.Transactions().FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := s.Authorize(ctx, actor, action, txn); err != nil {
			return err
		}

		expectedVersion := txn.Version
		t := &transition{txn: txn, actor: actor, now: s.Now()}
		if err := step(ctx, st, t); err != nil {
			return err
		}
		if len(t.history) == 0 {
			return fmt.Errorf("%w: %s changed nothing", apperrors.ErrInvalidTransition, op)
		}

		txn.Touch(actor.UserID, t.now)
		if err := st.Transactions().UpdateTransactionState(ctx, *txn, expectedVersion); err != nil {
			return err
		}
		txn.Version = expectedVersion + 1

		if err := st.History().AppendHistory(ctx, t.history...); err != nil {
			return err
		}
		if t.event != "" {
			queued = s.enqueueNotices(ctx, st, txn, t.event, actor)
		}
		result = txn
		return nil
	})
	if err != nil {
		s.logFailure(ctx, logger, err)
		return nil, err
	}

	logger.Info("Transaction updated",
		slog.String("status", string(result.Status)),
		slog.String("payment_status", string(result.PaymentStatus)),
		slog.Int("version", result.Version))
	if queued {
		s.wake()
	}
	return result, nil
}

// enqueueNotices appends outbox rows inside a savepoint. Failures are logged and never abort the operation.
func (s *transactionService) enqueueNotices(ctx context.Context, st portsrepo.Store, txn *domain.Transaction, event lifecycleEvent, actor domain.Actor) bool {
	notices := s.notices.compose(txn, event, actor)
	if len(notices) == 0 {
		return false
	}
	now := s.Now()
	msgs := make([]domain.OutboxMessage, 0, len(notices))
	for _, n := range notices {
		msgs = append(msgs, domain.OutboxMessage{
			MessageID:     s.newID(),
			TransactionID: txn.TransactionID,
			Destination:   n.destination,
			Body:          n.body,
			Status:        domain.OutboxPending,
			CreatedAt:     now,
		})
	}
	err := st.WithinTx(ctx, func(ctx context.Context, sp portsrepo.Store) error {
		return sp.Outbox().EnqueueMessages(ctx, msgs...)
	})
	if err != nil {
		s.LogWarn(ctx, fmt.Errorf("%w: %v", apperrors.ErrNotification, err), "Failed to queue notifications",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("event", string(event)))
		return false
	}
	return true
}

func (s *transactionService) wake() {
	if s.waker != nil {
		s.waker()
	}
}

func (s *transactionService) logFailure(ctx context.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrUnauthorized):
		logger.Info("Operation rejected", slog.String("error", err.Error()))
	default:
		logger.Error("Operation failed", slog.String("error", err.Error()))
	}
}

// insertWithSequence assigns a sequence number and inserts txn, retrying on collision.
func (s *transactionService) insertWithSequence(ctx context.Context, st portsrepo.Store, txn *domain.Transaction) error {
	var lastErr error
	for attempt := 1; attempt <= s.sequenceRetries; attempt++ {
		seq, err := s.sequences.Next(txn.Kind, txn.CreatedAt)
		if err != nil {
			return fmt.Errorf("generating sequence number: %w", err)
		}
		txn.SequenceNumber = seq
		err = st.Transactions().InsertTransaction(ctx, *txn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		lastErr = err
		s.LogDebug(ctx, "Sequence number collision, retrying", slog.String("sequence", seq), slog.Int("attempt", attempt))
	}
	return fmt.Errorf("%w: no free sequence number after %d attempts: %v", apperrors.ErrDuplicate, s.sequenceRetries, lastErr)
}

// creationHistory records the initial states of a new transaction.
func creationHistory(txn *domain.Transaction, actor domain.Actor) []domain.StatusHistoryEntry {
	return []domain.StatusHistoryEntry{
		{
			TransactionID: txn.TransactionID,
			Machine:       domain.MachineStatus,
			ToState:       string(txn.Status),
			ActorID:       actor.UserID,
			CreatedAt:     txn.CreatedAt,
		},
		{
			TransactionID: txn.TransactionID,
			Machine:       domain.MachinePayment,
			ToState:       string(txn.PaymentStatus),
			ActorID:       actor.UserID,
			CreatedAt:     txn.CreatedAt,
		},
	}
}

// persistNew inserts a freshly built transaction with its creation history and notices.
func (s *transactionService) persistNew(ctx context.Context, st portsrepo.Store, txn *domain.Transaction, actor domain.Actor) (bool, error) {
	if err := s.insertWithSequence(ctx, st, txn); err != nil {
		return false, err
	}
	if err := st.History().AppendHistory(ctx, creationHistory(txn, actor)...); err != nil {
		return false, err
	}
	return s.enqueueNotices(ctx, st, txn, eventCreated, actor), nil
}

// GetTransaction returns a transaction visible to actor.
func (s *transactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	txn, err := s.store.Transactions().FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, domain.ActionView, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns the caller's own transactions, or any for admins.
func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if actor.UserID == "" {
		return nil, fmt.Errorf("%w: no caller identity", apperrors.ErrUnauthorized)
	}

	filter := domain.TransactionFilter{}
	if actor.IsAdmin() {
		if params.OwnerID != "" {
			filter.OwnerID = &params.OwnerID
		}
	} else {
		owner := actor.UserID
		filter.OwnerID = &owner
	}
	if params.Kind != "" {
		kind := domain.TransactionKind(params.Kind)
		if statemachine.StatusMachineFor(kind) == nil {
			return nil, fmt.Errorf("%w: unknown kind %s", apperrors.ErrValidation, params.Kind)
		}
		filter.Kind = &kind
	}
	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		if !statemachine.OrderStatus.IsKnown(status) && !statemachine.RemittanceStatus.IsKnown(status) {
			return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}

	limit := pagination.ClampLimit(params.Limit, defaultListLimit, maxListLimit)
	txns, next, err := s.store.Transactions().ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

// ListHistory returns every recorded transition of a transaction visible to actor.
func (s *transactionService) ListHistory(ctx context.Context, actor domain.Actor, transactionID string) ([]domain.StatusHistoryEntry, error) {
	if _, err := s.GetTransaction(ctx, actor, transactionID); err != nil {
		return nil, err
	}
	return s.store.History().ListHistory(ctx, transactionID)
}
