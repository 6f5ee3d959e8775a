package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/platform/config"
	"github.com/SscSPs/commerce_lifecycle_app/internal/repositories/memory"
)

type OutboxDispatcherTestSuite struct {
	lifecycleSuite
	sink *recordingSink
}

func TestOutboxDispatcher(t *testing.T) {
	suite.Run(t, new(OutboxDispatcherTestSuite))
}

func (s *OutboxDispatcherTestSuite) SetupTest() {
	s.lifecycleSuite.SetupTest()
	s.sink = &recordingSink{}
}

func (s *OutboxDispatcherTestSuite) dispatcher(maxAttempts int) portssvc.OutboxDispatcherSvc {
	return services.NewOutboxDispatcher(s.store, s.sink, services.DispatcherConfig{MaxAttempts: maxAttempts}, func() time.Time { return s.now })
}

func (s *OutboxDispatcherTestSuite) TestSendsPendingMessages() {
	x := s.createSimple("X", "20.00", 5)
	txn := s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})

	sent, err := s.dispatcher(2).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(2, sent)
	s.Equal(2, s.sink.count())

	msgs, err := s.store.Outbox().ListByTransaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	for _, m := range msgs {
		s.Equal(domain.OutboxSent, m.Status)
		s.Equal(1, m.Attempts)
		s.Require().NotNil(m.SentAt)
		s.True(s.now.Equal(*m.SentAt))
	}

	sent, err = s.dispatcher(2).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Zero(sent)
	s.Equal(2, s.sink.count(), "sent messages are never resent")
}

func (s *OutboxDispatcherTestSuite) TestGivesUpAfterMaxAttempts() {
	x := s.createSimple("X", "20.00", 5)
	txn := s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})
	s.sink.fail = true
	d := s.dispatcher(2)

	for round := 0; round < 3; round++ {
		sent, err := d.DispatchPending(s.ctx, 10)
		s.Require().NoError(err, "delivery failures never fail the round")
		s.Zero(sent)
	}

	msgs, err := s.store.Outbox().ListByTransaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Require().Len(msgs, 2)
	for _, m := range msgs {
		s.Equal(domain.OutboxFailed, m.Status)
		s.Equal(2, m.Attempts)
		s.Require().NotNil(m.LastError)
		s.Contains(*m.LastError, "gateway down")
	}

	s.sink.fail = false
	sent, err := d.DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Zero(sent)
	s.Zero(s.sink.count())

	stored, err := s.svc.GetTransaction(s.ctx, s.admin, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, stored.Status, "notification failures leave the transaction alone")
}

func (s *OutboxDispatcherTestSuite) TestBatchSizeBoundsOneRound() {
	x := s.createSimple("X", "20.00", 5)
	s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})
	s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})

	sent, err := s.dispatcher(3).DispatchPending(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal(3, sent)
	sent, err = s.dispatcher(3).DispatchPending(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal(1, sent)
}

// gatedSink holds every Send until release is closed.
type gatedSink struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	inner   *recordingSink
}

func (g *gatedSink) Send(ctx context.Context, destination, text string) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return g.inner.Send(ctx, destination, text)
}

func (s *OutboxDispatcherTestSuite) TestSlowSinkDoesNotBlockOrders() {
	x := s.createSimple("X", "20.00", 5)
	s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})

	gate := &gatedSink{entered: make(chan struct{}), release: make(chan struct{}), inner: s.sink}
	d := services.NewOutboxDispatcher(s.store, gate, services.DispatcherConfig{MaxAttempts: 3}, func() time.Time { return s.now })

	dispatched := make(chan int, 1)
	go func() {
		sent, err := d.DispatchPending(s.ctx, 10)
		s.NoError(err)
		dispatched <- sent
	}()
	<-gate.entered

	ordered := make(chan error, 1)
	go func() {
		_, err := s.svc.CreateOrder(s.ctx, s.customer, dto.CreateOrderRequest{
			Lines: []dto.OrderLineRequest{{ItemID: x, Quantity: 1}},
		})
		ordered <- err
	}()
	select {
	case err := <-ordered:
		s.Require().NoError(err)
	case <-time.After(2 * time.Second):
		close(gate.release)
		s.FailNow("CreateOrder waited on an in-flight delivery")
	}

	close(gate.release)
	s.Equal(2, <-dispatched)

	// the second order's messages were enqueued while the first batch was out
	sent, err := s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(2, sent)
}

func (s *OutboxDispatcherTestSuite) TestClaimedMessagesWaitForLease() {
	x := s.createSimple("X", "20.00", 5)
	txn := s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})

	claimed, err := s.store.Outbox().ClaimPending(s.ctx, 10, s.now, time.Minute)
	s.Require().NoError(err)
	s.Require().Len(claimed, 2)
	for _, m := range claimed {
		s.Equal(domain.OutboxSending, m.Status)
		s.Require().NotNil(m.ClaimedUntil)
		s.True(s.now.Add(time.Minute).Equal(*m.ClaimedUntil))
	}

	sent, err := s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Zero(sent, "a live claim belongs to the other dispatcher")
	s.Zero(s.sink.count())

	s.now = s.now.Add(2 * time.Minute)
	sent, err = s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(2, sent)

	msgs, err := s.store.Outbox().ListByTransaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	for _, m := range msgs {
		s.Equal(domain.OutboxSent, m.Status)
		s.Nil(m.ClaimedUntil)
	}
}

func (s *OutboxDispatcherTestSuite) TestUnrecordedDeliveryIsRetriedAfterLease() {
	x := s.createSimple("X", "20.00", 5)
	txn := s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})
	s.store.InjectFault("MarkSent", errors.New("disk full"))

	sent, err := s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().NoError(err, "a bookkeeping failure does not abort the round")
	s.Zero(sent)
	s.Equal(2, s.sink.count(), "every claimed message is still delivered")

	msgs, err := s.store.Outbox().ListByTransaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	for _, m := range msgs {
		s.Equal(domain.OutboxSending, m.Status)
		s.Zero(m.Attempts)
	}

	s.store.InjectFault("MarkSent", nil)
	s.now = s.now.Add(2 * time.Minute)
	sent, err = s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(2, sent)
	s.Equal(4, s.sink.count())
}

func (s *OutboxDispatcherTestSuite) TestClaimFailureFailsTheRound() {
	s.store.InjectFault("ClaimPending", errors.New("connection reset"))
	_, err := s.dispatcher(3).DispatchPending(s.ctx, 10)
	s.Require().Error(err)
	s.Contains(err.Error(), "connection reset")
}

func (s *OutboxDispatcherTestSuite) TestWakeNeverBlocks() {
	d := services.NewOutboxDispatcher(s.store, s.sink, services.DispatcherConfig{}, nil)
	for i := 0; i < 10; i++ {
		d.Wake()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	x := s.createSimple("X", "20.00", 5)
	s.order(dto.OrderLineRequest{ItemID: x, Quantity: 1})

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	s.Eventually(func() bool { return s.sink.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	s.NoError(<-done)
}

func TestServiceContainerWiresDispatcherWake(t *testing.T) {
	cfg := &config.Config{
		OutboxMaxAttempts:  3,
		OutboxBatchSize:    10,
		OutboxPollInterval: time.Hour,
		SequenceMaxRetries: 3,
		AdminNotifyPhone:   adminPhone,
		DefaultCurrency:    "USD",
	}
	sink := &recordingSink{}
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(), sink, nil)
	require.NotNil(t, container.Transactions)
	require.NotNil(t, container.Catalog)
	require.NotNil(t, container.Commission)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- container.Dispatcher.Run(ctx) }()

	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	item, err := container.Catalog.CreateItem(ctx, admin, dto.CreateCatalogItemRequest{
		SKU: "X", Name: "X", Kind: string(domain.ItemSimple), UnitPrice: decimal.NewFromInt(3), InitialStock: 1,
	})
	require.NoError(t, err)
	_, err = container.Transactions.CreateOrder(ctx, domain.Actor{UserID: "cust-1", Role: domain.RoleCustomer},
		dto.CreateOrderRequest{Lines: []dto.OrderLineRequest{{ItemID: item.ItemID, Quantity: 1}}})
	require.NoError(t, err)

	// the poll interval is an hour, so only the wake-up can have delivered it
	assert.Eventually(t, func() bool { return sink.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
