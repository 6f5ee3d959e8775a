package services_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// catalogCalls counts batch lookups made through a countingStore.
type catalogCalls struct {
	items      atomic.Int32
	components atomic.Int32
}

type countingCatalog struct {
	portsrepo.CatalogRepositoryFacade
	calls *catalogCalls
}

func (c countingCatalog) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.CatalogItem, error) {
	c.calls.items.Add(1)
	return c.CatalogRepositoryFacade.FindItemsByIDs(ctx, itemIDs)
}

func (c countingCatalog) FindComponentsByComboIDs(ctx context.Context, comboIDs []string) (map[string][]domain.ComboComponent, error) {
	c.calls.components.Add(1)
	return c.CatalogRepositoryFacade.FindComponentsByComboIDs(ctx, comboIDs)
}

// countingStore wraps every store handed out, including the ones scoped to a unit of work.
type countingStore struct {
	portsrepo.Store
	calls *catalogCalls
}

func (s countingStore) Catalog() portsrepo.CatalogRepositoryFacade {
	return countingCatalog{CatalogRepositoryFacade: s.Store.Catalog(), calls: s.calls}
}

func (s countingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, inner portsrepo.Store) error {
		return fn(ctx, countingStore{Store: inner, calls: s.calls})
	})
}

type OrderResolutionTestSuite struct {
	lifecycleSuite
}

func TestOrderResolution(t *testing.T) {
	suite.Run(t, new(OrderResolutionTestSuite))
}

func (s *OrderResolutionTestSuite) TestCatalogIsReadInOneBatchPerKind() {
	a := s.createSimple("A", "2.00", 20)
	b := s.createSimple("B", "3.00", 20)
	c := s.createSimple("C", "4.00", 20)
	pair := s.createCombo("PAIR", "3.50", dto.ComboComponentRequest{ItemID: a, Quantity: 2})
	mixed := s.createCombo("MIXED", "6.00",
		dto.ComboComponentRequest{ItemID: a, Quantity: 1},
		dto.ComboComponentRequest{ItemID: b, Quantity: 1})

	calls := &catalogCalls{}
	svc := services.NewTransactionService(countingStore{Store: s.store, calls: calls}, services.WithDefaultCurrency("USD"))

	txn, err := svc.CreateOrder(s.ctx, s.customer, dto.CreateOrderRequest{Lines: []dto.OrderLineRequest{
		{ItemID: a, Quantity: 1},
		{ItemID: pair, Quantity: 1},
		{ItemID: mixed, Quantity: 2},
		{ItemID: c, Quantity: 3},
		{ItemID: a, Quantity: 1},
	}})
	s.Require().NoError(err)

	s.EqualValues(1, calls.items.Load(), "items are loaded in one lookup")
	s.EqualValues(1, calls.components.Load(), "combo compositions are loaded in one lookup")

	s.Len(txn.Lines, 5)
	s.True(decimal.RequireFromString("31.50").Equal(txn.Amount), txn.Amount.String())
	s.Equal(6, s.stock(a).ReservedQuantity)
	s.Equal(2, s.stock(b).ReservedQuantity)
	s.Equal(3, s.stock(c).ReservedQuantity)
}

func (s *OrderResolutionTestSuite) TestSimpleOnlyOrderSkipsCompositionLookup() {
	a := s.createSimple("A", "2.00", 5)

	calls := &catalogCalls{}
	svc := services.NewTransactionService(countingStore{Store: s.store, calls: calls}, services.WithDefaultCurrency("USD"))
	_, err := svc.CreateOrder(s.ctx, s.customer, dto.CreateOrderRequest{Lines: []dto.OrderLineRequest{{ItemID: a, Quantity: 2}}})
	s.Require().NoError(err)

	s.EqualValues(1, calls.items.Load())
	s.Zero(calls.components.Load())
}
