package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/repositories/memory"
)

const adminPhone = "+15550000001"

// recordingSink keeps every delivered text and can be told to fail.
type recordingSink struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (r *recordingSink) Send(_ context.Context, destination, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.Join(apperrors.ErrNotification, errors.New("gateway down"))
	}
	r.sent = append(r.sent, destination+": "+text)
	return nil
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// lifecycleSuite wires the real services over the in-memory store.
type lifecycleSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	svc        portssvc.TransactionSvcFacade
	catalog    portssvc.CatalogSvcFacade
	commission portssvc.CommissionSvcFacade
	admin      domain.Actor
	customer   domain.Actor
	stranger   domain.Actor
	wakes      atomic.Int32
	now        time.Time
}

func (s *lifecycleSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.now = time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC)
	s.wakes.Store(0)
	clock := func() time.Time { return s.now }

	s.svc = s.newTransactionService()
	s.catalog = services.NewCatalogService(s.store, "USD", clock)
	s.commission = services.NewCommissionService(s.store, clock)

	s.admin = domain.Actor{UserID: "admin-" + uuid.NewString(), Role: domain.RoleAdmin}
	s.customer = domain.Actor{UserID: "cust-" + uuid.NewString(), Role: domain.RoleCustomer}
	s.stranger = domain.Actor{UserID: "cust-" + uuid.NewString(), Role: domain.RoleCustomer}
}

func (s *lifecycleSuite) newTransactionService(opts ...services.TransactionServiceOption) portssvc.TransactionSvcFacade {
	base := []services.TransactionServiceOption{
		services.WithClock(func() time.Time { return s.now }),
		services.WithAdminPhone(adminPhone),
		services.WithDispatcherWake(func() { s.wakes.Add(1) }),
	}
	return services.NewTransactionService(s.store, append(base, opts...)...)
}

func (s *lifecycleSuite) createSimple(sku string, price string, stock int) string {
	item, err := s.catalog.CreateItem(s.ctx, s.admin, dto.CreateCatalogItemRequest{
		SKU:          sku,
		Name:         "Item " + sku,
		Kind:         string(domain.ItemSimple),
		UnitPrice:    decimal.RequireFromString(price),
		InitialStock: stock,
	})
	s.Require().NoError(err)
	return item.ItemID
}

func (s *lifecycleSuite) createCombo(sku string, price string, components ...dto.ComboComponentRequest) string {
	item, err := s.catalog.CreateItem(s.ctx, s.admin, dto.CreateCatalogItemRequest{
		SKU:        sku,
		Name:       "Combo " + sku,
		Kind:       string(domain.ItemCombo),
		UnitPrice:  decimal.RequireFromString(price),
		Components: components,
	})
	s.Require().NoError(err)
	return item.ItemID
}

func (s *lifecycleSuite) stock(itemID string) domain.InventoryRecord {
	rec, err := s.catalog.GetInventory(s.ctx, itemID)
	s.Require().NoError(err)
	return *rec
}

func (s *lifecycleSuite) order(lines ...dto.OrderLineRequest) *domain.Transaction {
	txn, err := s.svc.CreateOrder(s.ctx, s.customer, dto.CreateOrderRequest{Lines: lines, ContactPhone: "+15551234567"})
	s.Require().NoError(err)
	return txn
}

func (s *lifecycleSuite) submitProof(txn *domain.Transaction) *domain.Transaction {
	out, err := s.svc.SubmitPaymentProof(s.ctx, s.customer, txn.TransactionID, txn.TransactionID+"/proof.png")
	s.Require().NoError(err)
	return out
}

// usdToMxnProfile is min 10, max 5000, 2% commission, no fixed fee, rate 120.
func (s *lifecycleSuite) usdToMxnProfile(method domain.DeliveryMethod) *domain.CommissionProfile {
	p, err := s.commission.CreateProfile(s.ctx, s.admin, dto.CreateCommissionProfileRequest{
		Name:                 "USD to MXN",
		SourceCurrency:       "USD",
		TargetCurrency:       "MXN",
		DeliveryMethod:       string(method),
		ExchangeRate:         decimal.NewFromInt(120),
		CommissionPercentage: decimal.NewFromInt(2),
		CommissionFixed:      decimal.Zero,
		MinAmount:            decimal.NewFromInt(10),
		MaxAmount:            decimal.NewFromInt(5000),
	})
	s.Require().NoError(err)
	return p
}

func (s *lifecycleSuite) remittance(profileID string, recipientUserID *string) *domain.Transaction {
	txn, err := s.svc.CreateRemittance(s.ctx, s.customer, dto.CreateRemittanceRequest{
		ProfileID:    profileID,
		Amount:       decimal.NewFromInt(100),
		ContactPhone: "+15551234567",
		Recipient: dto.RecipientRequest{
			Name:   "Ana Recipient",
			Phone:  "+525512345678",
			UserID: recipientUserID,
		},
	})
	s.Require().NoError(err)
	return txn
}

func (s *lifecycleSuite) statusPath(transactionID string, machine domain.MachineName) []string {
	entries, err := s.svc.ListHistory(s.ctx, s.admin, transactionID)
	s.Require().NoError(err)
	var path []string
	for _, e := range entries {
		if e.Machine == machine {
			path = append(path, e.ToState)
		}
	}
	return path
}

func (s *lifecycleSuite) reload(transactionID string) *domain.Transaction {
	txn, err := s.svc.GetTransaction(s.ctx, s.admin, transactionID)
	s.Require().NoError(err)
	return txn
}
