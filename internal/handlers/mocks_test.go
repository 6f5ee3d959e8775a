package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) txn(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, req))
}
func (m *MockTransactionService) QuoteRemittance(ctx context.Context, profileID string, amount string) (*dto.QuoteResponse, error) {
	args := m.Called(ctx, profileID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuoteResponse), args.Error(1)
}
func (m *MockTransactionService) CreateRemittance(ctx context.Context, actor domain.Actor, req dto.CreateRemittanceRequest) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, req))
}
func (m *MockTransactionService) SubmitPaymentProof(ctx context.Context, actor domain.Actor, transactionID, proofRef string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID, proofRef))
}
func (m *MockTransactionService) ValidatePayment(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID))
}
func (m *MockTransactionService) RejectPayment(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID, reason))
}
func (m *MockTransactionService) StartProcessing(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID))
}
func (m *MockTransactionService) MarkShipped(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID))
}
func (m *MockTransactionService) ConfirmDelivery(ctx context.Context, actor domain.Actor, transactionID string, proofRef *string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID, proofRef))
}
func (m *MockTransactionService) Complete(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID))
}
func (m *MockTransactionService) Cancel(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID, reason))
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return m.txn(m.Called(ctx, actor, transactionID))
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ListHistory(ctx context.Context, actor domain.Actor, transactionID string) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

func (m *MockCatalogService) GetItem(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) ListItems(ctx context.Context, params dto.ListCatalogItemsParams) (*dto.ListCatalogItemsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCatalogItemsResponse), args.Error(1)
}
func (m *MockCatalogService) GetInventory(ctx context.Context, itemID string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}
func (m *MockCatalogService) CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateCatalogItemRequest) (*domain.CatalogItem, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) AdjustStock(ctx context.Context, actor domain.Actor, itemID string, delta int) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, actor, itemID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

// --- Mock CommissionService ---
type MockCommissionService struct {
	mock.Mock
}

var _ portssvc.CommissionSvcFacade = (*MockCommissionService)(nil)

func (m *MockCommissionService) GetProfile(ctx context.Context, profileID string) (*domain.CommissionProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionProfile), args.Error(1)
}
func (m *MockCommissionService) ListProfiles(ctx context.Context, activeOnly bool) ([]domain.CommissionProfile, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommissionProfile), args.Error(1)
}
func (m *MockCommissionService) CreateProfile(ctx context.Context, actor domain.Actor, req dto.CreateCommissionProfileRequest) (*domain.CommissionProfile, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionProfile), args.Error(1)
}
func (m *MockCommissionService) UpdateProfile(ctx context.Context, actor domain.Actor, profileID string, req dto.UpdateCommissionProfileRequest) (*domain.CommissionProfile, error) {
	args := m.Called(ctx, actor, profileID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionProfile), args.Error(1)
}
func (m *MockCommissionService) DeactivateProfile(ctx context.Context, actor domain.Actor, profileID string) error {
	return m.Called(ctx, actor, profileID).Error(0)
}

// --- Mock ProofStore ---
type MockProofStore struct {
	mock.Mock
}

var _ portssvc.ProofStore = (*MockProofStore)(nil)

func (m *MockProofStore) Save(ctx context.Context, transactionID, filename string, content io.Reader) (string, error) {
	body, _ := io.ReadAll(content)
	args := m.Called(ctx, transactionID, filename, string(body))
	return args.String(0), args.Error(1)
}

func (m *MockProofStore) Remove(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}
