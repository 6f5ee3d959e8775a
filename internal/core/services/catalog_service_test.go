package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

type CatalogServiceTestSuite struct {
	lifecycleSuite
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestCreateSimpleItemOpensStock() {
	id := s.createSimple("MUG", "7.50", 12)

	item, err := s.catalog.GetItem(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.ItemSimple, item.Kind)
	s.Equal("USD", item.CurrencyCode)
	s.True(item.IsActive)
	s.Equal(12, s.stock(id).Quantity)
}

func (s *CatalogServiceTestSuite) TestComboHoldsNoStock() {
	a := s.createSimple("A", "5.00", 10)
	combo := s.createCombo("PACK", "9.00", dto.ComboComponentRequest{ItemID: a, Quantity: 2})

	item, err := s.catalog.GetItem(s.ctx, combo)
	s.Require().NoError(err)
	s.Require().Len(item.Components, 1)
	s.Equal(a, item.Components[0].ComponentItemID)

	_, err = s.catalog.GetInventory(s.ctx, combo)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CatalogServiceTestSuite) TestCreateItemValidation() {
	a := s.createSimple("A", "5.00", 10)
	combo := s.createCombo("PACK", "9.00", dto.ComboComponentRequest{ItemID: a, Quantity: 1})

	tests := []struct {
		name    string
		req     dto.CreateCatalogItemRequest
		wantErr error
	}{
		{
			name:    "duplicate sku",
			req:     dto.CreateCatalogItemRequest{SKU: "A", Name: "Again", Kind: "SIMPLE", UnitPrice: decimal.NewFromInt(1)},
			wantErr: apperrors.ErrDuplicate,
		},
		{
			name:    "negative price",
			req:     dto.CreateCatalogItemRequest{SKU: "B", Name: "B", Kind: "SIMPLE", UnitPrice: decimal.NewFromInt(-1)},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "combo without components",
			req:     dto.CreateCatalogItemRequest{SKU: "C", Name: "C", Kind: "COMBO", UnitPrice: decimal.NewFromInt(1)},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "combo of a combo",
			req: dto.CreateCatalogItemRequest{SKU: "D", Name: "D", Kind: "COMBO", UnitPrice: decimal.NewFromInt(1),
				Components: []dto.ComboComponentRequest{{ItemID: combo, Quantity: 1}}},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unknown component",
			req: dto.CreateCatalogItemRequest{SKU: "E", Name: "E", Kind: "COMBO", UnitPrice: decimal.NewFromInt(1),
				Components: []dto.ComboComponentRequest{{ItemID: "nope", Quantity: 1}}},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "combo with own stock",
			req: dto.CreateCatalogItemRequest{SKU: "F", Name: "F", Kind: "COMBO", UnitPrice: decimal.NewFromInt(1), InitialStock: 3,
				Components: []dto.ComboComponentRequest{{ItemID: a, Quantity: 1}}},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.catalog.CreateItem(s.ctx, s.admin, tt.req)
			s.ErrorIs(err, tt.wantErr)
		})
	}
}

func (s *CatalogServiceTestSuite) TestCustomerCannotManageCatalog() {
	_, err := s.catalog.CreateItem(s.ctx, s.customer, dto.CreateCatalogItemRequest{SKU: "A", Name: "A", Kind: "SIMPLE"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	a := s.createSimple("A", "5.00", 10)
	_, err = s.catalog.AdjustStock(s.ctx, s.customer, a, 5)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Equal(10, s.stock(a).Quantity)
}

func (s *CatalogServiceTestSuite) TestAdjustStockNeverDropsBelowReserved() {
	a := s.createSimple("A", "5.00", 10)
	s.order(dto.OrderLineRequest{ItemID: a, Quantity: 4})

	_, err := s.catalog.AdjustStock(s.ctx, s.admin, a, -7)
	s.ErrorIs(err, apperrors.ErrValidation)

	rec, err := s.catalog.AdjustStock(s.ctx, s.admin, a, -6)
	s.Require().NoError(err)
	s.Equal(4, rec.Quantity)
	s.Equal(0, rec.Available())

	_, err = s.catalog.AdjustStock(s.ctx, s.admin, a, 0)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CatalogServiceTestSuite) TestFailedCreateWritesNothing() {
	s.store.InjectFault("CreateInventory", errors.New("disk full"))
	defer s.store.InjectFault("CreateInventory", nil)

	_, err := s.catalog.CreateItem(s.ctx, s.admin, dto.CreateCatalogItemRequest{SKU: "A", Name: "A", Kind: "SIMPLE", InitialStock: 3})
	s.Error(err)

	list, err := s.catalog.ListItems(s.ctx, dto.ListCatalogItemsParams{})
	s.Require().NoError(err)
	s.Empty(list.Items)
}

type CommissionServiceTestSuite struct {
	lifecycleSuite
}

func TestCommissionService(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}

func (s *CommissionServiceTestSuite) TestCreateAndList() {
	p := s.usdToMxnProfile(domain.DeliveryTransfer)
	s.True(p.IsActive)

	got, err := s.commission.GetProfile(s.ctx, p.ProfileID)
	s.Require().NoError(err)
	s.Equal(domain.DeliveryTransfer, got.DeliveryMethod)
	s.True(decimal.NewFromInt(120).Equal(got.ExchangeRate))

	s.Require().NoError(s.commission.DeactivateProfile(s.ctx, s.admin, p.ProfileID))
	active, err := s.commission.ListProfiles(s.ctx, true)
	s.Require().NoError(err)
	s.Empty(active)
	all, err := s.commission.ListProfiles(s.ctx, false)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *CommissionServiceTestSuite) TestInvalidProfiles() {
	base := dto.CreateCommissionProfileRequest{
		Name:                 "USD to MXN",
		SourceCurrency:       "USD",
		TargetCurrency:       "MXN",
		DeliveryMethod:       "cash",
		ExchangeRate:         decimal.NewFromInt(17),
		CommissionPercentage: decimal.NewFromInt(3),
		MinAmount:            decimal.NewFromInt(10),
		MaxAmount:            decimal.NewFromInt(100),
	}

	tests := []struct {
		name   string
		mutate func(r *dto.CreateCommissionProfileRequest)
	}{
		{name: "unknown currency", mutate: func(r *dto.CreateCommissionProfileRequest) { r.TargetCurrency = "XXY" }},
		{name: "unknown delivery method", mutate: func(r *dto.CreateCommissionProfileRequest) { r.DeliveryMethod = "pigeon" }},
		{name: "max below min", mutate: func(r *dto.CreateCommissionProfileRequest) { r.MaxAmount = decimal.NewFromInt(5) }},
		{name: "zero rate", mutate: func(r *dto.CreateCommissionProfileRequest) { r.ExchangeRate = decimal.Zero }},
		{name: "negative fee", mutate: func(r *dto.CreateCommissionProfileRequest) { r.CommissionFixed = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := base
			tt.mutate(&req)
			_, err := s.commission.CreateProfile(s.ctx, s.admin, req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *CommissionServiceTestSuite) TestUpdateIsValidatedAndAdminOnly() {
	p := s.usdToMxnProfile(domain.DeliveryCash)

	low := decimal.NewFromInt(1)
	_, err := s.commission.UpdateProfile(s.ctx, s.admin, p.ProfileID, dto.UpdateCommissionProfileRequest{MaxAmount: &low})
	s.ErrorIs(err, apperrors.ErrValidation)

	rate := decimal.NewFromInt(121)
	_, err = s.commission.UpdateProfile(s.ctx, s.customer, p.ProfileID, dto.UpdateCommissionProfileRequest{ExchangeRate: &rate})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.commission.UpdateProfile(s.ctx, s.admin, "missing", dto.UpdateCommissionProfileRequest{ExchangeRate: &rate})
	s.ErrorIs(err, apperrors.ErrNotFound)

	got, err := s.commission.GetProfile(s.ctx, p.ProfileID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(5000).Equal(got.MaxAmount))
	s.True(decimal.NewFromInt(120).Equal(got.ExchangeRate))
}
