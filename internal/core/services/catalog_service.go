package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

type catalogService struct {
	BaseService
	store           portsrepo.Store
	defaultCurrency string
}

// NewCatalogService creates the service managing catalog items and their stock.
func NewCatalogService(store portsrepo.Store, defaultCurrency string, clock func() time.Time) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService:     BaseService{Authorizer: NewAuthorizer(), Clock: clock},
		store:           store,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) GetItem(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	return s.store.Catalog().FindItemByID(ctx, itemID)
}

func (s *catalogService) ListItems(ctx context.Context, params dto.ListCatalogItemsParams) (*dto.ListCatalogItemsResponse, error) {
	limit := pagination.ClampLimit(params.Limit, defaultListLimit, maxListLimit)
	items, next, err := s.store.Catalog().ListItems(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListCatalogItemsResponse{Items: make([]dto.CatalogItemResponse, len(items)), NextToken: next}
	for i := range items {
		resp.Items[i] = dto.ToCatalogItemResponse(&items[i])
	}
	return resp, nil
}

func (s *catalogService) GetInventory(ctx context.Context, itemID string) (*domain.InventoryRecord, error) {
	return s.store.Inventory().FindInventory(ctx, itemID)
}

// CreateItem adds a simple item with its opening stock, or a combo of existing simple items.
// Combos hold no stock of their own.
func (s *catalogService) CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateCatalogItemRequest) (*domain.CatalogItem, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCatalog, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SKU) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: sku and name are required", apperrors.ErrValidation)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}
	if req.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial stock must not be negative", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.defaultCurrency
	}
	item := domain.CatalogItem{
		ItemID:       uuid.NewString(),
		SKU:          strings.TrimSpace(req.SKU),
		Name:         strings.TrimSpace(req.Name),
		Kind:         domain.ItemKind(req.Kind),
		UnitPrice:    req.UnitPrice,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor.UserID, s.Now()),
	}

	switch item.Kind {
	case domain.ItemSimple:
		if len(req.Components) > 0 {
			return nil, fmt.Errorf("%w: a simple item cannot have components", apperrors.ErrValidation)
		}
	case domain.ItemCombo:
		if len(req.Components) == 0 {
			return nil, fmt.Errorf("%w: a combo needs at least one component", apperrors.ErrValidation)
		}
		if req.InitialStock != 0 {
			return nil, fmt.Errorf("%w: combos hold no stock of their own", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", apperrors.ErrValidation, req.Kind)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		if item.Kind == domain.ItemCombo {
			comps, err := s.resolveComponents(ctx, st, item.ItemID, req.Components)
			if err != nil {
				return err
			}
			item.Components = comps
		}
		if err := st.Catalog().InsertItem(ctx, item); err != nil {
			return err
		}
		if item.Kind == domain.ItemSimple {
			return st.Inventory().CreateInventory(ctx, item.ItemID, req.InitialStock)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create catalog item", slog.String("sku", item.SKU))
		return nil, err
	}
	s.LogInfo(ctx, "Catalog item created", slog.String("item_id", item.ItemID), slog.String("kind", string(item.Kind)))
	return &item, nil
}

func (s *catalogService) resolveComponents(ctx context.Context, st portsrepo.Store, comboID string, reqs []dto.ComboComponentRequest) ([]domain.ComboComponent, error) {
	ids := make([]string, 0, len(reqs))
	seen := map[string]bool{}
	for _, c := range reqs {
		if c.Quantity <= 0 {
			return nil, fmt.Errorf("%w: component quantity must be positive", apperrors.ErrValidation)
		}
		if seen[c.ItemID] {
			return nil, fmt.Errorf("%w: component %s listed twice", apperrors.ErrValidation, c.ItemID)
		}
		seen[c.ItemID] = true
		ids = append(ids, c.ItemID)
	}
	found, err := st.Catalog().FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ComboComponent, 0, len(reqs))
	for _, c := range reqs {
		item, ok := found[c.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: component %s does not exist", apperrors.ErrValidation, c.ItemID)
		}
		if item.Kind != domain.ItemSimple {
			return nil, fmt.Errorf("%w: component %s is not a simple item", apperrors.ErrValidation, c.ItemID)
		}
		out = append(out, domain.ComboComponent{ComboItemID: comboID, ComponentItemID: c.ItemID, Quantity: c.Quantity})
	}
	return out, nil
}

// AdjustStock changes physical stock; it never drops below what is reserved.
func (s *catalogService) AdjustStock(ctx context.Context, actor domain.Actor, itemID string, delta int) (*domain.InventoryRecord, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCatalog, nil); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta must not be zero", apperrors.ErrValidation)
	}
	rec, err := s.store.Inventory().AdjustStock(ctx, itemID, delta)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Stock adjusted", slog.String("item_id", itemID), slog.Int("delta", delta), slog.Int("quantity", rec.Quantity))
	return rec, nil
}
