package repositories

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// CatalogReader defines read operations for catalog items
type CatalogReader interface {
	FindItemByID(ctx context.Context, itemID string) (*domain.CatalogItem, error)

	// FindItemsByIDs loads many items in one round trip. Missing ids are simply absent from the map.
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.CatalogItem, error)

	// FindComponentsByComboIDs loads the composition of many combos in one round trip.
	FindComponentsByComboIDs(ctx context.Context, comboIDs []string) (map[string][]domain.ComboComponent, error)

	ListItems(ctx context.Context, limit int, nextToken *string) ([]domain.CatalogItem, *string, error)
}

// CatalogWriter defines write operations for catalog items
type CatalogWriter interface {
	// InsertItem persists an item and, for combos, its components. Duplicate SKUs return apperrors.ErrDuplicate.
	InsertItem(ctx context.Context, item domain.CatalogItem) error
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
