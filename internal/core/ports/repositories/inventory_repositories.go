package repositories

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// InventoryReader defines read operations for stock levels
type InventoryReader interface {
	FindInventory(ctx context.Context, itemID string) (*domain.InventoryRecord, error)
	FindInventoryByItemIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryRecord, error)
}

// InventoryWriter defines conditional stock updates. Each call is a single atomic
// check-and-set at the storage layer, never a read followed by a write.
type InventoryWriter interface {
	// CreateInventory starts tracking an item with the given on-hand quantity.
	CreateInventory(ctx context.Context, itemID string, quantity int) error

	// Reserve claims qty units. Fails with apperrors.ErrInsufficientStock when fewer are available.
	Reserve(ctx context.Context, itemID string, qty int) error

	// Release returns qty reserved units. Fails with apperrors.ErrInventoryInvariant when fewer are reserved.
	Release(ctx context.Context, itemID string, qty int) error

	// Commit depletes qty reserved units from physical stock. Fails with apperrors.ErrInventoryInvariant when fewer are reserved.
	Commit(ctx context.Context, itemID string, qty int) error

	// Restock adds qty units back to physical stock.
	Restock(ctx context.Context, itemID string, qty int) error

	// AdjustStock applies delta to physical stock, refusing to drop below the reserved quantity.
	AdjustStock(ctx context.Context, itemID string, delta int) (*domain.InventoryRecord, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
