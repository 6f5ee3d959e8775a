package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

type inventoryRepo struct{ s *Store }

func (r inventoryRepo) FindInventory(_ context.Context, itemID string) (*domain.InventoryRecord, error) {
	var out domain.InventoryRecord
	err := r.s.read("FindInventory", func(d *dataset) error {
		rec, ok := d.inventory[itemID]
		if !ok {
			return fmt.Errorf("%w: inventory for item %s", apperrors.ErrNotFound, itemID)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r inventoryRepo) FindInventoryByItemIDs(_ context.Context, itemIDs []string) (map[string]domain.InventoryRecord, error) {
	out := make(map[string]domain.InventoryRecord, len(itemIDs))
	err := r.s.read("FindInventoryByItemIDs", func(d *dataset) error {
		for _, id := range itemIDs {
			if rec, ok := d.inventory[id]; ok {
				out[id] = rec
			}
		}
		return nil
	})
	return out, err
}

func (r inventoryRepo) CreateInventory(ctx context.Context, itemID string, quantity int) error {
	return r.s.write(ctx, "CreateInventory", func(d *dataset) error {
		if _, ok := d.inventory[itemID]; ok {
			return fmt.Errorf("%w: inventory for item %s", apperrors.ErrDuplicate, itemID)
		}
		if quantity < 0 {
			return fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
		}
		d.inventory[itemID] = domain.InventoryRecord{ItemID: itemID, Quantity: quantity, LastUpdatedAt: time.Now().UTC()}
		return nil
	})
}

// update applies a guarded change to one record; apply returns the error that aborts it.
func (r inventoryRepo) update(ctx context.Context, op, itemID string, apply func(rec *domain.InventoryRecord) error) error {
	return r.s.write(ctx, op, func(d *dataset) error {
		rec, ok := d.inventory[itemID]
		if !ok {
			return fmt.Errorf("%w: inventory for item %s", apperrors.ErrNotFound, itemID)
		}
		if err := apply(&rec); err != nil {
			return err
		}
		rec.LastUpdatedAt = time.Now().UTC()
		d.inventory[itemID] = rec
		return nil
	})
}

func (r inventoryRepo) Reserve(ctx context.Context, itemID string, qty int) error {
	return r.update(ctx, "Reserve", itemID, func(rec *domain.InventoryRecord) error {
		if rec.Available() < qty {
			return fmt.Errorf("%w: item %s has %d available, %d requested", apperrors.ErrInsufficientStock, itemID, rec.Available(), qty)
		}
		rec.ReservedQuantity += qty
		return nil
	})
}

func (r inventoryRepo) Release(ctx context.Context, itemID string, qty int) error {
	return r.update(ctx, "Release", itemID, func(rec *domain.InventoryRecord) error {
		if rec.ReservedQuantity < qty {
			return fmt.Errorf("%w: release of %d exceeds %d reserved on item %s", apperrors.ErrInventoryInvariant, qty, rec.ReservedQuantity, itemID)
		}
		rec.ReservedQuantity -= qty
		return nil
	})
}

func (r inventoryRepo) Commit(ctx context.Context, itemID string, qty int) error {
	return r.update(ctx, "Commit", itemID, func(rec *domain.InventoryRecord) error {
		if rec.ReservedQuantity < qty {
			return fmt.Errorf("%w: commit of %d exceeds %d reserved on item %s", apperrors.ErrInventoryInvariant, qty, rec.ReservedQuantity, itemID)
		}
		rec.ReservedQuantity -= qty
		rec.Quantity -= qty
		return nil
	})
}

func (r inventoryRepo) Restock(ctx context.Context, itemID string, qty int) error {
	return r.update(ctx, "Restock", itemID, func(rec *domain.InventoryRecord) error {
		rec.Quantity += qty
		return nil
	})
}

func (r inventoryRepo) AdjustStock(ctx context.Context, itemID string, delta int) (*domain.InventoryRecord, error) {
	var out domain.InventoryRecord
	err := r.update(ctx, "AdjustStock", itemID, func(rec *domain.InventoryRecord) error {
		if rec.Quantity+delta < rec.ReservedQuantity {
			return fmt.Errorf("%w: adjusting item %s by %d would leave stock below the %d reserved", apperrors.ErrValidation, itemID, delta, rec.ReservedQuantity)
		}
		rec.Quantity += delta
		out = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
