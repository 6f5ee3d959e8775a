package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/mapping"
)

// PgxInventoryRepository applies every stock change as one conditional UPDATE.
// The WHERE clause carries the guard, so concurrent callers cannot both pass it.
type PgxInventoryRepository struct {
	BaseRepository
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func (r *PgxInventoryRepository) FindInventory(ctx context.Context, itemID string) (*domain.InventoryRecord, error) {
	var m models.Inventory
	err := r.db.QueryRow(ctx, `
		SELECT item_id, quantity, reserved_quantity, last_updated_at
		FROM inventory WHERE item_id = $1`, itemID).
		Scan(&m.ItemID, &m.Quantity, &m.ReservedQuantity, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory for item %s", apperrors.ErrNotFound, itemID)
		}
		return nil, apperrors.NewAppError(500, "failed to find inventory for item "+itemID, err)
	}
	rec := mapping.ToDomainInventory(m)
	return &rec, nil
}

func (r *PgxInventoryRepository) FindInventoryByItemIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryRecord, error) {
	out := make(map[string]domain.InventoryRecord, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT item_id, quantity, reserved_quantity, last_updated_at
		FROM inventory WHERE item_id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query inventory", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.Inventory
		if err := rows.Scan(&m.ItemID, &m.Quantity, &m.ReservedQuantity, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory", err)
		}
		out[m.ItemID] = mapping.ToDomainInventory(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inventory", err)
	}
	return out, nil
}

func (r *PgxInventoryRepository) CreateInventory(ctx context.Context, itemID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory (item_id, quantity, reserved_quantity, last_updated_at)
		VALUES ($1, $2, 0, NOW())`, itemID, quantity)
	if err != nil {
		return classify(err, "failed to create inventory for item "+itemID)
	}
	return nil
}

// guardedUpdate runs a conditional UPDATE. When no row matched it tells a missing item apart from a failed guard.
func (r *PgxInventoryRepository) guardedUpdate(ctx context.Context, itemID string, qty int, query string, guardErr func(rec *domain.InventoryRecord) error) error {
	tag, err := r.db.Exec(ctx, query, itemID, qty)
	if err != nil {
		return classify(err, "failed to update inventory for item "+itemID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	rec, err := r.FindInventory(ctx, itemID)
	if err != nil {
		return err
	}
	return guardErr(rec)
}

func (r *PgxInventoryRepository) Reserve(ctx context.Context, itemID string, qty int) error {
	return r.guardedUpdate(ctx, itemID, qty, `
		UPDATE inventory
		SET reserved_quantity = reserved_quantity + $2, last_updated_at = NOW()
		WHERE item_id = $1 AND quantity - reserved_quantity >= $2`,
		func(rec *domain.InventoryRecord) error {
			return fmt.Errorf("%w: item %s has %d available, %d requested", apperrors.ErrInsufficientStock, itemID, rec.Available(), qty)
		})
}

func (r *PgxInventoryRepository) Release(ctx context.Context, itemID string, qty int) error {
	return r.guardedUpdate(ctx, itemID, qty, `
		UPDATE inventory
		SET reserved_quantity = reserved_quantity - $2, last_updated_at = NOW()
		WHERE item_id = $1 AND reserved_quantity >= $2`,
		func(rec *domain.InventoryRecord) error {
			return fmt.Errorf("%w: release of %d exceeds %d reserved on item %s", apperrors.ErrInventoryInvariant, qty, rec.ReservedQuantity, itemID)
		})
}

func (r *PgxInventoryRepository) Commit(ctx context.Context, itemID string, qty int) error {
	return r.guardedUpdate(ctx, itemID, qty, `
		UPDATE inventory
		SET quantity = quantity - $2, reserved_quantity = reserved_quantity - $2, last_updated_at = NOW()
		WHERE item_id = $1 AND reserved_quantity >= $2`,
		func(rec *domain.InventoryRecord) error {
			return fmt.Errorf("%w: commit of %d exceeds %d reserved on item %s", apperrors.ErrInventoryInvariant, qty, rec.ReservedQuantity, itemID)
		})
}

func (r *PgxInventoryRepository) Restock(ctx context.Context, itemID string, qty int) error {
	return r.guardedUpdate(ctx, itemID, qty, `
		UPDATE inventory
		SET quantity = quantity + $2, last_updated_at = NOW()
		WHERE item_id = $1`,
		func(*domain.InventoryRecord) error {
			return apperrors.NewAppError(500, "restock matched no row for item "+itemID, nil)
		})
}

func (r *PgxInventoryRepository) AdjustStock(ctx context.Context, itemID string, delta int) (*domain.InventoryRecord, error) {
	var m models.Inventory
	err := r.db.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = quantity + $2, last_updated_at = NOW()
		WHERE item_id = $1 AND quantity + $2 >= reserved_quantity
		RETURNING item_id, quantity, reserved_quantity, last_updated_at`, itemID, delta).
		Scan(&m.ItemID, &m.Quantity, &m.ReservedQuantity, &m.LastUpdatedAt)
	if err == nil {
		rec := mapping.ToDomainInventory(m)
		return &rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, classify(err, "failed to adjust stock for item "+itemID)
	}
	rec, err := r.FindInventory(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: adjusting item %s by %d would leave stock below the %d reserved",
		apperrors.ErrValidation, itemID, delta, rec.ReservedQuantity)
}
