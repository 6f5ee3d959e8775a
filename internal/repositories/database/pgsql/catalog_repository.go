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
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

type PgxCatalogRepository struct {
	BaseRepository
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

const catalogColumns = `item_id, sku, name, kind, unit_price, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCatalogItem(row pgx.Row) (models.CatalogItem, error) {
	var m models.CatalogItem
	err := row.Scan(&m.ItemID, &m.SKU, &m.Name, &m.Kind, &m.UnitPrice, &m.CurrencyCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxCatalogRepository) FindItemByID(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	m, err := scanCatalogItem(r.db.QueryRow(ctx, `SELECT `+catalogColumns+` FROM catalog_items WHERE item_id = $1`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: catalog item %s", apperrors.ErrNotFound, itemID)
		}
		return nil, apperrors.NewAppError(500, "failed to find catalog item "+itemID, err)
	}
	item := mapping.ToDomainCatalogItem(m)
	if item.Kind == domain.ItemCombo {
		comps, err := r.FindComponentsByComboIDs(ctx, []string{itemID})
		if err != nil {
			return nil, err
		}
		item.Components = comps[itemID]
	}
	return &item, nil
}

// queryItems runs an item query and attaches combo components with one extra query.
func (r *PgxCatalogRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.CatalogItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query catalog items", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	var comboIDs []string
	for rows.Next() {
		m, err := scanCatalogItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan catalog item", err)
		}
		item := mapping.ToDomainCatalogItem(m)
		if item.Kind == domain.ItemCombo {
			comboIDs = append(comboIDs, item.ItemID)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating catalog items", err)
	}
	rows.Close()

	comps, err := r.FindComponentsByComboIDs(ctx, comboIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Components = comps[items[i].ItemID]
	}
	return items, nil
}

func (r *PgxCatalogRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.CatalogItem, error) {
	out := make(map[string]domain.CatalogItem, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	items, err := r.queryItems(ctx, `SELECT `+catalogColumns+` FROM catalog_items WHERE item_id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ItemID] = item
	}
	return out, nil
}

func (r *PgxCatalogRepository) FindComponentsByComboIDs(ctx context.Context, comboIDs []string) (map[string][]domain.ComboComponent, error) {
	out := make(map[string][]domain.ComboComponent, len(comboIDs))
	if len(comboIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT combo_item_id, component_item_id, quantity
		FROM combo_components
		WHERE combo_item_id = ANY($1)
		ORDER BY combo_item_id, component_item_id`, comboIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query combo components", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.ComboComponent
		if err := rows.Scan(&m.ComboItemID, &m.ComponentItemID, &m.Quantity); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan combo component", err)
		}
		out[m.ComboItemID] = append(out[m.ComboItemID], mapping.ToDomainComboComponent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating combo components", err)
	}
	return out, nil
}

func (r *PgxCatalogRepository) ListItems(ctx context.Context, limit int, nextToken *string) ([]domain.CatalogItem, *string, error) {
	var p placeholders
	query := `SELECT ` + catalogColumns + ` FROM catalog_items`
	if nextToken != nil && *nextToken != "" {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(" WHERE (created_at, item_id) < (%s, %s)", p.add(afterAt), p.add(afterID))
	}
	query += " ORDER BY created_at DESC, item_id DESC"
	if limit > 0 {
		query += " LIMIT " + p.add(limit+1)
	}

	items, err := r.queryItems(ctx, query, p.args...)
	if err != nil {
		return nil, nil, err
	}
	var next *string
	if limit > 0 && len(items) > limit {
		items = items[:limit]
		tok := pagination.EncodeToken(items[limit-1].CreatedAt, items[limit-1].ItemID)
		next = &tok
	}
	return items, next, nil
}

func (r *PgxCatalogRepository) InsertItem(ctx context.Context, item domain.CatalogItem) error {
	m := mapping.ToModelCatalogItem(item)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO catalog_items (`+catalogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ItemID, m.SKU, m.Name, m.Kind, m.UnitPrice, m.CurrencyCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	for _, c := range item.Components {
		batch.Queue(`INSERT INTO combo_components (combo_item_id, component_item_id, quantity) VALUES ($1, $2, $3)`,
			item.ItemID, c.ComponentItemID, c.Quantity)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return classify(err, "failed to insert catalog item "+m.SKU)
	}
	return nil
}
