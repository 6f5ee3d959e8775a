package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/pagination"
)

type catalogRepo struct{ s *Store }

func (r catalogRepo) FindItemByID(_ context.Context, itemID string) (*domain.CatalogItem, error) {
	var out domain.CatalogItem
	err := r.s.read("FindItemByID", func(d *dataset) error {
		item, ok := d.items[itemID]
		if !ok {
			return fmt.Errorf("%w: catalog item %s", apperrors.ErrNotFound, itemID)
		}
		out = item
		out.Components = slices.Clone(d.components[itemID])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r catalogRepo) FindItemsByIDs(_ context.Context, itemIDs []string) (map[string]domain.CatalogItem, error) {
	out := make(map[string]domain.CatalogItem, len(itemIDs))
	err := r.s.read("FindItemsByIDs", func(d *dataset) error {
		for _, id := range itemIDs {
			if item, ok := d.items[id]; ok {
				item.Components = slices.Clone(d.components[id])
				out[id] = item
			}
		}
		return nil
	})
	return out, err
}

func (r catalogRepo) FindComponentsByComboIDs(_ context.Context, comboIDs []string) (map[string][]domain.ComboComponent, error) {
	out := make(map[string][]domain.ComboComponent, len(comboIDs))
	err := r.s.read("FindComponentsByComboIDs", func(d *dataset) error {
		for _, id := range comboIDs {
			if comps, ok := d.components[id]; ok {
				out[id] = slices.Clone(comps)
			}
		}
		return nil
	})
	return out, err
}

func (r catalogRepo) ListItems(_ context.Context, limit int, nextToken *string) ([]domain.CatalogItem, *string, error) {
	var out []domain.CatalogItem
	err := r.s.read("ListItems", func(d *dataset) error {
		for id, item := range d.items {
			item.Components = slices.Clone(d.components[id])
			out = append(out, item)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ItemID > out[j].ItemID
	})
	if nextToken != nil && *nextToken != "" {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		idx := sort.Search(len(out), func(i int) bool {
			return out[i].CreatedAt.Before(afterAt) || (out[i].CreatedAt.Equal(afterAt) && out[i].ItemID < afterID)
		})
		out = out[idx:]
	}
	var next *string
	if limit > 0 && len(out) > limit {
		out = out[:limit]
		tok := pagination.EncodeToken(out[limit-1].CreatedAt, out[limit-1].ItemID)
		next = &tok
	}
	return out, next, nil
}

func (r catalogRepo) InsertItem(ctx context.Context, item domain.CatalogItem) error {
	return r.s.write(ctx, "InsertItem", func(d *dataset) error {
		if _, ok := d.items[item.ItemID]; ok {
			return fmt.Errorf("%w: catalog item %s", apperrors.ErrDuplicate, item.ItemID)
		}
		if _, ok := d.skus[item.SKU]; ok {
			return fmt.Errorf("%w: sku %s", apperrors.ErrDuplicate, item.SKU)
		}
		comps := slices.Clone(item.Components)
		item.Components = nil
		d.items[item.ItemID] = item
		d.skus[item.SKU] = item.ItemID
		if len(comps) > 0 {
			d.components[item.ItemID] = comps
		}
		return nil
	})
}
