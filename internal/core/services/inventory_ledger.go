package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/accounting"
)

// resolvedOrder is what the ledger needs to price and reserve an order.
type resolvedOrder struct {
	Lines        []domain.TransactionLine
	Claims       []domain.Reservation // one per constituent item, sorted by item id
	CurrencyCode string
}

// resolveOrderLines prices each requested line and expands combos to their constituents.
// Items and combo compositions are each fetched with a single batch read.
func resolveOrderLines(ctx context.Context, catalog portsrepo.CatalogReader, reqs []dto.OrderLineRequest, defaultCurrency string) (*resolvedOrder, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one line", apperrors.ErrValidation)
	}

	ids := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for i, r := range reqs {
		if r.ItemID == "" {
			return nil, fmt.Errorf("%w: line %d has no item id", apperrors.ErrValidation, i+1)
		}
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if !seen[r.ItemID] {
			seen[r.ItemID] = true
			ids = append(ids, r.ItemID)
		}
	}

	items, err := catalog.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var comboIDs []string
	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			return nil, fmt.Errorf("%w: catalog item %s does not exist", apperrors.ErrValidation, id)
		}
		if !item.IsActive {
			return nil, fmt.Errorf("%w: catalog item %s is not for sale", apperrors.ErrValidation, id)
		}
		if item.Kind == domain.ItemCombo {
			comboIDs = append(comboIDs, id)
		}
	}

	components := map[string][]domain.ComboComponent{}
	if len(comboIDs) > 0 {
		components, err = catalog.FindComponentsByComboIDs(ctx, comboIDs)
		if err != nil {
			return nil, err
		}
	}

	out := &resolvedOrder{}
	need := make(map[string]int)
	for _, r := range reqs {
		item := items[r.ItemID]

		currency := item.CurrencyCode
		if currency == "" {
			currency = defaultCurrency
		}
		if out.CurrencyCode == "" {
			out.CurrencyCode = currency
		} else if out.CurrencyCode != currency {
			return nil, fmt.Errorf("%w: order mixes %s and %s items", apperrors.ErrValidation, out.CurrencyCode, currency)
		}

		out.Lines = append(out.Lines, domain.TransactionLine{
			ItemID:    item.ItemID,
			ItemKind:  item.Kind,
			Quantity:  r.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: accounting.LineTotal(item.UnitPrice, r.Quantity),
		})

		if item.Kind != domain.ItemCombo {
			need[item.ItemID] += r.Quantity
			continue
		}
		comps := components[item.ItemID]
		if len(comps) == 0 {
			return nil, fmt.Errorf("%w: combo %s has no components", apperrors.ErrValidation, item.ItemID)
		}
		for _, c := range comps {
			need[c.ComponentItemID] += c.Quantity * r.Quantity
		}
	}

	out.Claims = claimsFromMap(need)
	return out, nil
}

func claimsFromMap(need map[string]int) []domain.Reservation {
	claims := make([]domain.Reservation, 0, len(need))
	for id, qty := range need {
		claims = append(claims, domain.Reservation{ItemID: id, Quantity: qty})
	}
	// a stable order keeps row locks acquired in the same sequence across callers
	sort.Slice(claims, func(i, j int) bool { return claims[i].ItemID < claims[j].ItemID })
	return claims
}

// inventoryLedger applies reservation claims through the store's conditional updates.
type inventoryLedger struct{}

func (inventoryLedger) apply(ctx context.Context, claims []domain.Reservation, op func(ctx context.Context, itemID string, qty int) error) error {
	for _, c := range claims {
		if c.Quantity <= 0 {
			return fmt.Errorf("%w: non-positive claim of %d on item %s", apperrors.ErrInventoryInvariant, c.Quantity, c.ItemID)
		}
		if err := op(ctx, c.ItemID, c.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Reserve claims every constituent or fails on the first short item.
func (l inventoryLedger) Reserve(ctx context.Context, inv portsrepo.InventoryWriter, claims []domain.Reservation) error {
	return l.apply(ctx, claims, inv.Reserve)
}

// Release undoes a prior Reserve with the exact same claims.
func (l inventoryLedger) Release(ctx context.Context, inv portsrepo.InventoryWriter, claims []domain.Reservation) error {
	return l.apply(ctx, claims, inv.Release)
}

// Commit turns reserved units into a permanent depletion.
func (l inventoryLedger) Commit(ctx context.Context, inv portsrepo.InventoryWriter, claims []domain.Reservation) error {
	return l.apply(ctx, claims, inv.Commit)
}

// Restock returns committed units to physical stock.
func (l inventoryLedger) Restock(ctx context.Context, inv portsrepo.InventoryWriter, claims []domain.Reservation) error {
	return l.apply(ctx, claims, inv.Restock)
}
