package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is one row of catalog_items.
type CatalogItem struct {
	ItemID       string          `db:"item_id"`
	SKU          string          `db:"sku"`
	Name         string          `db:"name"`
	Kind         string          `db:"kind"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

// ComboComponent is one row of combo_components.
type ComboComponent struct {
	ComboItemID     string `db:"combo_item_id"`
	ComponentItemID string `db:"component_item_id"`
	Quantity        int    `db:"quantity"`
}

// Inventory is one row of inventory.
type Inventory struct {
	ItemID           string    `db:"item_id"`
	Quantity         int       `db:"quantity"`
	ReservedQuantity int       `db:"reserved_quantity"`
	LastUpdatedAt    time.Time `db:"last_updated_at"`
}
