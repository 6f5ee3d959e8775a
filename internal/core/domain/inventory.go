package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind distinguishes simple products from composite combos.
type ItemKind string

const (
	ItemSimple ItemKind = "SIMPLE"
	ItemCombo  ItemKind = "COMBO"
)

// CatalogItem is a sellable product. Combos carry their composition and hold no stock of their own.
type CatalogItem struct {
	ItemID       string           `json:"itemID"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Kind         ItemKind         `json:"kind"`
	UnitPrice    decimal.Decimal  `json:"unitPrice"`
	CurrencyCode string           `json:"currencyCode"`
	IsActive     bool             `json:"isActive"`
	Components   []ComboComponent `json:"components,omitempty"`
	AuditFields
}

// ComboComponent is one constituent of a combo: Quantity units per combo unit.
type ComboComponent struct {
	ComboItemID     string `json:"comboItemID"`
	ComponentItemID string `json:"componentItemID"`
	Quantity        int    `json:"quantity"`
}

// InventoryRecord tracks physical stock and the part of it claimed by pending transactions.
type InventoryRecord struct {
	ItemID           string    `json:"itemID"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reservedQuantity"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// Available is the derived, never-negative quantity still on sale.
func (r InventoryRecord) Available() int {
	return r.Quantity - r.ReservedQuantity
}

// Reservation is a resolved constituent claim persisted with its transaction.
type Reservation struct {
	TransactionID string `json:"transactionID"`
	ItemID        string `json:"itemID"`
	Quantity      int    `json:"quantity"`
}
