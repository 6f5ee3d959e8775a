package dto

import (
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComboComponentRequest is one constituent of a combo.
type ComboComponentRequest struct {
	ItemID   string `json:"itemID" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateCatalogItemRequest defines the data needed to add a catalog item.
type CreateCatalogItemRequest struct {
	SKU          string                  `json:"sku" binding:"required,max=64"`
	Name         string                  `json:"name" binding:"required"`
	Kind         string                  `json:"kind" binding:"required,oneof=SIMPLE COMBO"`
	UnitPrice    decimal.Decimal         `json:"unitPrice"`
	CurrencyCode string                  `json:"currencyCode" binding:"omitempty,iso4217"`
	InitialStock int                     `json:"initialStock" binding:"gte=0"`
	Components   []ComboComponentRequest `json:"components" binding:"omitempty,dive"`
}

// AdjustStockRequest moves physical stock up or down.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ListCatalogItemsParams defines the query parameters for listing items.
type ListCatalogItemsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// CatalogItemResponse defines the data returned for a catalog item.
type CatalogItemResponse struct {
	ItemID       string                  `json:"itemID"`
	SKU          string                  `json:"sku"`
	Name         string                  `json:"name"`
	Kind         string                  `json:"kind"`
	UnitPrice    decimal.Decimal         `json:"unitPrice"`
	CurrencyCode string                  `json:"currencyCode"`
	IsActive     bool                    `json:"isActive"`
	Components   []ComboComponentRequest `json:"components,omitempty"`
}

// ListCatalogItemsResponse wraps a page of items.
type ListCatalogItemsResponse struct {
	Items     []CatalogItemResponse `json:"items"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// InventoryResponse reports stock for a simple item.
type InventoryResponse struct {
	ItemID           string `json:"itemID"`
	Quantity         int    `json:"quantity"`
	ReservedQuantity int    `json:"reservedQuantity"`
	Available        int    `json:"available"`
}

// ToCatalogItemResponse converts a domain.CatalogItem to its DTO.
func ToCatalogItemResponse(item *domain.CatalogItem) CatalogItemResponse {
	resp := CatalogItemResponse{
		ItemID:       item.ItemID,
		SKU:          item.SKU,
		Name:         item.Name,
		Kind:         string(item.Kind),
		UnitPrice:    item.UnitPrice,
		CurrencyCode: item.CurrencyCode,
		IsActive:     item.IsActive,
	}
	for _, c := range item.Components {
		resp.Components = append(resp.Components, ComboComponentRequest{ItemID: c.ComponentItemID, Quantity: c.Quantity})
	}
	return resp
}

// ToInventoryResponse converts a domain.InventoryRecord to its DTO.
func ToInventoryResponse(rec *domain.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		ItemID:           rec.ItemID,
		Quantity:         rec.Quantity,
		ReservedQuantity: rec.ReservedQuantity,
		Available:        rec.Available(),
	}
}
