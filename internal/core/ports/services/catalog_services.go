package services

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// CatalogReaderSvc defines read operations for catalog and stock data
type CatalogReaderSvc interface {
	GetItem(ctx context.Context, itemID string) (*domain.CatalogItem, error)
	ListItems(ctx context.Context, params dto.ListCatalogItemsParams) (*dto.ListCatalogItemsResponse, error)
	GetInventory(ctx context.Context, itemID string) (*domain.InventoryRecord, error)
}

// CatalogWriterSvc defines admin write operations for catalog and stock data
type CatalogWriterSvc interface {
	CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateCatalogItemRequest) (*domain.CatalogItem, error)
	AdjustStock(ctx context.Context, actor domain.Actor, itemID string, delta int) (*domain.InventoryRecord, error)
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
