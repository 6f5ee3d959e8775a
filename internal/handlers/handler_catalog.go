package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// catalogHandler handles HTTP requests related to catalog items and stock.
type catalogHandler struct {
	catalog portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalog: cs}
}

// registerCatalogRoutes registers routes for catalog items.
func registerCatalogRoutes(rg *gin.RouterGroup, cs portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(cs)

	items := rg.Group("/catalog/items")
	{
		items.GET("", h.listItems)
		items.POST("", h.createItem)
		items.GET("/:itemID", h.getItem)
		items.GET("/:itemID/inventory", h.getInventory)
		items.POST("/:itemID/inventory/adjust", h.adjustStock)
	}
}

// listItems godoc
// @Summary List catalog items
// @Tags catalog
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCatalogItemsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/items [get]
func (h *catalogHandler) listItems(c *gin.Context) {
	var params dto.ListCatalogItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	resp, err := h.catalog.ListItems(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list catalog items")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getItem godoc
// @Summary Get a catalog item
// @Tags catalog
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.CatalogItemResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/items/{itemID} [get]
func (h *catalogHandler) getItem(c *gin.Context) {
	item, err := h.catalog.GetItem(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve catalog item")
		return
	}
	c.JSON(http.StatusOK, dto.ToCatalogItemResponse(item))
}

// createItem godoc
// @Summary Create a catalog item (admin)
// @Description Simple items get an inventory record; combos list their components
// @Tags catalog
// @Accept json
// @Produce json
// @Param item body dto.CreateCatalogItemRequest true "Item details"
// @Success 201 {object} dto.CatalogItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "SKU already exists"
// @Security BearerAuth
// @Router /catalog/items [post]
func (h *catalogHandler) createItem(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	item, err := h.catalog.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create catalog item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCatalogItemResponse(item))
}

// getInventory godoc
// @Summary Get stock for a simple item
// @Tags catalog
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.InventoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/items/{itemID}/inventory [get]
func (h *catalogHandler) getInventory(c *gin.Context) {
	rec, err := h.catalog.GetInventory(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve inventory")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponse(rec))
}

// adjustStock godoc
// @Summary Adjust physical stock (admin)
// @Description Negative deltas may not drop quantity below the reserved amount
// @Tags catalog
// @Accept json
// @Produce json
// @Param itemID path string true "Item ID"
// @Param body body dto.AdjustStockRequest true "Signed delta"
// @Success 200 {object} dto.InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/items/{itemID}/inventory/adjust [post]
func (h *catalogHandler) adjustStock(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	rec, err := h.catalog.AdjustStock(c.Request.Context(), actor, c.Param("itemID"), req.Delta)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponse(rec))
}
