package dto

// OrderLineRequest is one requested catalog item.
type OrderLineRequest struct {
	ItemID   string `json:"itemID" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest defines the data needed to place a product order.
type CreateOrderRequest struct {
	Lines        []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	ContactPhone string             `json:"contactPhone" binding:"omitempty,e164"`
}
