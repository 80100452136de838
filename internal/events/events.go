// Package events holds the JSON envelopes exchanged between the order and
// catalog services, and the topics they travel on. Field names are part of
// the wire contract shared by both sides.
package events

import "github.com/google/uuid"

const (
	TopicStockValidationRequest  = "stockvalidationrequestevent"
	TopicStockValidationResponse = "stockvalidationresponseevent"
	TopicOrderCreated            = "ordercreatedevent"
	TopicOrderCancelled          = "ordercancelledevent"
)

type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// StockValidationRequest asks the catalog whether every line item can be
// fulfilled. RequestID is the correlation id echoed back in the response.
type StockValidationRequest struct {
	RequestID uuid.UUID   `json:"requestId"`
	Items     []OrderItem `json:"items"`
}

type StockValidationResponse struct {
	RequestID uuid.UUID `json:"requestId"`
	IsValid   bool      `json:"isValid"`
	Message   string    `json:"message"`
}

type OrderCreated struct {
	OrderID          uuid.UUID   `json:"orderId"`
	CustomerDocument string      `json:"customerDocument"`
	SellerName       string      `json:"sellerName"`
	Items            []OrderItem `json:"items"`
}

type OrderCancelled struct {
	OrderID uuid.UUID `json:"orderId"`
}
