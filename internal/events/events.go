package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published to the operational topic.
const (
	EventOrderFulfilled     = "OrderFulfilled"
	EventOrderFailed        = "OrderFailed"
	EventOrderCancelled     = "OrderCancelled"
	EventDeliveryFailed     = "DeliveryFailed"
	EventStockInconsistency = "StockInconsistency"
	EventStockChecked       = "StockChecked"
	EventStockDeleted       = "StockDeleted"
)

// Event is the envelope every operational event travels in.
type Event struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// New wraps a payload in an envelope with a fresh id.
func New(eventType string, data any) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.New().String(),
		EventType: eventType,
		Data:      payload,
		Timestamp: time.Now(),
	}, nil
}

// OrderFulfilled is emitted after a successful fulfillment commit.
type OrderFulfilled struct {
	OrderID          int64   `json:"order_id"`
	FulfilledOrderID int64   `json:"fulfilled_order_id"`
	ProductID        int64   `json:"product_id"`
	BuyerRef         int64   `json:"buyer_ref"`
	Quantity         int     `json:"quantity"`
	StockIDs         []int64 `json:"stock_ids"`
}

// OrderFailed is emitted when fulfillment marks an order failed for lack
// of stock.
type OrderFailed struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

// OrderCancelled is emitted when a stale pending order is cancelled at
// fulfillment time.
type OrderCancelled struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
}

// DeliveryFailed is emitted when stock was committed but the delivery
// channel rejected the message. Carries enough for manual resend.
type DeliveryFailed struct {
	OrderID  int64   `json:"order_id"`
	BuyerRef int64   `json:"buyer_ref"`
	StockIDs []int64 `json:"stock_ids"`
	Error    string  `json:"error"`
}

// StockInconsistency is emitted when a bulk claim affected fewer rows
// than expected. Requires manual reconciliation.
type StockInconsistency struct {
	OrderID  int64   `json:"order_id"`
	StockIDs []int64 `json:"stock_ids"`
	Expected int     `json:"expected"`
	Affected int     `json:"affected"`
}

// StockChecked summarizes a completed verification run.
type StockChecked struct {
	Source     string `json:"source"`
	Total      int    `json:"total"`
	TrueCount  int    `json:"true_count"`
	FalseCount int    `json:"false_count"`
	ErrorCount int    `json:"error_count"`
}

// StockDeleted is emitted after a bulk delete of stock items.
type StockDeleted struct {
	StockIDs []int64 `json:"stock_ids"`
	Deleted  int64   `json:"deleted"`
}
