package order

import "time"

// Pending-order lifecycle. An order leaves StatusPending exactly once;
// every other status is terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// PendingOrder is a payment-confirmed but not-yet-delivered purchase
// request, created by the external payment flow.
type PendingOrder struct {
	ID            int64     `json:"id"`
	BuyerRef      int64     `json:"buyer_ref"`
	ProductID     int64     `json:"product_id"`
	Quantity      int       `json:"quantity"`
	BonusQuantity int       `json:"bonus_quantity"`
	UnitPrice     int64     `json:"unit_price"`
	Amount        int64     `json:"amount"`
	Code          string    `json:"code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeliverQuantity is how many stock items a successful fulfillment hands
// over: the paid quantity plus any non-negative bonus.
func (o PendingOrder) DeliverQuantity() int {
	bonus := o.BonusQuantity
	if bonus < 0 {
		bonus = 0
	}
	qty := o.Quantity + bonus
	if qty < 1 {
		qty = 1
	}
	return qty
}

// Expired reports whether the order has sat pending longer than ttl.
func (o PendingOrder) Expired(now time.Time, ttl time.Duration) bool {
	if o.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(o.CreatedAt) >= ttl
}

// FinalizedOrder is the immutable record written once per successful
// fulfillment. ContentSnapshot holds the delivered item contents in
// delivery order.
type FinalizedOrder struct {
	ID              int64     `json:"id"`
	BuyerRef        int64     `json:"buyer_ref"`
	ProductID       int64     `json:"product_id"`
	ContentSnapshot []string  `json:"content_snapshot"`
	TotalPrice      int64     `json:"total_price"`
	Quantity        int       `json:"quantity"`
	GroupCode       string    `json:"group_code"`
	CreatedAt       time.Time `json:"created_at"`
}
