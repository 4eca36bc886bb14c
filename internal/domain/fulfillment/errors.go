package fulfillment

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotAuthorized     = errors.New("caller is not entitled to fulfill orders")
	ErrAlreadyProcessed  = errors.New("order already processed")
	ErrOrderExpired      = errors.New("order expired")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// DeliveryError means stock was committed but the delivery channel
// rejected the message. It carries what an operator needs for a manual
// resend.
type DeliveryError struct {
	OrderID  int64
	StockIDs []int64
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("order %d: stock %v committed but delivery failed: %v", e.OrderID, e.StockIDs, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// InconsistencyError means the conditional stock claim affected fewer
// rows than expected: a concurrent claim won part of the set. Fatal;
// requires manual reconciliation.
type InconsistencyError struct {
	OrderID  int64
	StockIDs []int64
	Expected int
	Affected int64
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("order %d: stock claim affected %d of %d rows (ids %v), manual reconciliation required",
		e.OrderID, e.Affected, e.Expected, e.StockIDs)
}
