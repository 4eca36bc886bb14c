package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/reseller-console/internal/email"
	"github.com/example/reseller-console/internal/events"
)

// Handler turns failure events into operator alert emails
type Handler struct {
	emailService *email.Service
	recipients   []string
}

// NewHandler creates a new notification handler
func NewHandler(emailSvc *email.Service, recipients []string) *Handler {
	return &Handler{
		emailService: emailSvc,
		recipients:   recipients,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event events.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	// Only failure classes page operators; the rest are audit trail.
	switch event.EventType {
	case events.EventDeliveryFailed:
		return h.handleDeliveryFailed(event)
	case events.EventStockInconsistency:
		return h.handleStockInconsistency(event)
	case events.EventOrderFailed:
		return h.handleOrderFailed(event)
	}

	return nil
}

func (h *Handler) handleDeliveryFailed(event events.Event) error {
	var e events.DeliveryFailed
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal DeliveryFailed event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing DeliveryFailed event for order %d", e.OrderID)

	subject := fmt.Sprintf("[Console] Delivery failed for order %d", e.OrderID)
	body := email.BuildAlertBody(
		"Delivery failed after stock commit",
		"The stock is claimed and the order is confirmed, but the delivery message was rejected. Resend manually.",
		[]email.AlertRow{
			{Label: "Order", Value: fmt.Sprintf("%d", e.OrderID)},
			{Label: "Buyer ref", Value: fmt.Sprintf("%d", e.BuyerRef)},
			{Label: "Stock ids", Value: email.FormatIDs(e.StockIDs)},
			{Label: "Error", Value: e.Error},
		},
	)

	return h.sendAlert(subject, body)
}

func (h *Handler) handleStockInconsistency(event events.Event) error {
	var e events.StockInconsistency
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal StockInconsistency event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing StockInconsistency event for order %d", e.OrderID)

	subject := fmt.Sprintf("[Console] Stock claim inconsistency on order %d", e.OrderID)
	body := email.BuildAlertBody(
		"Stock claim inconsistency",
		"A bulk claim affected fewer rows than expected. Some of the listed items may have been sold concurrently and need manual reconciliation.",
		[]email.AlertRow{
			{Label: "Order", Value: fmt.Sprintf("%d", e.OrderID)},
			{Label: "Stock ids", Value: email.FormatIDs(e.StockIDs)},
			{Label: "Expected", Value: fmt.Sprintf("%d", e.Expected)},
			{Label: "Affected", Value: fmt.Sprintf("%d", e.Affected)},
		},
	)

	return h.sendAlert(subject, body)
}

func (h *Handler) handleOrderFailed(event events.Event) error {
	var e events.OrderFailed
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderFailed event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderFailed event for order %d", e.OrderID)

	subject := fmt.Sprintf("[Console] Order %d failed: %s", e.OrderID, e.Reason)
	body := email.BuildAlertBody(
		"Order failed",
		"Fulfillment could not complete for this order.",
		[]email.AlertRow{
			{Label: "Order", Value: fmt.Sprintf("%d", e.OrderID)},
			{Label: "Product", Value: fmt.Sprintf("%d", e.ProductID)},
			{Label: "Reason", Value: e.Reason},
		},
	)

	return h.sendAlert(subject, body)
}

func (h *Handler) sendAlert(subject, body string) error {
	if err := h.emailService.SendAlert(h.recipients, subject, body); err != nil {
		log.Printf("[Notifier] Failed to send alert: %v", err)
		return err
	}
	log.Printf("[Notifier] Alert sent: %s", subject)
	return nil
}
