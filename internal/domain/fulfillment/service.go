package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/reseller-console/internal/config"
	"github.com/example/reseller-console/internal/domain/order"
	"github.com/example/reseller-console/internal/events"
	"github.com/example/reseller-console/internal/infrastructure/kafka"
	"github.com/example/reseller-console/internal/infrastructure/store"
	"github.com/example/reseller-console/internal/metrics"
	"github.com/example/reseller-console/internal/telegram"
)

// RoleAdmin is the elevated capability fulfillment requires.
const RoleAdmin = "admin"

// Actor identifies the operator invoking a fulfillment.
type Actor struct {
	ID   string
	Role string
}

// Receipt reports a successful fulfillment.
type Receipt struct {
	OrderID          int64   `json:"order_id"`
	FulfilledOrderID int64   `json:"fulfilled_order_id"`
	Delivered        int     `json:"delivered"`
	StockIDs         []int64 `json:"stock_ids"`
}

// Service converts a pending order into an exclusive claim on unsold
// stock and delivers the claimed contents. Stateless; safe for
// concurrent use.
type Service struct {
	orders    store.OrderStore
	stocks    store.StockStore
	products  store.ProductStore
	sender    telegram.Sender
	publisher kafka.Publisher
	cfg       config.Fulfillment

	now func() time.Time
}

func NewService(orders store.OrderStore, stocks store.StockStore, products store.ProductStore, sender telegram.Sender, publisher kafka.Publisher, cfg config.Fulfillment) *Service {
	return &Service{
		orders:    orders,
		stocks:    stocks,
		products:  products,
		sender:    sender,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Fulfill drives the pending-order state machine:
//
//	pending -> failed     (insufficient stock)
//	pending -> cancelled  (expired at fulfillment time)
//	pending -> confirmed  (success)
//
// Terminal orders are rejected before any mutation, which makes the
// operation idempotent against duplicate operator clicks.
func (s *Service) Fulfill(ctx context.Context, actor Actor, orderID int64) (*Receipt, error) {
	if actor.Role != RoleAdmin {
		return nil, ErrNotAuthorized
	}

	o, err := s.orders.GetPendingOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if o.Status != order.StatusPending {
		return nil, ErrAlreadyProcessed
	}

	now := s.now()
	if o.Expired(now, s.cfg.PendingExpiry) {
		if err := s.orders.UpdateStatus(ctx, o.ID, order.StatusCancelled); err != nil {
			return nil, err
		}
		metrics.FulfillmentsTotal.WithLabelValues(order.StatusCancelled).Inc()
		kafka.PublishEvent(ctx, s.publisher, events.EventOrderCancelled, o.ID, events.OrderCancelled{
			OrderID: o.ID,
			Reason:  fmt.Sprintf("pending longer than %s", s.cfg.PendingExpiry),
		})
		return nil, ErrOrderExpired
	}

	deliverQty := o.DeliverQuantity()
	items, err := s.stocks.SelectUnsold(ctx, o.ProductID, deliverQty)
	if err != nil {
		return nil, err
	}

	if len(items) < deliverQty {
		if err := s.orders.UpdateStatus(ctx, o.ID, order.StatusFailed); err != nil {
			return nil, err
		}
		metrics.FulfillmentsTotal.WithLabelValues(order.StatusFailed).Inc()
		kafka.PublishEvent(ctx, s.publisher, events.EventOrderFailed, o.ID, events.OrderFailed{
			OrderID:   o.ID,
			ProductID: o.ProductID,
			Reason:    fmt.Sprintf("need %d unsold items, have %d", deliverQty, len(items)),
		})
		return nil, ErrInsufficientStock
	}

	stockIDs := make([]int64, len(items))
	contents := make([]string, len(items))
	for i, item := range items {
		stockIDs[i] = item.ID
		contents[i] = item.Content
	}

	// Allocation commit point. The update is conditional on sold=false,
	// so a concurrent claim shows up as a short row count here.
	affected, err := s.stocks.MarkSold(ctx, stockIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to claim stock for order %d: %w", o.ID, err)
	}
	if affected != int64(len(stockIDs)) {
		incErr := &InconsistencyError{
			OrderID:  o.ID,
			StockIDs: stockIDs,
			Expected: len(stockIDs),
			Affected: affected,
		}
		log.Printf("[Fulfill] %v", incErr)
		metrics.FulfillmentsTotal.WithLabelValues("inconsistent").Inc()
		kafka.PublishEvent(ctx, s.publisher, events.EventStockInconsistency, o.ID, events.StockInconsistency{
			OrderID:  o.ID,
			StockIDs: stockIDs,
			Expected: len(stockIDs),
			Affected: int(affected),
		})
		return nil, incErr
	}

	totalPrice := o.Amount
	if totalPrice == 0 {
		totalPrice = o.UnitPrice * int64(o.Quantity)
	}

	finalized := &order.FinalizedOrder{
		BuyerRef:        o.BuyerRef,
		ProductID:       o.ProductID,
		ContentSnapshot: contents,
		TotalPrice:      totalPrice,
		Quantity:        len(contents),
		GroupCode:       groupCode(o.BuyerRef, now),
		CreatedAt:       now,
	}

	fulfilledID, err := s.orders.InsertFinalizedOrder(ctx, finalized)
	if err != nil {
		// Stock is already claimed; surface everything needed for manual
		// recovery instead of retrying.
		return nil, fmt.Errorf("order %d: stock %v claimed but finalize failed: %w", o.ID, stockIDs, err)
	}

	if err := s.orders.Confirm(ctx, o.ID, fulfilledID, now); err != nil {
		return nil, fmt.Errorf("order %d: finalized as %d but status update failed: %w", o.ID, fulfilledID, err)
	}

	metrics.FulfillmentsTotal.WithLabelValues(order.StatusConfirmed).Inc()
	kafka.PublishEvent(ctx, s.publisher, events.EventOrderFulfilled, o.ID, events.OrderFulfilled{
		OrderID:          o.ID,
		FulfilledOrderID: fulfilledID,
		ProductID:        o.ProductID,
		BuyerRef:         o.BuyerRef,
		Quantity:         len(contents),
		StockIDs:         stockIDs,
	})

	if err := s.deliver(ctx, o, contents); err != nil {
		delErr := &DeliveryError{OrderID: o.ID, StockIDs: stockIDs, Err: err}
		log.Printf("[Fulfill] %v", delErr)
		kafka.PublishEvent(ctx, s.publisher, events.EventDeliveryFailed, o.ID, events.DeliveryFailed{
			OrderID:  o.ID,
			BuyerRef: o.BuyerRef,
			StockIDs: stockIDs,
			Error:    err.Error(),
		})
		return nil, delErr
	}

	log.Printf("[Fulfill] Order %d confirmed, delivered %d items to %d", o.ID, len(contents), o.BuyerRef)

	return &Receipt{
		OrderID:          o.ID,
		FulfilledOrderID: fulfilledID,
		Delivered:        len(contents),
		StockIDs:         stockIDs,
	}, nil
}

func (s *Service) deliver(ctx context.Context, o *order.PendingOrder, contents []string) error {
	productName := fmt.Sprintf("#%d", o.ProductID)
	description := ""
	formatData := ""
	if p, err := s.products.GetProduct(ctx, o.ProductID); err == nil {
		productName = p.Name
		description = p.Description
		formatData = p.FormatData
	}

	totalText := fmt.Sprintf("%dđ", o.Amount)
	payload := renderDelivery(productName, description, totalText, contents, formatData,
		s.cfg.MaxMessageLength, s.cfg.AttachmentThreshold)

	if payload.asDocument {
		return s.sender.SendDocument(ctx, o.BuyerRef, payload.filename, payload.file, payload.caption)
	}
	return s.sender.SendMessage(ctx, o.BuyerRef, payload.message)
}

// groupCode derives the audit correlation token from the recipient and
// the fulfillment timestamp.
func groupCode(buyerRef int64, at time.Time) string {
	stamp := strings.ReplaceAll(at.UTC().Format("20060102150405.000"), ".", "")
	return fmt.Sprintf("MANUAL%d%s", buyerRef, stamp)
}
