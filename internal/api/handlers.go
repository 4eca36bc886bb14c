package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/reseller-console/internal/api/middleware"
	"github.com/example/reseller-console/internal/domain/fulfillment"
	"github.com/example/reseller-console/internal/domain/stockcheck"
	"github.com/example/reseller-console/internal/events"
	"github.com/example/reseller-console/internal/infrastructure/kafka"
	"github.com/example/reseller-console/internal/infrastructure/store"
	"github.com/example/reseller-console/internal/metrics"
)

type Handlers struct {
	fulfillments *fulfillment.Service
	checks       *stockcheck.Service
	stocks       store.StockStore
	publisher    kafka.Publisher
}

func NewHandlers(fulfillments *fulfillment.Service, checks *stockcheck.Service, stocks store.StockStore, publisher kafka.Publisher) *Handlers {
	return &Handlers{
		fulfillments: fulfillments,
		checks:       checks,
		stocks:       stocks,
		publisher:    publisher,
	}
}

// Fulfillment Handlers

// FulfillOrder allocates stock for a pending order and delivers it.
func (h *Handlers) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID int64 `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderID <= 0 {
		respondJSONError(w, "orderId is required", http.StatusBadRequest)
		return
	}

	actor := actorFromContext(r)
	receipt, err := h.fulfillments.Fulfill(r.Context(), actor, req.OrderID)
	if err != nil {
		h.respondFulfillError(w, req.OrderID, err)
		return
	}

	respondJSON(w, http.StatusOK, receipt)
}

// respondFulfillError maps fulfillment outcomes onto HTTP statuses. The
// allocation stands for post-commit failures, so those report the claimed
// stock ids back to the operator.
func (h *Handlers) respondFulfillError(w http.ResponseWriter, orderID int64, err error) {
	var delErr *fulfillment.DeliveryError
	var incErr *fulfillment.InconsistencyError

	switch {
	case errors.Is(err, fulfillment.ErrOrderNotFound):
		respondJSONError(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, fulfillment.ErrNotAuthorized):
		respondJSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, fulfillment.ErrAlreadyProcessed):
		respondJSONError(w, "Order already processed", http.StatusBadRequest)
	case errors.Is(err, fulfillment.ErrOrderExpired):
		respondJSONError(w, "Order expired and was cancelled", http.StatusConflict)
	case errors.Is(err, fulfillment.ErrInsufficientStock):
		respondJSONError(w, "Insufficient stock", http.StatusConflict)
	case errors.As(err, &delErr):
		respondJSON(w, http.StatusBadGateway, map[string]any{
			"error":     "Stock allocated but delivery failed",
			"order_id":  delErr.OrderID,
			"stock_ids": delErr.StockIDs,
		})
	case errors.As(err, &incErr):
		log.Printf("[API] inconsistency on order %d: %v", orderID, err)
		respondJSONError(w, "Stock claim inconsistency, manual review required", http.StatusInternalServerError)
	default:
		log.Printf("[API] fulfill order %d: %v", orderID, err)
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

// Check Handlers

// RunCheck executes a verification run over a product's stock or an
// explicit id selection.
func (h *Handlers) RunCheck(w http.ResponseWriter, r *http.Request) {
	var req stockcheck.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.checks.Run(r.Context(), req)
	if err != nil {
		var valErr *stockcheck.ValidationError
		if errors.As(err, &valErr) {
			respondJSONError(w, valErr.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[API] check run: %v", err)
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Stock Handlers

// DeleteStock bulk-removes stock items, typically the ids an operator
// selected from check results.
func (h *Handlers) DeleteStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StockIDs []int64 `json:"stockIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.StockIDs) == 0 {
		respondJSONError(w, "stockIds is required", http.StatusBadRequest)
		return
	}

	deleted, err := h.stocks.DeleteByIDs(r.Context(), req.StockIDs)
	if err != nil {
		log.Printf("[API] delete stock: %v", err)
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.StockDeletedTotal.Add(float64(deleted))
	kafka.PublishEvent(r.Context(), h.publisher, events.EventStockDeleted, 0, events.StockDeleted{
		StockIDs: req.StockIDs,
		Deleted:  deleted,
	})

	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// actorFromContext builds the fulfillment actor from the JWT claims the
// auth middleware stored. Cron and lambda paths never reach here.
func actorFromContext(r *http.Request) fulfillment.Actor {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		return fulfillment.Actor{}
	}
	return fulfillment.Actor{ID: claims.OperatorID, Role: claims.Role}
}
