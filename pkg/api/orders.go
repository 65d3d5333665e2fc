package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SudoBobo/RestaurantAPIExercise/pkg/metrics"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/order"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/otel"
)

// orderRequest is the create request body. Pointer fields distinguish
// keys that are absent from keys set to an empty string.
type orderRequest struct {
	ItemID  *string `json:"item_id"`
	TableID *string `json:"table_id"`
}

// createOrder records a new order for a table.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param order body orderRequest true "Item and table"
// @Success 200 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /order/{order_id} [put]
func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "createOrder", attribute.String("order_id", id))
	defer span.End()

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidBody, "invalid request body")
		return
	}
	if req.ItemID == nil || req.TableID == nil {
		respondError(w, http.StatusBadRequest, CodeInvalidBody, "item_id and table_id are required")
		return
	}

	o, err := a.orders.Put(ctx, id, order.Request{ItemID: *req.ItemID, TableID: *req.TableID})
	if err != nil {
		if errors.Is(err, order.ErrDuplicate) {
			respondError(w, http.StatusConflict, CodeDuplicateOrder,
				fmt.Sprintf("order with id %q already exists", id))
			return
		}
		a.log.Error(ctx, "put order", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}

	metrics.IncOrdersCreated()
	respond(w, http.StatusOK, o)
}

// deleteOrder removes an order and returns the removed record.
// @Summary Delete order
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Router /order/{order_id} [delete]
func (a *API) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["order_id"]
	ctx, span := otel.AddSpan(r.Context(), "deleteOrder", attribute.String("order_id", id))
	defer span.End()

	o, err := a.orders.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, http.StatusNotFound, CodeOrderNotFound,
				fmt.Sprintf("order with id %q not found", id))
			return
		}
		a.log.Error(ctx, "delete order", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}

	metrics.IncOrdersDeleted()
	respond(w, http.StatusOK, o)
}

// listOrders returns orders, optionally filtered by table and item.
// A filter present with an empty value matches empty identifiers.
// @Summary List orders
// @Produce json
// @Param table_id query string false "Table ID"
// @Param item_id query string false "Item ID"
// @Success 200 {array} order.Order
// @Failure 500 {object} ErrorResponse
// @Router /orders [get]
func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrders")
	defer span.End()

	var f order.Filter
	q := r.URL.Query()
	if q.Has("table_id") {
		v := q.Get("table_id")
		f.TableID = &v
	}
	if q.Has("item_id") {
		v := q.Get("item_id")
		f.ItemID = &v
	}

	orders, err := a.orders.List(ctx, f)
	if err != nil {
		a.log.Error(ctx, "list orders", "error", err)
		respondError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		return
	}

	metrics.IncQueriesServed()
	respond(w, http.StatusOK, orders)
}
