// Package api exposes the order service over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SudoBobo/RestaurantAPIExercise/pkg/logger"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/order"
)

// Error codes carried in the error_code field of failed responses.
const (
	CodeInvalidBody    = "INVALID_BODY"
	CodeDuplicateOrder = "DUPLICATE_ORDER"
	CodeOrderNotFound  = "ORDER_NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// API serves the order endpoints.
type API struct {
	orders order.Repository
	log    *logger.Logger
}

// New constructs an API over the given repository.
func New(orders order.Repository, log *logger.Logger) *API {
	return &API{orders: orders, log: log}
}

// Router builds the route table. Create is only routed when the request
// declares a JSON content type; anything that fails route matching,
// including an unsupported method on a known path, gets a plain 404
// rather than the mux default 405.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.NotFoundHandler()

	r.HandleFunc("/order/{order_id}", a.createOrder).
		Methods(http.MethodPut).
		HeadersRegexp("Content-Type", "application/json")
	r.HandleFunc("/order/{order_id}", a.deleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/orders", a.listOrders).Methods(http.MethodGet)

	r.HandleFunc("/health", a.health).Methods(http.MethodGet)
	r.HandleFunc("/metrics", a.metricsSnapshot).Methods(http.MethodGet)

	return r
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respond(w, status, ErrorResponse{ErrorCode: code, Message: msg})
}
