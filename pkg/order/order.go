package order

import (
	"context"
	"errors"
)

// Cooking time bounds in minutes, inclusive. Every stored order carries a
// cooking time drawn uniformly from this range.
const (
	MinCookingTime = 5
	MaxCookingTime = 15
)

// Request is the client-supplied part of an order.
type Request struct {
	ItemID  string `json:"item_id"`
	TableID string `json:"table_id"`
}

// Order represents one menu item ordered at one table.
type Order struct {
	OrderID     string `json:"order_id"`
	ItemID      string `json:"item_id"`
	TableID     string `json:"table_id"`
	CookingTime int    `json:"cooking_time"`
}

// Filter narrows List results. A nil field matches any order; a non-nil
// field matches orders whose value equals it, including the empty string.
type Filter struct {
	TableID *string
	ItemID  *string
}

// Repository defines behavior for storing and querying orders.
type Repository interface {
	Put(ctx context.Context, id string, req Request) (Order, error)
	Delete(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
}

// ErrDuplicate indicates an order with the same id already exists.
var ErrDuplicate = errors.New("order already exists")

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")
