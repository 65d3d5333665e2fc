// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/SudoBobo/RestaurantAPIExercise/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
//
// byID is the primary mapping; byTable is a secondary index from table id to
// the set of order ids at that table, kept so table-scoped queries avoid a
// full scan. A single lock guards both maps: a reader must never observe an
// order present in one and missing from the other.
type Repository struct {
	mu      sync.RWMutex
	rng     *rand.Rand // guarded by mu
	byID    map[string]order.Order
	byTable map[string]map[string]struct{}
}

// New creates a new in-memory repository.
func New() *Repository {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a repository drawing cooking times from src.
// Tests pass a fixed seed to make the draws deterministic.
func NewWithSource(src rand.Source) *Repository {
	return &Repository{
		rng:     rand.New(src),
		byID:    make(map[string]order.Order),
		byTable: make(map[string]map[string]struct{}),
	}
}

// Put stores a new order under the caller-chosen id, assigning it a uniform
// random cooking time. It fails with order.ErrDuplicate if the id is taken.
func (r *Repository) Put(ctx context.Context, id string, req order.Request) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; ok {
		return order.Order{}, order.ErrDuplicate
	}

	o := order.Order{
		OrderID:     id,
		ItemID:      req.ItemID,
		TableID:     req.TableID,
		CookingTime: order.MinCookingTime + r.rng.Intn(order.MaxCookingTime-order.MinCookingTime+1),
	}
	r.byID[id] = o

	ids, ok := r.byTable[req.TableID]
	if !ok {
		ids = make(map[string]struct{})
		r.byTable[req.TableID] = ids
	}
	ids[id] = struct{}{}

	return o, nil
}

// Delete removes an order by id and returns the removed record. It fails
// with order.ErrNotFound if the id is unknown.
func (r *Repository) Delete(ctx context.Context, id string) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	delete(r.byID, id)

	if ids, ok := r.byTable[o.TableID]; ok {
		delete(ids, id)
		if len(ids) == 0 {
			delete(r.byTable, o.TableID)
		}
	}

	return o, nil
}

// List returns copies of the orders matching f. A table filter resolves
// through the secondary index; an item filter alone scans all orders.
// The result is never nil and is unaffected by later mutations.
func (r *Repository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f.TableID != nil {
		ids := r.byTable[*f.TableID]
		out := make([]order.Order, 0, len(ids))
		for id := range ids {
			o := r.byID[id]
			if f.ItemID != nil && o.ItemID != *f.ItemID {
				continue
			}
			out = append(out, o)
		}
		return out, nil
	}

	out := make([]order.Order, 0, len(r.byID))
	for _, o := range r.byID {
		if f.ItemID != nil && o.ItemID != *f.ItemID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
