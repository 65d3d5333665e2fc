package metrics

import "sync/atomic"

// Process-level counters shared by the handlers.
// Intentionally minimal.

var (
	ordersCreated int64
	ordersDeleted int64
	queriesServed int64
)

// IncOrdersCreated increments the created counter by 1.
func IncOrdersCreated() {
	atomic.AddInt64(&ordersCreated, 1)
}

// IncOrdersDeleted increments the deleted counter by 1.
func IncOrdersDeleted() {
	atomic.AddInt64(&ordersDeleted, 1)
}

// IncQueriesServed increments the query counter by 1.
func IncQueriesServed() {
	atomic.AddInt64(&queriesServed, 1)
}

// Snapshot returns the current counter values keyed by metric name.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"orders_created": atomic.LoadInt64(&ordersCreated),
		"orders_deleted": atomic.LoadInt64(&ordersDeleted),
		"queries_served": atomic.LoadInt64(&queriesServed),
	}
}
