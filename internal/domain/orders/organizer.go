package orders

import (
	"sort"
	"strings"
)

// The grouping helpers below are pure: they never mutate their input and
// preserve the relative order of orders inside every group, so multiple
// groupings can run concurrently over the same snapshot.

// FulfillmentNone is the grouping key for orders whose platform reported
// no fulfilment state.
const FulfillmentNone = "unfulfilled"

// GroupByStatus groups orders by their normalized status. Every order
// lands in exactly one group.
func GroupByStatus(list []*Order) map[OrderStatus][]*Order {
	grouped := make(map[OrderStatus][]*Order)
	for _, o := range list {
		grouped[o.Status] = append(grouped[o.Status], o)
	}
	return grouped
}

// GroupByPlatform groups orders by their source platform.
func GroupByPlatform(list []*Order) map[string][]*Order {
	grouped := make(map[string][]*Order)
	for _, o := range list {
		grouped[o.Platform] = append(grouped[o.Platform], o)
	}
	return grouped
}

// GroupByFulfillment groups orders by their fulfilment state. Orders
// without one group under FulfillmentNone.
func GroupByFulfillment(list []*Order) map[string][]*Order {
	grouped := make(map[string][]*Order)
	for _, o := range list {
		key := strings.ToLower(strings.TrimSpace(o.Fulfillment))
		if key == "" {
			key = FulfillmentNone
		}
		grouped[key] = append(grouped[key], o)
	}
	return grouped
}

// SortByCreatedAt returns a new slice sorted by creation time, oldest
// first, or newest first when descending is true. Orders with equal
// timestamps keep their relative order.
func SortByCreatedAt(list []*Order, descending bool) []*Order {
	sorted := make([]*Order, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
