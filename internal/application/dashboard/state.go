// Package dashboard holds the in-memory order view served by the HTTP
// layer. Orders are kept per (platform, external id) key, so importing the
// same order twice replaces the previous version instead of duplicating it.
package dashboard

import (
	"sort"
	"strings"
	"sync"

	"github.com/tectle/backend/internal/domain/orders"
)

// Filter narrows Snapshot to orders matching the set fields. Zero values
// match everything.
type Filter struct {
	Status   orders.OrderStatus
	Platform string
}

// State is a concurrency-safe order view keyed by order identity.
type State struct {
	mu    sync.RWMutex
	byKey map[orders.OrderKey]*orders.Order
}

// NewState creates an empty order view.
func NewState() *State {
	return &State{
		byKey: make(map[orders.OrderKey]*orders.Order),
	}
}

// Upsert merges the given orders into the view. An order with a key already
// present replaces the stored version.
func (s *State) Upsert(list []*orders.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range list {
		s.byKey[o.Key()] = o
	}
}

// Snapshot returns the orders matching the filter, newest first. The
// returned slice is owned by the caller.
func (s *State) Snapshot(f Filter) []*orders.Order {
	s.mu.RLock()
	list := make([]*orders.Order, 0, len(s.byKey))
	for _, o := range s.byKey {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Platform != "" && !strings.EqualFold(f.Platform, o.Platform) {
			continue
		}
		list = append(list, o)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			if list[i].Platform == list[j].Platform {
				return list[i].ExternalID < list[j].ExternalID
			}
			return list[i].Platform < list[j].Platform
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// Len returns the number of stored orders.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// Report summarizes every stored order.
func (s *State) Report() *orders.Report {
	return orders.BuildReport(s.Snapshot(Filter{}))
}
