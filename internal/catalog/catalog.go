package catalog

import (
	"github.com/hung-0621/Book-Trade-APP/internal/money"
)

// Item is one listed book as published by the catalog. Items are immutable;
// checkout holds read-only references and never copies fields back.
type Item struct {
	ID       string
	Name     string
	Author   string
	Price    money.Money
	PhotoURI string
}

// Snapshot is the catalog state fetched once before checkout. Sessions
// resolve against a snapshot and never re-query mid-flow.
type Snapshot struct {
	items map[string]Item
	order []string
}

// NewSnapshot builds a snapshot from a feed listing. The first occurrence of
// an id wins; later duplicates are ignored.
func NewSnapshot(items []Item) *Snapshot {
	s := &Snapshot{items: make(map[string]Item, len(items))}
	for _, item := range items {
		if _, exists := s.items[item.ID]; exists {
			continue
		}
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	return s
}

// Lookup returns the item for the given id, if present.
func (s *Snapshot) Lookup(id string) (Item, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Items returns the listed items in feed order.
func (s *Snapshot) Items() []Item {
	result := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.items[id])
	}
	return result
}

// Len returns the number of listed items.
func (s *Snapshot) Len() int {
	return len(s.order)
}
