// Package selection holds the bounded-cardinality selection and the mode
// controller that owns it.
//
// A Selection is an ordered set: membership has no duplicates, and Items
// returns the insertion order because that order decides where each photo
// lands in the collage grid.
package selection

import (
	"slices"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
)

// Selection is a set of catalog items bounded by a capacity.
// It is not safe for concurrent use.
type Selection struct {
	capacity int
	items    []catalog.Item
	index    map[catalog.Item]struct{}
}

// New returns an empty selection holding at most capacity items.
func New(capacity int) *Selection {
	return &Selection{
		capacity: capacity,
		index:    make(map[catalog.Item]struct{}, capacity),
	}
}

// Change describes the outcome of a successful Toggle.
type Change struct {
	Item     catalog.Item `json:"item"`
	Selected bool         `json:"selected"`
}

// Toggle removes item if it is selected, otherwise adds it. Adding to a full
// selection fails with CAPACITY_EXCEEDED and leaves the selection unchanged.
func (s *Selection) Toggle(item catalog.Item) (Change, error) {
	if _, ok := s.index[item]; ok {
		delete(s.index, item)
		s.items = slices.DeleteFunc(s.items, func(it catalog.Item) bool { return it == item })
		return Change{Item: item, Selected: false}, nil
	}
	if len(s.items) >= s.capacity {
		return Change{}, apperr.New(apperr.CodeCapacityExceeded, "only %d items can be selected", s.capacity)
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return Change{Item: item, Selected: true}, nil
}

// Contains reports whether item is selected.
func (s *Selection) Contains(item catalog.Item) bool {
	_, ok := s.index[item]
	return ok
}

// IsComplete reports whether the selection is exactly full.
func (s *Selection) IsComplete() bool {
	return len(s.items) == s.capacity
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = nil
	clear(s.index)
}

// Items returns the selected items in insertion order. The result is never
// nil.
func (s *Selection) Items() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected items.
func (s *Selection) Len() int {
	return len(s.items)
}

// Capacity returns the maximum number of items.
func (s *Selection) Capacity() int {
	return s.capacity
}

// reset replaces the capacity and empties the selection.
func (s *Selection) reset(capacity int) {
	s.capacity = capacity
	s.Clear()
}
