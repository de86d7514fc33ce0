package storage

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/eugenenazirov/knapsack/internal/solver"
)

const maxCatalogItems = 10_000

var (
	// ErrInvalidItems indicates the provided items violate catalog validation rules.
	ErrInvalidItems = errors.New("catalog items must number at most 10000 and have non-negative costs")
)

// Catalog provides access to the items solved against when a request
// does not carry its own.
type Catalog interface {
	Items() ([]solver.Item, error)
	SetItems(items []solver.Item) error
}

// MemoryStorage keeps the catalog in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu    sync.RWMutex
	items []solver.Item
}

// NewMemoryStorage initialises an empty catalog.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: []solver.Item{}}
}

// Items returns a defensive copy of the catalog in insertion order.
func (s *MemoryStorage) Items() ([]solver.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.items), nil
}

// SetItems validates and replaces the catalog.
func (s *MemoryStorage) SetItems(items []solver.Item) error {
	if err := validateItems(items); err != nil {
		return err
	}

	copied := clone(items)
	s.mu.Lock()
	s.items = copied
	s.mu.Unlock()

	return nil
}

func clone(src []solver.Item) []solver.Item {
	if len(src) == 0 {
		return []solver.Item{}
	}
	return slices.Clone(src)
}

func validateItems(items []solver.Item) error {
	if len(items) > maxCatalogItems {
		return fmt.Errorf("%w: got %d items", ErrInvalidItems, len(items))
	}
	for pos, item := range items {
		if item.Cost < 0 {
			return fmt.Errorf("%w: item at position %d has cost %d", ErrInvalidItems, pos, item.Cost)
		}
	}
	return nil
}
