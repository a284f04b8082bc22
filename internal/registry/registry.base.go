// Package registry provides a thread-safe, generic named registry used for process-wide
// singletons.
//
// Two registries exist at runtime: global.RegistryCollections (MongoDB collections by
// name) and sequence.Allocators (identifier allocators by entity).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

// Registry maps names to items of type T. Safe for concurrent use.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("businesses", db.Collection("businesses"))
//	if col, ok := cols.Get("businesses"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T // registered items by name
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
//
// Returns:
//   - *Registry[T]: ready to use, no items
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// ====================================
// REGISTRY METHODS
// ====================================

// Register stores item under name, overwriting any previous item.
//
// Parameters:
//   - name: unique key, must not be empty
//   - item: the value to store
//
// Returns:
//   - isNew: false when an earlier item under name was replaced
//   - err: wraps common.ErrRequiredField when name is empty
//
// Example:
//
//	isNew, err := sequence.Allocators.Register("business", alloc)
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get returns the item registered under name.
//
// Returns:
//   - item: the zero value of T when nothing is registered
//   - exists: whether name is registered
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet returns the item or an error naming it that wraps common.ErrNotFound.
// Despite the name it never panics.
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s is not registered: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// Names returns the registered names in sorted order.
//
// Example:
//
//	for _, entity := range sequence.Allocators.Names() {
//	    a, _ := sequence.Allocators.Get(entity)
//	    ...
//	}
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
