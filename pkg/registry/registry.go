package registry

import (
	"fmt"
	"sync"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// Registry maps names to items and remembers the order they were added.
// It is safe for concurrent use.
type Registry[T any] interface {
	Register(name string, item T) error
	Get(name string) (T, error)
	Remove(name string) error
	// List returns names in registration order.
	List() []string
	// Items returns items in registration order.
	Items() []T
	Has(name string) bool
	Count() int
}

type entry[T any] struct {
	name string
	item T
}

type ordered[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
}

func New[T any]() Registry[T] {
	return &ordered[T]{}
}

// find returns the entry index, or -1. Callers hold the lock. Registries
// hold a handful of entries, so a scan beats keeping an index map in sync.
func (r *ordered[T]) find(name string) int {
	for i, e := range r.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

func notRegistered(name string) error {
	return errors.Newf(errors.ErrNotFound, "%q is not registered", name).WithDetail("name", name)
}

func (r *ordered[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry names must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(name) >= 0 {
		return errors.Newf(errors.ErrInvalidInput, "%q is already registered", name).WithDetail("name", name)
	}
	r.entries = append(r.entries, entry[T]{name: name, item: item})
	return nil
}

func (r *ordered[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.find(name); i >= 0 {
		return r.entries[i].item, nil
	}
	var zero T
	return zero, notRegistered(name)
}

func (r *ordered[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(name)
	if i < 0 {
		return notRegistered(name)
	}
	r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
	return nil
}

func (r *ordered[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

func (r *ordered[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]T, len(r.entries))
	for i, e := range r.entries {
		items[i] = e.item
	}
	return items
}

func (r *ordered[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(name) >= 0
}

func (r *ordered[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// MustRegister panics if name cannot be registered. Use it for built-in
// entries, where a failure is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}
