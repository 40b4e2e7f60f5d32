// Package scope implements layered configuration lookup: a Scope probes an
// ordered list of layers for a key, most specific first, and an Expander
// resolves string values read through a Scope by recursively substituting
// {name} placeholders looked up in that same Scope.
package scope

import (
	"github.com/pakrat-io/pakrat/pkg/errors"
)

var (
	// ErrNotFound indicates a key not present in any layer of a scope
	ErrNotFound = errors.New("key not found in scope")

	// ErrTooDeep indicates that placeholder expansion exceeded the depth
	// bound, which means the configuration contains a self-referential or
	// mutually-recursive placeholder chain
	ErrTooDeep = errors.New("placeholder expansion too deep")
)

// A Layer resolves a single key. Maps are layers, and so are Scopes, which
// lets per-package scopes chain onto a shared global scope.
type Layer interface {
	Lookup(key string) (interface{}, bool)
}

// MapLayer adapts a plain configuration map to the Layer interface
type MapLayer map[string]interface{}

// Lookup a key in the map
func (m MapLayer) Lookup(key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

// Scope is a read-only chained lookup over layers in priority order.
// It is never mutated after construction, though the layer maps are owned
// by the caller and a later read observes their current contents.
type Scope struct {
	layers []Layer
}

// New builds a Scope from layers, most specific first
func New(layers ...Layer) *Scope {
	return &Scope{layers: layers}
}

// Lookup probes the layers in order and returns the first value found
func (s *Scope) Lookup(key string) (interface{}, bool) {
	for _, l := range s.layers {
		if v, ok := l.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}

// Contains mirrors Lookup without materializing the value
func (s *Scope) Contains(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}
