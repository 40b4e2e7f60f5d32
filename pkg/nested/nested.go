// Package nested manipulates arbitrarily nested map[string]interface{}
// configuration trees: lookup across levels and a deep merge with
// kind-aware combination rules.
package nested

import (
	"fmt"
	"reflect"
	"sort"
)

// Set is a distinct collection type recognized by Merge: merging two sets
// unions them. Plain TOML never produces a Set, but configuration fragments
// built programmatically may carry them.
type Set map[string]struct{}

// NewSet builds a Set from its elements
func NewSet(elems ...string) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Has reports set membership
func (s Set) Has(elem string) bool {
	_, ok := s[elem]
	return ok
}

// Elems returns the set elements in sorted order
func (s Set) Elems() []string {
	r := make([]string, 0, len(s))
	for e := range s {
		r = append(r, e)
	}
	sort.Strings(r)
	return r
}

// ConflictError reports a merge between two values of incompatible kinds
// for the same key.
type ConflictError struct {
	Key string
	Dst interface{}
	Src interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict at key %q: cannot merge %v (%T) over %v (%T)",
		e.Key, e.Src, e.Src, e.Dst, e.Dst)
}

// Get descends nested maps along keys and returns the value found, or
// (nil, false) when any intermediate step is missing or not a map.
func Get(d map[string]interface{}, keys ...string) (interface{}, bool) {
	var cur interface{} = d
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetMap is Get restricted to map results; it returns nil when the path is
// missing or does not lead to a map.
func GetMap(d map[string]interface{}, keys ...string) map[string]interface{} {
	v, ok := Get(d, keys...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]interface{})
	return m
}

// Merge merges src into dst in place and returns dst. Maps recurse,
// sequences concatenate (src after dst), Sets union, and same-kind scalars
// overwrite. Any other kind pairing is a *ConflictError.
func Merge(dst, src map[string]interface{}) (map[string]interface{}, error) {
	for k, sv := range src {
		dv, ok := dst[k]
		if !ok {
			dst[k] = sv
			continue
		}
		mv, err := mergeValue(k, dv, sv)
		if err != nil {
			return dst, err
		}
		dst[k] = mv
	}
	return dst, nil
}

func mergeValue(key string, dv, sv interface{}) (interface{}, error) {
	switch d := dv.(type) {
	case map[string]interface{}:
		if s, ok := sv.(map[string]interface{}); ok {
			return Merge(d, s)
		}
	case []interface{}:
		if s, ok := sv.([]interface{}); ok {
			r := make([]interface{}, 0, len(d)+len(s))
			r = append(r, d...)
			return append(r, s...), nil
		}
	case Set:
		if s, ok := sv.(Set); ok {
			for e := range s {
				d[e] = struct{}{}
			}
			return d, nil
		}
	default:
		if dv != nil && sv != nil && reflect.TypeOf(dv) == reflect.TypeOf(sv) {
			// typed sequences (e.g. []string) still concatenate
			if rd := reflect.ValueOf(dv); rd.Kind() == reflect.Slice {
				return reflect.AppendSlice(rd, reflect.ValueOf(sv)).Interface(), nil
			}
			return sv, nil
		}
	}
	return nil, &ConflictError{Key: key, Dst: dv, Src: sv}
}
