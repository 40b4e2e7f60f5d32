package scope

import (
	"fmt"
	"strings"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/spf13/cast"
)

// maxDepth bounds transitive placeholder expansion: the source format has
// no cycle protection, so a self-referential chain is converted into
// ErrTooDeep instead of unbounded recursion.
const maxDepth = 50

// Expander is a read facade over a scope: values read through Get are
// template-expanded when they are strings, recursively, against the same
// scope. Expansion is computed fresh on every read, never cached.
type Expander struct {
	scope Layer
}

// NewExpander wraps a scope layer
func NewExpander(l Layer) *Expander {
	return &Expander{scope: l}
}

// Get resolves key and expands the value when it is a string. A missing
// key, here or in any transitive placeholder, yields ErrNotFound.
func (e *Expander) Get(key string) (interface{}, error) {
	return e.get(key, 0)
}

// GetDefault is Get with a default for missing keys. Expansion failures
// other than a missing key (an unterminated or cyclic template) are still
// reported.
func (e *Expander) GetDefault(key string, def interface{}) (interface{}, error) {
	v, err := e.get(key, 0)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// Contains reports whether key resolves in the underlying scope
func (e *Expander) Contains(key string) bool {
	_, ok := e.scope.Lookup(key)
	return ok
}

// Expand substitutes every {name} placeholder in s with the expansion of
// name looked up through this same Expander. {{ and }} are literal braces.
func (e *Expander) Expand(s string) (string, error) {
	return e.expand(s, 0)
}

func (e *Expander) get(key string, depth int) (interface{}, error) {
	v, ok := e.scope.Lookup(key)
	if !ok {
		return nil, errors.Newf("key %q not in scope", key).Wrap(ErrNotFound)
	}
	if s, isStr := v.(string); isStr {
		return e.expand(s, depth)
	}
	return v, nil
}

func (e *Expander) expand(s string, depth int) (string, error) {
	if depth > maxDepth {
		return "", errors.Newf("expanding %q", s).Wrap(ErrTooDeep)
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return "", errors.Newf("unterminated placeholder in %q", s)
			}
			name := s[i+1 : i+1+end]
			v, err := e.get(name, depth+1)
			if err != nil {
				return "", err
			}
			if sub, isStr := v.(string); isStr {
				b.WriteString(sub)
			} else {
				b.WriteString(stringify(v))
			}
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", errors.Newf("unmatched %q in %q", "}", s)
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

func stringify(v interface{}) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprintf("%v", v)
}
