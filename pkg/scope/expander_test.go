package scope

import (
	"testing"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expansions() MapLayer {
	return MapLayer{
		"a": "A",
		"b": "{a}-{a}",
		"c": "{b}={b}",
	}
}

func TestExpanderGetPlain(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
}

func TestExpanderGetTemplate(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "A-A", v)
}

func TestExpanderGetRecursive(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "A-A=A-A", v)
}

func TestExpanderIdempotent(t *testing.T) {
	e := NewExpander(expansions())
	v1, err := e.Get("c")
	require.NoError(t, err)
	v2, err := e.Get("c")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestExpanderGetMissing(t *testing.T) {
	e := NewExpander(expansions())
	_, err := e.Get("test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExpanderGetDefault(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.GetDefault("test", 9832)
	require.NoError(t, err)
	assert.Equal(t, 9832, v)
}

func TestExpanderGetDefaultPresent(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.GetDefault("b", "unused")
	require.NoError(t, err)
	assert.Equal(t, "A-A", v)
}

func TestExpanderContains(t *testing.T) {
	e := NewExpander(expansions())
	assert.True(t, e.Contains("c"))
	assert.False(t, e.Contains("d"))
}

func TestExpanderNonStringPassThrough(t *testing.T) {
	e := NewExpander(MapLayer{
		"n": int64(42),
		"f": false,
		"l": []interface{}{"{n}"},
	})

	v, err := e.Get("n")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = e.Get("f")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	// sequence elements are not expanded
	v, err = e.Get("l")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"{n}"}, v)
}

func TestExpanderNumericPlaceholder(t *testing.T) {
	e := NewExpander(MapLayer{"n": int64(3), "t": "n={n}"})
	v, err := e.Get("t")
	require.NoError(t, err)
	assert.Equal(t, "n=3", v)
}

func TestExpanderBraceEscapes(t *testing.T) {
	e := NewExpander(MapLayer{"a": "A", "t": "{{{a}}}"})
	v, err := e.Get("t")
	require.NoError(t, err)
	assert.Equal(t, "{A}", v)
}

func TestExpanderSelfReference(t *testing.T) {
	e := NewExpander(MapLayer{"a": "{a}"})
	_, err := e.Get("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestExpanderMutualReference(t *testing.T) {
	e := NewExpander(MapLayer{"a": "{b}", "b": "{a}"})
	_, err := e.Get("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))

	// GetDefault must not mask a cycle
	_, err = e.GetDefault("a", "dflt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestExpanderMissingPlaceholder(t *testing.T) {
	e := NewExpander(MapLayer{"t": "{nope}"})
	_, err := e.Get("t")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	// a missing transitive placeholder falls back to the default too
	v, err := e.GetDefault("t", nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestExpanderUnterminated(t *testing.T) {
	e := NewExpander(MapLayer{"t": "oops {a"})
	_, err := e.Get("t")
	require.Error(t, err)
}

func TestExpanderExpand(t *testing.T) {
	e := NewExpander(expansions())
	v, err := e.Expand("[{c}]")
	require.NoError(t, err)
	assert.Equal(t, "[A-A=A-A]", v)
}

func TestExpanderLayeredScope(t *testing.T) {
	global := New(MapLayer{"HOME": "/home/test", "name": "global"})
	pkg := New(MapLayer{"name": "pkg", "dst": "{HOME}/{name}"}, global)
	e := NewExpander(pkg)

	v, err := e.Get("dst")
	require.NoError(t, err)
	assert.Equal(t, "/home/test/pkg", v)
}
