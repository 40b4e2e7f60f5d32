package project

import (
	"sort"
	"strings"

	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/spf13/cast"
)

// BuildList renders the newline-terminated text list for one variant:
// configured global keys and items first, then the keys and items of every
// package whose load field includes the variant, in manifest order.
func BuildList(variant string, m *manifest.Manifest) (string, error) {
	spec, err := decodeSection(m.Tree, "list", variant)
	if err != nil {
		return "", err
	}

	var out []string
	for _, k := range spec.Global.Keys {
		v, err := m.Global.GetDefault(k, nil)
		if err != nil {
			return "", err
		}
		out = append(out, cast.ToString(v))
	}
	for _, k := range sortedKeys(spec.Global.Items) {
		s, err := m.Global.Expand(spec.Global.Items[k])
		if err != nil {
			return "", err
		}
		out = append(out, s)
	}

	for _, key := range m.Order {
		p := m.Packages[key]
		if !p.LoadedFor(variant) {
			continue
		}
		for _, k := range spec.Package.Keys {
			v, err := p.Info.GetDefault(k, nil)
			if err != nil {
				return "", err
			}
			out = append(out, cast.ToString(v))
		}
		for _, k := range sortedKeys(spec.Package.Items) {
			s, err := p.Info.Expand(spec.Package.Items[k])
			if err != nil {
				return "", err
			}
			out = append(out, s)
		}
	}
	return strings.Join(append(out, ""), "\n"), nil
}

// Variants returns the configured list variant names, sorted
func Variants(m *manifest.Manifest) []string {
	lists, ok := m.Tree["list"].(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(lists))
	for k := range lists {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// File returns the configured output path for a list variant, expanded
// against the global scope; an empty path means none is configured.
func File(variant string, m *manifest.Manifest) (string, error) {
	spec, err := decodeSection(m.Tree, "list", variant)
	if err != nil {
		return "", err
	}
	if spec.File == "" {
		return "", nil
	}
	return m.Global.Expand(spec.File)
}
