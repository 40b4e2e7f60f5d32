// Package project builds projections of a loaded manifest: a JSON-ready
// output mapping and flat line-oriented list files, driven by directive
// tables in the configuration itself.
package project

import (
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/pakrat-io/pakrat/pkg/nested"
)

// itemsSpec selects extra keys to project verbatim and named templates to
// expand.
type itemsSpec struct {
	Keys  []string          `mapstructure:"keys"`
	Items map[string]string `mapstructure:"items"`
}

// sectionSpec is one directive table: [output] or [list.<variant>].
type sectionSpec struct {
	File    string    `mapstructure:"file"`
	Global  itemsSpec `mapstructure:"global"`
	Package itemsSpec `mapstructure:"package"`
}

func decodeSection(tree map[string]interface{}, path ...string) (sectionSpec, error) {
	var spec sectionSpec
	v, ok := nested.Get(tree, path...)
	if !ok {
		return spec, nil
	}
	if err := mapstructure.Decode(v, &spec); err != nil {
		return spec, errors.Newf("malformed directive table: %v", err).Wrap(err)
	}
	return spec, nil
}

// sortedKeys fixes the emission order of template items, which TOML maps
// do not preserve.
func sortedKeys(items map[string]string) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
