package manifest

import (
	"sort"

	"github.com/pelletier/go-toml"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/pakrat-io/pakrat/pkg/manifest/status"
	"github.com/pakrat-io/pakrat/pkg/nested"
	"github.com/spf13/afero"
)

// readSources parses each TOML source and deep-merges the trees in source
// order. It also collects the package-table keys in manifest order, which
// plain maps cannot preserve: keys are ordered by their position in the
// first source that defines them.
func readSources(fs afero.Fs, sources []Source) (map[string]interface{}, []string, error) {
	tree := map[string]interface{}{}
	var order []string
	seen := map[string]struct{}{}
	for _, src := range sources {
		b, err := src.Bytes(fs)
		if err != nil {
			return nil, nil, errors.Newf("reading %s: %v", src.Name(), err).Wrap(status.ErrSource)
		}
		t, err := toml.LoadBytes(b)
		if err != nil {
			return nil, nil, errors.Newf("parsing %s: %v", src.Name(), err).Wrap(status.ErrSource)
		}
		for _, key := range packageKeys(t) {
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				order = append(order, key)
			}
		}
		if _, err := nested.Merge(tree, t.ToMap()); err != nil {
			return nil, nil, errors.Newf("merging %s: %v", src.Name(), err).Wrap(err)
		}
	}
	return tree, order, nil
}

func packageKeys(t *toml.Tree) []string {
	pt, ok := t.Get("package").(*toml.Tree)
	if !ok {
		return nil
	}
	keys := pt.Keys()
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := pt.GetPosition(keys[i]), pt.GetPosition(keys[j])
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})
	return keys
}
