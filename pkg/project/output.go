package project

import (
	"github.com/pakrat-io/pakrat/pkg/manifest"
)

// wellKnownGlobalKeys are always projected for the global scope.
var wellKnownGlobalKeys = []string{"CONFIG_HOME", "DATA_HOME", "STATE_HOME", "CACHE_HOME"}

// wellKnownPackageKeys are always projected for every package.
var wellKnownPackageKeys = []string{"name", "src", "dst", "vcs", "load"}

// Output builds the output mapping for a manifest: well-known global keys,
// configured extra globals, and a per-package table, all read through the
// expanding scopes. Missing keys project as nil.
func Output(m *manifest.Manifest) (map[string]interface{}, error) {
	spec, err := decodeSection(m.Tree, "output")
	if err != nil {
		return nil, err
	}

	gkeys := make([]string, 0, len(wellKnownGlobalKeys)+len(spec.Global.Keys))
	gkeys = append(gkeys, wellKnownGlobalKeys...)
	gkeys = append(gkeys, spec.Global.Keys...)

	out := map[string]interface{}{}
	for _, k := range gkeys {
		v, err := m.Global.GetDefault(k, nil)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	for _, k := range sortedKeys(spec.Global.Items) {
		s, err := m.Global.Expand(spec.Global.Items[k])
		if err != nil {
			return nil, err
		}
		out[k] = s
	}

	pkeys := make([]string, 0, len(wellKnownPackageKeys)+len(spec.Package.Keys))
	pkeys = append(pkeys, wellKnownPackageKeys...)
	pkeys = append(pkeys, spec.Package.Keys...)

	packages := map[string]interface{}{}
	for _, key := range m.Order {
		p := m.Packages[key]
		po := map[string]interface{}{}
		for _, k := range pkeys {
			v, err := p.Info.GetDefault(k, nil)
			if err != nil {
				return nil, err
			}
			po[k] = v
		}
		for _, k := range sortedKeys(spec.Package.Items) {
			s, err := p.Info.Expand(spec.Package.Items[k])
			if err != nil {
				return nil, err
			}
			po[k] = s
		}
		packages[key] = po
	}
	out["package"] = packages
	return out, nil
}
