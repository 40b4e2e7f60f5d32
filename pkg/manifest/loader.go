// Package manifest loads declarative package manifests: one or more TOML
// sources are parsed and deep-merged, then each entry of the package table
// is resolved into a Package with a layered, template-expanding scope and a
// version-control origin.
//
// A structurally broken package definition (missing src, missing or
// unknown vcs) is skipped with a diagnostic; the rest of the manifest
// still loads. Merge-kind conflicts and malformed load fields abort the
// whole load.
package manifest

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/pakrat-io/pakrat/pkg/manifest/status"
	"github.com/pakrat-io/pakrat/pkg/nested"
	"github.com/pakrat-io/pakrat/pkg/origin"
	"github.com/pakrat-io/pakrat/pkg/scope"
	"github.com/pakrat-io/pakrat/pkg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// wellKnownDirs are injected into the global scope on every load,
// overriding same-named manifest keys.
var wellKnownDirs = []struct {
	Key      string
	XDG      string
	Fallback string
}{
	{"CONFIG_HOME", "CONFIG", ".config"},
	{"DATA_HOME", "DATA", ".local/share"},
	{"STATE_HOME", "STATE", ".local/state"},
	{"CACHE_HOME", "CACHE", ".cache"},
}

// Package binds a manifest key to its resolved origin and its layered,
// expanding configuration scope.
type Package struct {
	Key        string
	Name       string
	Origin     *origin.Origin
	Info       *scope.Expander
	Properties map[string]interface{}
}

// Loaded reports whether the package participates in any variant: a false
// load field or an empty variant list opts the package out of repository
// operations.
func (p *Package) Loaded() bool {
	v, err := p.Info.GetDefault("load", true)
	if err != nil {
		return false
	}
	switch lv := v.(type) {
	case bool:
		return lv
	case []interface{}:
		return len(lv) > 0
	}
	return true
}

// LoadedFor reports whether the package participates in the named variant
func (p *Package) LoadedFor(variant string) bool {
	v, err := p.Info.GetDefault("load", nil)
	if err != nil || v == nil {
		return false
	}
	switch lv := v.(type) {
	case bool:
		return lv
	case []interface{}:
		for _, e := range lv {
			if s, ok := e.(string); ok && s == variant {
				return true
			}
		}
		return false
	}
	return true
}

// Manifest is the result of a load: the package registry in manifest
// order, the global expanding scope, and the merged configuration tree.
type Manifest struct {
	Packages map[string]*Package
	Order    []string
	Global   *scope.Expander
	Tree     map[string]interface{}

	diag *log.Logger
}

// Select restricts the manifest to the named packages, preserving manifest
// order. Unknown names are diagnosed and dropped; they do not fail the
// run.
func (m *Manifest) Select(names []string) *Manifest {
	selected := &Manifest{
		Packages: map[string]*Package{},
		Global:   m.Global,
		Tree:     m.Tree,
		diag:     m.diag,
	}
	want := map[string]struct{}{}
	for _, name := range names {
		if _, ok := m.Packages[name]; !ok {
			m.diag.Printf("%s: not a configured package.", name)
			continue
		}
		want[name] = struct{}{}
	}
	for _, key := range m.Order {
		if _, ok := want[key]; ok {
			selected.Packages[key] = m.Packages[key]
			selected.Order = append(selected.Order, key)
		}
	}
	return selected
}

// Each visits packages in manifest order
func (m *Manifest) Each(fn func(*Package)) {
	for _, key := range m.Order {
		fn(m.Packages[key])
	}
}

// Loader resolves manifests. Environment, filesystem, XDG discovery, and
// working directory are injectable for tests.
type Loader struct {
	fs         afero.Fs
	environ    func() []string
	dirs       *xdg.Dirs
	cwd        func() (string, error)
	diag       *log.Logger
	log        *zap.Logger
	originOpts []origin.Option
}

// LoaderOption customizes a Loader
type LoaderOption func(*Loader)

// WithFs sets the filesystem manifests are read from
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithEnviron sets the process environment used as the outermost scope
// layer
func WithEnviron(environ func() []string) LoaderOption {
	return func(l *Loader) {
		l.environ = environ
	}
}

// WithDirs sets the XDG directory resolver
func WithDirs(d *xdg.Dirs) LoaderOption {
	return func(l *Loader) {
		l.dirs = d
	}
}

// WithCwd sets the working directory lookup used for defaulted
// destinations
func WithCwd(cwd func() (string, error)) LoaderOption {
	return func(l *Loader) {
		l.cwd = cwd
	}
}

// WithDiag sets the logger receiving per-package diagnostics
func WithDiag(diag *log.Logger) LoaderOption {
	return func(l *Loader) {
		l.diag = diag
	}
}

// WithLogger sets the zap logger for debug tracing
func WithLogger(lg *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = lg
	}
}

// WithOriginOptions forwards options to every constructed origin
func WithOriginOptions(opts ...origin.Option) LoaderOption {
	return func(l *Loader) {
		l.originOpts = opts
	}
}

// NewLoader builds a Loader against the real process environment
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		environ: os.Environ,
		cwd:     os.Getwd,
		diag:    log.New(os.Stderr, "", 0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.dirs == nil {
		l.dirs = xdg.New(xdg.Fs(l.fs))
	}
	return l
}

// Load parses and merges sources, then resolves every package-table entry.
func (l *Loader) Load(sources ...Source) (*Manifest, error) {
	tree, order, err := readSources(l.fs, sources)
	if err != nil {
		return nil, err
	}

	env := environMap(l.environ())
	glo := nested.GetMap(tree, "global")
	if glo == nil {
		glo = map[string]interface{}{}
	}
	for _, d := range wellKnownDirs {
		dir, err := l.dirs.Dir(d.XDG, d.Fallback)
		if err != nil {
			return nil, err
		}
		glo[d.Key] = dir
	}
	global := scope.New(
		scope.MapLayer{"global": glo, "env": env},
		scope.MapLayer(glo),
		scope.MapLayer(env),
	)

	m := &Manifest{
		Packages: map[string]*Package{},
		Global:   scope.NewExpander(global),
		Tree:     tree,
		diag:     l.diag,
	}

	for _, key := range order {
		props := nested.GetMap(tree, "package", key)
		if props == nil {
			l.diag.Printf("%s: not a package table.", key)
			continue
		}
		pkg, err := l.resolve(key, props, tree, global)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			continue
		}
		m.Packages[key] = pkg
		m.Order = append(m.Order, key)
	}
	return m, nil
}

// resolve builds one Package. A nil, nil return means the entry was
// skipped with a diagnostic.
func (l *Loader) resolve(key string, props, tree map[string]interface{}, global *scope.Scope) (*Package, error) {
	props["key"] = key
	name := key
	if v, ok := props["name"]; ok {
		name = cast.ToString(v)
	} else {
		props["name"] = name
	}

	var template map[string]interface{}
	if tv, ok := props["template"]; ok {
		template = nested.GetMap(tree, "template", cast.ToString(tv))
	}
	if template == nil {
		template = map[string]interface{}{}
	}

	info := scope.NewExpander(scope.New(
		scope.MapLayer{"package": props},
		scope.MapLayer(props),
		scope.MapLayer(template),
		global,
	))

	load, err := info.GetDefault("load", true)
	if err != nil {
		return nil, err
	}
	switch lv := load.(type) {
	case bool, []interface{}:
	case string:
		load = []interface{}{lv}
	default:
		return nil, errors.Newf("%s: load is a %T, expected bool, string, or list", name, load).
			Wrap(status.ErrLoadField)
	}
	props["load"] = load

	dv, err := info.GetDefault("dst", nil)
	if err != nil {
		return nil, err
	}
	dst := cast.ToString(dv)
	if dst == "" {
		wd, err := l.cwd()
		if err != nil {
			return nil, err
		}
		dst = filepath.Join(wd, name)
		props["dst"] = dst
	}

	sv, err := info.GetDefault("src", nil)
	if err != nil {
		return nil, err
	}
	src, ok := sv.(string)
	if !ok {
		l.diag.Printf("%s: missing 'src' key.", name)
		return nil, nil
	}

	vv, err := info.GetDefault("vcs", nil)
	if err != nil {
		return nil, err
	}
	vcs, ok := vv.(string)
	if !ok {
		if !strings.HasSuffix(src, ".git") {
			l.diag.Printf("%s: missing 'vcs' key.", name)
			return nil, nil
		}
		vcs = "git"
		props["vcs"] = vcs
	}

	org, err := origin.New(vcs, name, src, dst, l.originOpts...)
	if err != nil {
		l.diag.Printf("%s: %s is not a known source type.", name, vcs)
		return nil, nil
	}
	l.log.Debug("resolved package",
		zap.String("key", key),
		zap.String("vcs", vcs),
		zap.String("src", src),
		zap.String("dst", dst),
	)
	return &Package{Key: key, Name: name, Origin: org, Info: info, Properties: props}, nil
}

func environMap(environ []string) map[string]interface{} {
	m := make(map[string]interface{}, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			m[kv[:i]] = kv[i+1:]
		}
	}
	return m
}
