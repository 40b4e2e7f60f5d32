package project

import (
	"bytes"
	"log"
	"testing"

	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/pakrat-io/pakrat/pkg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	xdgConfigHome = "/home/test/.config"
	xdgDataHome   = "/home/test/.local/share"
	xdgStateHome  = "/home/test/.local/state"
	xdgCacheHome  = "/home/test/.cache"
)

// manifestTOML exercises every projection path: a plain git package, one
// opted out entirely, and two symlinks gated on variants.
const manifestTOML = `
	[global]
	gv = '@'
	gw = '#'

	[package.a]
	name = 'pakrat'
	src = 'https://codeberg.org/example/pakrat.git'
	dst = '/usr/local/src/pakrat'
	pv = 3
	pw = 4

	[package.b]
	load = false
	vcs = 'hg'
	src = 'https://example.com/public/repo/test'
	dst = '/usr/local/src/test'
	pv = 5
	pw = 6

	[package.c]
	load = 'one'
	vcs = 'ln'
	src = '/usr/local/src/another/share/config'
	dst = '{CONFIG_HOME}/{name}'
	pv = 7
	pw = 8

	[package.d]
	load = ['one', 'two']
	vcs = 'ln'
	src = '/etc/passwd'
	dst = '{DATA_HOME}/passwd'
	pv = 9
	pw = 10

	[output]
	global.keys = ['gv']

	[list.test]
	global.keys = ['gv']
	global.items = {gz = '{gw}{gw}'}
	package.keys = ['pv']
	package.items = {pz = '{pw}{name}{pw}'}

	[list.one]
	file = 'one.txt'
	package.items.pz = 'enable("{name}", {pv})'

	[list.two]
	file = 'two.txt'
	global.keys = ['CONFIG_HOME', 'DATA_HOME']
`

func testManifest(t *testing.T, toml string) *manifest.Manifest {
	t.Helper()
	fs := afero.NewMemMapFs()
	env := map[string]string{
		"XDG_CONFIG_HOME": xdgConfigHome,
		"XDG_DATA_HOME":   xdgDataHome,
		"XDG_STATE_HOME":  xdgStateHome,
		"XDG_CACHE_HOME":  xdgCacheHome,
	}
	var diag bytes.Buffer
	l := manifest.NewLoader(
		manifest.WithFs(fs),
		manifest.WithEnviron(func() []string {
			r := make([]string, 0, len(env))
			for k, v := range env {
				r = append(r, k+"="+v)
			}
			return r
		}),
		manifest.WithDirs(xdg.New(
			xdg.Fs(fs),
			xdg.Getenv(func(name string) string { return env[name] }),
			xdg.Home(func() (string, error) { return "/home/test", nil }),
		)),
		manifest.WithCwd(func() (string, error) { return "/cwd", nil }),
		manifest.WithDiag(log.New(&diag, "", 0)),
	)
	m, err := l.Load(manifest.Data("test", []byte(toml)))
	require.NoError(t, err)
	require.Empty(t, diag.String())
	return m
}
