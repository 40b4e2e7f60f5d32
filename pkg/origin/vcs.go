package origin

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// vcsBackend covers version-control tools that mark their checkouts with a
// metadata directory and share the clone/pull command shape.
type vcsBackend struct {
	tool   string   // binary name, also the registered kind
	pretty string   // human name for diagnostics
	marker string   // checkout marker directory
	update []string // arguments pulling remote changes, run in the checkout
	status []string // arguments reporting checkout state, run in the checkout
}

func init() {
	Register("git", &vcsBackend{
		tool:   "git",
		pretty: "Git",
		marker: ".git",
		update: []string{"pull", "--rebase"},
		status: []string{"status", "--short"},
	})
	Register("hg", &vcsBackend{
		tool:   "hg",
		pretty: "Mercurial",
		marker: ".hg",
		update: []string{"pull", "-u"},
		status: []string{"status"},
	})
}

func (v *vcsBackend) Check(o *Origin) bool {
	if !o.checkLocalIsDir() {
		return false
	}
	if ok, _ := afero.DirExists(o.fs, filepath.Join(o.local, v.marker)); !ok {
		o.errorf("%s is not a %s repository.", o.local, v.pretty)
		return false
	}
	// TODO: check that the checkout's primary remote matches o.remote.
	return true
}

func (v *vcsBackend) Clone(ctx context.Context, o *Origin) bool {
	return o.run(ctx, "", v.tool, "clone", o.remote, o.local)
}

func (v *vcsBackend) Update(ctx context.Context, o *Origin) bool {
	return o.run(ctx, o.local, v.tool, v.update...)
}

func (v *vcsBackend) Status(ctx context.Context, o *Origin) Status {
	// The finer upgradable/dirty classification is not computed yet; the
	// native status output is echoed for the user and the result stays
	// unknown.
	o.run(ctx, o.local, v.tool, v.status...)
	return StatusUnknown
}

func (v *vcsBackend) Bootstrap(o *Origin) bool {
	local := Quote(o.local)
	fmt.Fprintf(o.stdout, "if test -d %s\n", local)
	fmt.Fprintf(o.stdout, "then (cd %s && %s %s)\n", local, v.tool, strings.Join(v.update, " "))
	fmt.Fprintf(o.stdout, "else %s clone %s %s\n", v.tool, Quote(o.remote), local)
	fmt.Fprintln(o.stdout, "fi")
	return true
}
