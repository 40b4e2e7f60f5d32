package origin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// symlinkBackend materializes a package as a symbolic link to a master
// local directory. A link has no independent revision state.
type symlinkBackend struct{}

func init() {
	Register("ln", symlinkBackend{})
}

func (symlinkBackend) Check(o *Origin) bool {
	if !o.checkLocalIsDir() {
		return false
	}
	lst, ok := o.fs.(afero.Lstater)
	if !ok {
		o.errorf("%s cannot be checked for a symbolic link.", o.local)
		return false
	}
	fi, lstated, err := lst.LstatIfPossible(o.local)
	if err != nil || !lstated || fi.Mode()&os.ModeSymlink == 0 {
		o.errorf("%s is not a symbolic link.", o.local)
		return false
	}
	target, err := resolveLink(o.fs, o.local)
	if err != nil {
		o.errorf("%s cannot be resolved: %v.", o.local, err)
		return false
	}
	want, err := filepath.Abs(o.remote)
	if err != nil {
		want = o.remote
	}
	if target != want {
		o.errorf("%s does not point to %s.", o.local, o.remote)
		return false
	}
	return true
}

func (symlinkBackend) Clone(_ context.Context, o *Origin) bool {
	linker, ok := o.fs.(afero.Linker)
	if !ok {
		o.errorf("%s: symbolic links are not supported here.", o.local)
		return false
	}
	if err := linker.SymlinkIfPossible(o.remote, o.local); err != nil {
		o.errorf("%s could not be linked: %v.", o.local, err)
		return false
	}
	return true
}

func (symlinkBackend) Update(context.Context, *Origin) bool {
	// a link tracks its master directory; there is nothing to pull
	return true
}

func (symlinkBackend) Status(context.Context, *Origin) Status {
	return StatusUnchanged
}

func (symlinkBackend) Bootstrap(o *Origin) bool {
	local := Quote(o.local)
	fmt.Fprintf(o.stdout, "test -d %s || ln -s %s %s\n", local, Quote(o.remote), local)
	return true
}

func resolveLink(fs afero.Fs, path string) (string, error) {
	lr, ok := fs.(afero.LinkReader)
	if !ok {
		return "", afero.ErrNoReadlink
	}
	target, err := lr.ReadlinkIfPossible(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}
