// Package xdg resolves XDG base directories (config, data, state, cache),
// creating them when absent. Environment and filesystem access are
// injectable so tests can substitute deterministic paths.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/spf13/afero"
)

// ErrHome indicates that the user's home directory could not be determined
var ErrHome = errors.New("cannot determine home directory")

// Dirs resolves XDG directories against an environment and a filesystem
type Dirs struct {
	fs     afero.Fs
	getenv func(string) string
	home   func() (string, error)
}

// Option customizes a Dirs
type Option func(*Dirs)

// Fs sets the filesystem used to probe and create directories
func Fs(fs afero.Fs) Option {
	return func(d *Dirs) {
		d.fs = fs
	}
}

// Getenv sets the environment lookup function
func Getenv(f func(string) string) Option {
	return func(d *Dirs) {
		d.getenv = f
	}
}

// Home sets the home directory lookup function
func Home(f func() (string, error)) Option {
	return func(d *Dirs) {
		d.home = f
	}
}

// New builds a Dirs defaulting to the real process environment and OS
// filesystem
func New(opts ...Option) *Dirs {
	d := &Dirs{
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
		home:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dir resolves the XDG directory for name: the XDG_<name>_HOME environment
// variable when set, else fallback under the user's home directory. The
// resolved directory is created when absent.
func (d *Dirs) Dir(name, fallback string) (string, error) {
	if dir := d.getenv("XDG_" + name + "_HOME"); dir != "" {
		if err := d.ensure(dir); err != nil {
			return "", err
		}
		return dir, nil
	}
	home, err := d.home()
	if err != nil {
		return "", errors.Newf("resolving XDG %s directory", name).Wrap(ErrHome)
	}
	dir := filepath.Join(home, fallback)
	if err := d.ensure(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func (d *Dirs) ensure(dir string) error {
	ok, err := afero.DirExists(d.fs, dir)
	if err != nil {
		return err
	}
	if !ok {
		return d.fs.MkdirAll(dir, 0o755)
	}
	return nil
}
