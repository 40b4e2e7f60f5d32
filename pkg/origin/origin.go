// Package origin drives version-control operations (clone, update, status,
// bootstrap-script emission) for one package's upstream location and local
// checkout, behind uniform precondition gates. Concrete version-control
// kinds register under a short name ("git", "hg", "ln") and are looked up
// by that name when a manifest is loaded.
package origin

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrUnknownKind indicates a version-control kind with no registered backend
var ErrUnknownKind = errors.New("not a known source type")

// Backend is the minimal capability set a version-control kind implements.
// Preconditions are enforced by Origin, not by backends: Update, Status run
// only after Check passed, Clone only after the local path was confirmed
// available.
type Backend interface {
	Check(o *Origin) bool
	Clone(ctx context.Context, o *Origin) bool
	Update(ctx context.Context, o *Origin) bool
	Status(ctx context.Context, o *Origin) Status
	Bootstrap(o *Origin) bool
}

var backends = map[string]Backend{}

// Register binds a version-control kind name to its backend. Backends
// self-register from init, like database/sql drivers.
func Register(kind string, b Backend) {
	backends[kind] = b
}

// Kinds returns the registered kind names, sorted
func Kinds() []string {
	r := make([]string, 0, len(backends))
	for k := range backends {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Origin pairs a package's remote source location with its local
// materialization path for one immutable version-control kind.
type Origin struct {
	name   string
	remote string
	local  string
	kind   string

	backend Backend
	fs      afero.Fs
	runner  Runner
	stdout  io.Writer
	diag    *log.Logger
	log     *zap.Logger
}

// Option customizes an Origin
type Option func(*Origin)

// Stdout sets the writer receiving bootstrap scripts and command output
func Stdout(w io.Writer) Option {
	return func(o *Origin) {
		o.stdout = w
	}
}

// Diag sets the logger receiving user-facing diagnostics
func Diag(l *log.Logger) Option {
	return func(o *Origin) {
		o.diag = l
	}
}

// Fs sets the filesystem used for local path checks
func Fs(fs afero.Fs) Option {
	return func(o *Origin) {
		o.fs = fs
	}
}

// WithRunner sets the external command runner
func WithRunner(r Runner) Option {
	return func(o *Origin) {
		o.runner = r
	}
}

// Logger sets the zap logger for debug tracing
func Logger(l *zap.Logger) Option {
	return func(o *Origin) {
		o.log = l
	}
}

// New builds an Origin for the registered kind, or fails with
// ErrUnknownKind
func New(kind, name, remote, local string, opts ...Option) (*Origin, error) {
	b, ok := backends[kind]
	if !ok {
		return nil, errors.Newf("%s is not a known source type", kind).Wrap(ErrUnknownKind)
	}
	o := &Origin{
		name:    name,
		remote:  remote,
		local:   local,
		kind:    kind,
		backend: b,
		fs:      afero.NewOsFs(),
		runner:  ExecRunner{},
		stdout:  os.Stdout,
		diag:    log.New(os.Stderr, "", 0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Name returns the package display name
func (o *Origin) Name() string { return o.name }

// Remote returns the upstream location
func (o *Origin) Remote() string { return o.remote }

// Local returns the local materialization path
func (o *Origin) Local() string { return o.local }

// Kind returns the version-control kind name
func (o *Origin) Kind() string { return o.kind }

// Refresh updates the local checkout when it exists, clones it otherwise
func (o *Origin) Refresh(ctx context.Context) bool {
	if ok, _ := afero.Exists(o.fs, o.local); ok {
		return o.Update(ctx)
	}
	return o.Clone(ctx)
}

// Update pulls remote changes into the local checkout. It runs only when
// the backend's validity check passes; otherwise it fails without side
// effects.
func (o *Origin) Update(ctx context.Context) bool {
	if !o.backend.Check(o) {
		return false
	}
	return o.backend.Update(ctx, o)
}

// Clone materializes the local path from the remote. It runs only when the
// local path does not yet exist and its parent directory exists or can be
// created.
func (o *Origin) Clone(ctx context.Context) bool {
	if !o.checkLocalIsAvailable() {
		return false
	}
	return o.backend.Clone(ctx, o)
}

// CheckStatus classifies the local checkout, or reports StatusError when
// the validity check fails
func (o *Origin) CheckStatus(ctx context.Context) Status {
	if !o.backend.Check(o) {
		return StatusError
	}
	return o.backend.Status(ctx, o)
}

// Bootstrap emits a shell script fragment performing an equivalent
// clone-or-update, instead of executing anything in-process
func (o *Origin) Bootstrap() bool {
	fmt.Fprintf(o.stdout, "mkdir -p %s\n", Quote(filepath.Dir(o.local)))
	return o.backend.Bootstrap(o)
}

func (o *Origin) errorf(format string, args ...interface{}) {
	o.diag.Printf("%s: %s", o.name, fmt.Sprintf(format, args...))
}

func (o *Origin) checkLocalIsDir() bool {
	if ok, _ := afero.Exists(o.fs, o.local); !ok {
		o.errorf("%s does not exist.", o.local)
		return false
	}
	if ok, _ := afero.DirExists(o.fs, o.local); !ok {
		o.errorf("%s is not a directory.", o.local)
		return false
	}
	return true
}

func (o *Origin) checkLocalIsAvailable() bool {
	if ok, _ := afero.Exists(o.fs, o.local); ok {
		o.errorf("%s already exists.", o.local)
		return false
	}
	parent := filepath.Dir(o.local)
	if ok, _ := afero.DirExists(o.fs, parent); !ok {
		if err := o.fs.MkdirAll(parent, 0o755); err != nil {
			o.errorf("%s could not be created: %v.", o.local, err)
			return false
		}
	}
	return true
}

// run invokes an external tool, echoes any captured output, and reports
// success. A non-zero exit is a boolean failure, not a fatal error: the
// caller moves on to the next package.
func (o *Origin) run(ctx context.Context, dir string, name string, args ...string) bool {
	o.log.Debug("running", zap.String("tool", name), zap.Strings("args", args), zap.String("dir", dir))
	res, err := o.runner.Run(ctx, dir, name, args...)
	if res.Stderr != "" || res.Stdout != "" {
		fmt.Fprintf(o.stdout, "%s:\n", o.name)
		if res.Stderr != "" {
			fmt.Fprintln(o.stdout, res.Stderr)
		}
		if res.Stdout != "" {
			fmt.Fprintln(o.stdout, res.Stdout)
		}
	}
	if err != nil {
		o.errorf("%s failed: %v.", name, err)
		return false
	}
	return true
}
