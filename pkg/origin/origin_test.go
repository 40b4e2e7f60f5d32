package origin

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/pakrat-io/pakrat/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls [][]string
	dirs  []string
	res   Result
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir string, name string, args ...string) (Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	return f.res, f.err
}

type originFixture struct {
	origin *Origin
	runner *fakeRunner
	fs     afero.Fs
	stdout *bytes.Buffer
	diag   *bytes.Buffer
}

func newFixture(t *testing.T, kind, remote, local string) *originFixture {
	f := &originFixture{
		runner: &fakeRunner{},
		fs:     afero.NewMemMapFs(),
		stdout: &bytes.Buffer{},
		diag:   &bytes.Buffer{},
	}
	o, err := New(kind, "test", remote, local,
		Fs(f.fs),
		WithRunner(f.runner),
		Stdout(f.stdout),
		Diag(log.New(f.diag, "", 0)),
	)
	require.NoError(t, err)
	f.origin = o
	return f
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("wtf", "test", "remote", "local")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"git", "hg", "ln"}, Kinds())
}

func TestAccessors(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	assert.Equal(t, "test", f.origin.Name())
	assert.Equal(t, "remote", f.origin.Remote())
	assert.Equal(t, "/src/test", f.origin.Local())
	assert.Equal(t, "git", f.origin.Kind())
}

func TestGitClone(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src", 0o755))

	require.True(t, f.origin.Clone(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"git", "clone", "remote", "/src/test"}, f.runner.calls[0])
	assert.Equal(t, "", f.dirsAt(0))
}

func (f *originFixture) dirsAt(i int) string { return f.runner.dirs[i] }

func TestCloneCreatesParent(t *testing.T) {
	f := newFixture(t, "git", "remote", "/deep/down/test")

	require.True(t, f.origin.Clone(context.Background()))
	ok, err := afero.DirExists(f.fs, "/deep/down")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCloneLocalExists(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test", 0o755))

	assert.False(t, f.origin.Clone(context.Background()))
	assert.Empty(t, f.runner.calls)
	assert.Contains(t, f.diag.String(), "already exists")
}

func TestGitUpdate(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))

	require.True(t, f.origin.Update(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"git", "pull", "--rebase"}, f.runner.calls[0])
	assert.Equal(t, "/src/test", f.dirsAt(0))
}

func TestHgUpdate(t *testing.T) {
	f := newFixture(t, "hg", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.hg", 0o755))

	require.True(t, f.origin.Update(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"hg", "pull", "-u"}, f.runner.calls[0])
}

func TestUpdateMissingLocal(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")

	assert.False(t, f.origin.Update(context.Background()))
	assert.Empty(t, f.runner.calls)
	assert.Contains(t, f.diag.String(), "does not exist")
}

func TestUpdateNotARepository(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test", 0o755))

	assert.False(t, f.origin.Update(context.Background()))
	assert.Empty(t, f.runner.calls)
	assert.Contains(t, f.diag.String(), "not a Git repository")
}

func TestHgNotARepository(t *testing.T) {
	f := newFixture(t, "hg", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))

	assert.False(t, f.origin.Update(context.Background()))
	assert.Contains(t, f.diag.String(), "not a Mercurial repository")
}

func TestRefreshClonesWhenMissing(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src", 0o755))

	require.True(t, f.origin.Refresh(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, "clone", f.runner.calls[0][1])
}

func TestRefreshUpdatesWhenPresent(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))

	require.True(t, f.origin.Refresh(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, "pull", f.runner.calls[0][1])
}

func TestGitStatus(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))

	assert.Equal(t, StatusUnknown, f.origin.CheckStatus(context.Background()))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"git", "status", "--short"}, f.runner.calls[0])
}

func TestStatusInvalidLocal(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")

	assert.Equal(t, StatusError, f.origin.CheckStatus(context.Background()))
	assert.Empty(t, f.runner.calls)
}

func TestRunEchoesOutput(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))
	f.runner.res = Result{Stdout: "M file.txt"}

	require.True(t, f.origin.Update(context.Background()))
	assert.Contains(t, f.stdout.String(), "test:\n")
	assert.Contains(t, f.stdout.String(), "M file.txt")
}

func TestRunFailure(t *testing.T) {
	f := newFixture(t, "git", "remote", "/src/test")
	require.NoError(t, f.fs.MkdirAll("/src/test/.git", 0o755))
	f.runner.err = assert.AnError

	assert.False(t, f.origin.Update(context.Background()))
	assert.Contains(t, f.diag.String(), "git failed")
}

func TestGitBootstrap(t *testing.T) {
	f := newFixture(t, "git", "remote", "/usr/local/src/test")

	require.True(t, f.origin.Bootstrap())
	assert.Equal(t,
		"mkdir -p \"/usr/local/src\"\n"+
			"if test -d \"/usr/local/src/test\"\n"+
			"then (cd \"/usr/local/src/test\" && git pull --rebase)\n"+
			"else git clone \"remote\" \"/usr/local/src/test\"\n"+
			"fi\n",
		f.stdout.String())
}

func TestHgBootstrap(t *testing.T) {
	f := newFixture(t, "hg", "https://example.com/repo", "/usr/local/src/test")

	require.True(t, f.origin.Bootstrap())
	assert.Equal(t,
		"mkdir -p \"/usr/local/src\"\n"+
			"if test -d \"/usr/local/src/test\"\n"+
			"then (cd \"/usr/local/src/test\" && hg pull -u)\n"+
			"else hg clone \"https://example.com/repo\" \"/usr/local/src/test\"\n"+
			"fi\n",
		f.stdout.String())
}

func TestSymlinkBootstrap(t *testing.T) {
	f := newFixture(t, "ln", "/etc/passwd", "/home/test/.local/share/passwd")

	require.True(t, f.origin.Bootstrap())
	assert.Equal(t,
		"mkdir -p \"/home/test/.local/share\"\n"+
			"test -d \"/home/test/.local/share/passwd\" || "+
			"ln -s \"/etc/passwd\" \"/home/test/.local/share/passwd\"\n",
		f.stdout.String())
}
