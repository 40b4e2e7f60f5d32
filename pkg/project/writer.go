package project

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pakrat-io/pakrat/pkg/errors"
)

// ListWriter writes list files, keeping one `.bak` generation of the
// previous content.
type ListWriter struct {
	fs afero.Fs
}

// NewListWriter returns a writer backed by fs.
func NewListWriter(fs afero.Fs) *ListWriter {
	return &ListWriter{fs: fs}
}

// Write stores content at path. An existing file is rotated to its backup
// name first, replacing any backup already there. Parent directories are
// created as needed.
func (w *ListWriter) Write(path, content string) error {
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Newf("cannot create directory for %q", path).Wrap(err)
	}
	exists, err := afero.Exists(w.fs, path)
	if err != nil {
		return errors.Newf("cannot stat %q", path).Wrap(err)
	}
	if exists {
		bak := backupPath(path)
		if bakExists, _ := afero.Exists(w.fs, bak); bakExists {
			if err := w.fs.Remove(bak); err != nil {
				return errors.Newf("cannot remove old backup %q", bak).Wrap(err)
			}
		}
		if err := w.fs.Rename(path, bak); err != nil {
			return errors.Newf("cannot back up %q", path).Wrap(err)
		}
	}
	if err := afero.WriteFile(w.fs, path, []byte(content), 0o644); err != nil {
		return errors.Newf("cannot write %q", path).Wrap(err)
	}
	return nil
}

// backupPath swaps the file extension for ".bak". Dotfiles without a real
// extension get ".bak" appended instead.
func backupPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" || ext == filepath.Base(path) {
		return path + ".bak"
	}
	return strings.TrimSuffix(path, ext) + ".bak"
}
