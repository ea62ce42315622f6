// Package output writes generated files below a root directory.
package output

import (
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// Writer writes files relative to Root on FS.
type Writer struct {
	FS   afero.Fs
	Root string
}

// New returns a writer rooted at root. An empty root is rejected.
func New(fs afero.Fs, root string) (*Writer, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.NotValidf("empty output directory")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{FS: fs, Root: root}, nil
}

// Write stores content at rel below the root, creating parent folders, and
// returns the full path written. Existing files are overwritten.
func (w *Writer) Write(rel, content string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.NotValidf("output path %q", rel)
	}

	full := filepath.Join(w.Root, clean)
	if err := w.FS.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errors.Annotatef(err, "cannot create folder for %s", full)
	}
	if err := afero.WriteFile(w.FS, full, []byte(content), 0o644); err != nil {
		return "", errors.Annotatef(err, "cannot write %s", full)
	}
	return full, nil
}
