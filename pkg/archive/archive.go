// Package archive unpacks input zip archives into a working directory.
//
// Extraction is deliberately strict: entries that would escape the working
// directory, absolute entry paths, and non-regular files are rejected rather
// than skipped, because a tampered archive is more likely an error than an
// intent.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/panelprep/panelprep/pkg/errors"
)

// Workdir is an extraction working directory and its contents.
type Workdir struct {
	// Root is the absolute path of the working directory.
	Root string

	// Files lists the extracted entries relative to Root, in archive order.
	Files []string
}

// Path returns the absolute path of an extracted file.
func (w *Workdir) Path(rel string) string {
	return filepath.Join(w.Root, rel)
}

// Cleanup removes the working directory and everything in it.
func (w *Workdir) Cleanup() error {
	if w.Root == "" {
		return nil
	}
	return os.RemoveAll(w.Root)
}

// Extract unpacks the zip archive at zipPath into a fresh working directory
// under workRoot. The directory name carries a random suffix so concurrent
// leftovers from aborted runs never collide.
func Extract(zipPath, workRoot string) (*Workdir, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchive, err, "open archive %s", zipPath)
	}
	defer r.Close()

	root := filepath.Join(workRoot, "panelprep-"+uuid.NewString())
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create working directory %s", root)
	}

	w := &Workdir{Root: root}
	for _, f := range r.File {
		name := f.Name
		if strings.HasSuffix(name, "/") {
			// Directory entries are recreated implicitly below.
			continue
		}
		if err := errors.ValidateEntryPath(name); err != nil {
			w.Cleanup()
			return nil, err
		}
		if !f.Mode().IsRegular() {
			w.Cleanup()
			return nil, errors.New(errors.ErrCodeArchive, "archive entry %s is not a regular file", name)
		}

		if err := extractFile(f, filepath.Join(root, filepath.FromSlash(name))); err != nil {
			w.Cleanup()
			return nil, err
		}
		w.Files = append(w.Files, name)
	}

	if len(w.Files) == 0 {
		w.Cleanup()
		return nil, errors.New(errors.ErrCodeArchive, "archive %s contains no files", zipPath)
	}

	return w, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory for %s", f.Name)
	}

	in, err := f.Open()
	if err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "read archive entry %s", f.Name)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "extract %s", f.Name)
	}
	return nil
}
