// Package target writes generated documents into a project directory.
package target

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/logging"
	securejoin "github.com/cyphar/filepath-securejoin"
)

// ErrExists is returned when a document must not replace an existing file.
var ErrExists = errors.New("already exists")

// Policy decides what happens when a document's file already exists.
type Policy int

const (
	// SkipExisting leaves an existing file untouched.
	SkipExisting Policy = iota
	// FailExisting reports ErrExists for an existing file.
	FailExisting
	// Replace always writes. Used for documents whose content was derived
	// from the existing file.
	Replace
)

// InstallOpts controls how documents are written.
type InstallOpts struct {
	Force  bool // replace existing files regardless of policy
	DryRun bool // report what would happen without touching disk
}

// Document is one generated file.
type Document struct {
	Path    string // relative to the project root
	Content string
	Mode    fs.FileMode
	Policy  Policy
}

// OpStatus is the outcome of writing one document.
type OpStatus string

const (
	OpCreated   OpStatus = "created"
	OpUpdated   OpStatus = "updated"
	OpUnchanged OpStatus = "unchanged"
	OpSkipped   OpStatus = "skipped"
)

// Op records what happened to one document.
type Op struct {
	Path   string
	Status OpStatus
}

// Writer writes documents under Root. Paths never escape Root.
type Writer struct {
	Root string
}

// NewWriter returns a Writer rooted at the project directory.
func NewWriter(root string) *Writer {
	return &Writer{Root: root}
}

// Resolve maps a project-relative path to a path inside Root.
func (w *Writer) Resolve(rel string) (string, error) {
	p, err := securejoin.SecureJoin(w.Root, rel)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rel, err)
	}
	return p, nil
}

// Exists reports whether rel exists under Root.
func (w *Writer) Exists(rel string) bool {
	p, err := w.Resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Read returns the content of rel.
func (w *Writer) Read(rel string) ([]byte, error) {
	p, err := w.Resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// EnsureDirs creates each directory under Root.
func (w *Writer) EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		p, err := w.Resolve(d)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

// Write writes a single document according to its policy.
func (w *Writer) Write(doc Document, opts InstallOpts) (Op, error) {
	op := Op{Path: doc.Path}
	dest, err := w.Resolve(doc.Path)
	if err != nil {
		return op, err
	}
	mode := doc.Mode
	if mode == 0 {
		mode = 0o644
	}

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil:
		if bytes.Equal(existing, []byte(doc.Content)) {
			op.Status = OpUnchanged
			return op, w.chmod(dest, mode, opts)
		}
		if !opts.Force {
			switch doc.Policy {
			case SkipExisting:
				op.Status = OpSkipped
				return op, nil
			case FailExisting:
				return op, fmt.Errorf("%s %w (use --force to overwrite)", doc.Path, ErrExists)
			}
		}
		op.Status = OpUpdated
	case errors.Is(err, fs.ErrNotExist):
		op.Status = OpCreated
	default:
		return op, fmt.Errorf("read %s: %w", doc.Path, err)
	}

	if opts.DryRun {
		return op, nil
	}
	if err := writeFileAtomic(dest, []byte(doc.Content), mode); err != nil {
		return op, fmt.Errorf("write %s: %w", doc.Path, err)
	}
	logging.Debug("wrote document", "path", doc.Path, "status", op.Status)
	return op, nil
}

// WriteAll writes documents in order and stops at the first failure.
func (w *Writer) WriteAll(docs []Document, opts InstallOpts) ([]Op, error) {
	ops := make([]Op, 0, len(docs))
	for _, d := range docs {
		op, err := w.Write(d, opts)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// RemoveAll deletes rel and everything below it.
func (w *Writer) RemoveAll(rel string) error {
	p, err := w.Resolve(rel)
	if err != nil {
		return err
	}
	if filepath.Clean(p) == filepath.Clean(w.Root) {
		return fmt.Errorf("refusing to remove project root")
	}
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

func (w *Writer) chmod(dest string, mode fs.FileMode, opts InstallOpts) error {
	if opts.DryRun {
		return nil
	}
	info, err := os.Stat(dest)
	if err != nil || info.Mode().Perm() == mode.Perm() {
		return nil
	}
	return os.Chmod(dest, mode)
}

// writeFileAtomic writes through a temp file in the destination directory
// so a failed write never leaves a truncated file behind.
func writeFileAtomic(dest string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
