package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
)

// FileLoader reads the persisted representation from a local file.
type FileLoader struct {
	Path string
}

// Load implements the Loader interface.
func (l *FileLoader) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return "", errors.WithMessagef(err, "failed to read %s", l.Path)
	}

	return string(data), nil
}

// FilePublisher writes the viewer data module straight to a local file, without a gateway.
type FilePublisher struct {
	Path string
}

// Publish implements the Publisher interface.
func (p *FilePublisher) Publish(ctx context.Context, content string) (*Result, error) {
	if err := WriteModuleFile(p.Path, content); err != nil {
		return nil, &TransportError{Endpoint: p.Path, Err: err}
	}

	return &Result{
		Message:  "Content published successfully.",
		Revision: tree.RevisionOf(content).Hex(),
	}, nil
}

// WriteModuleFile frames content as the viewer data module and replaces path atomically.
func WriteModuleFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithMessagef(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(tree.WrapModule(content)); err != nil {
		tmp.Close()
		return errors.WithMessage(err, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.WithMessage(err, "failed to close temp file")
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.WithMessage(err, "failed to set file mode")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WithMessagef(err, "failed to replace %s", path)
	}

	return nil
}
