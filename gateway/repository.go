package gateway

import (
	"context"
	"os"
	"sync"

	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const emptyTree = "{}"

// Repository is the persisted content, kept as the viewer data module on disk. Writes are
// serialized and atomic, the last writer wins.
type Repository struct {
	mu     sync.RWMutex
	loader *publish.FileLoader
}

// NewRepository creates a repository backed by the data module at path.
func NewRepository(path string) *Repository {
	return &Repository{
		loader: &publish.FileLoader{Path: path},
	}
}

// Path returns the data module file path.
func (repo *Repository) Path() string {
	return repo.loader.Path
}

// Load returns the data module text. A missing file is served as an empty tree.
func (repo *Repository) Load() (string, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	text, err := repo.loader.Load(context.Background())
	if errors.Is(err, os.ErrNotExist) {
		return tree.WrapModule(emptyTree), nil
	}

	return text, err
}

// Tree parses the persisted content.
func (repo *Repository) Tree() (*tree.Node, error) {
	text, err := repo.Load()
	if err != nil {
		return nil, err
	}

	return tree.Deserialize(text)
}

// Save validates content and overwrites the data module with it.
func (repo *Repository) Save(content string) (*publish.Receipt, error) {
	if _, err := tree.Deserialize(content); err != nil {
		return nil, ErrInvalidContent.WithData(err.Error())
	}

	body := tree.UnwrapModule(content)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if err := publish.WriteModuleFile(repo.loader.Path, body); err != nil {
		logrus.WithError(err).WithField("file", repo.loader.Path).Error("Failed to write content")
		return nil, ErrWriteFailed.WithData(err.Error())
	}

	receipt := &publish.Receipt{
		Message:  "Content published successfully.",
		Revision: tree.RevisionOf(body).Hex(),
		Size:     len(body),
	}

	logrus.WithFields(logrus.Fields{
		"file":     repo.loader.Path,
		"revision": receipt.Revision,
		"size":     receipt.Size,
	}).Info("Content published")

	return receipt, nil
}
