package tree

import (
	"strings"
	"time"

	"github.com/ckhero/content-tree/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultListingCacheSize   = 256
	defaultListingCacheExpiry = time.Minute * 10
)

// Direction moves an entry one position within its directory.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts the textual form of a direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down:
		return d, nil
	default:
		return "", errors.WithMessagef(ErrInvalidDirection, "%q", s)
	}
}

// Entry is a row of a rendered directory listing.
type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
}

// StoreOption configures a Store.
type StoreOption struct {
	CacheSize   int              // max number of cached directory listings
	CacheExpiry time.Duration    // lifetime of a cached listing
	LogOption   common.LogOption // log option for mutations
}

// Store owns a content tree and is the only way to mutate it. Every mutation validates its input
// before touching the tree, so a failed operation leaves the tree unchanged.
//
// Store is not safe for concurrent use, callers serialize access.
type Store struct {
	root     *Node
	listings *expirable.LRU[string, []Entry] // canonical directory path -> listing
	logger   *logrus.Logger
}

// NewStore creates a store that takes ownership of root.
func NewStore(root *Node, option ...StoreOption) (*Store, error) {
	var opt StoreOption
	if len(option) > 0 {
		opt = option[0]
	}

	if opt.CacheSize <= 0 {
		opt.CacheSize = defaultListingCacheSize
	}

	if opt.CacheExpiry <= 0 {
		opt.CacheExpiry = defaultListingCacheExpiry
	}

	if err := Validate(root); err != nil {
		return nil, errors.WithMessage(err, "invalid tree")
	}

	return &Store{
		root:     root,
		listings: expirable.NewLRU[string, []Entry](opt.CacheSize, nil, opt.CacheExpiry),
		logger:   common.NewLogger(opt.LogOption),
	}, nil
}

// Root returns the root directory.
func (s *Store) Root() *Node {
	return s.root
}

// Replace swaps the whole tree, e.g. after reloading the persisted text.
func (s *Store) Replace(root *Node) error {
	if err := Validate(root); err != nil {
		return errors.WithMessage(err, "invalid tree")
	}

	s.root = root
	s.listings.Purge()

	s.logger.Debug("Content tree replaced")

	return nil
}

// Resolve locates the node addressed by path.
func (s *Store) Resolve(path string) (*Node, error) {
	return Resolve(s.root, path)
}

// resolveDirectory locates a directory, any other node is reported as not found.
func (s *Store) resolveDirectory(path string) (*Node, error) {
	node, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}

	if !node.IsDirectory() {
		return nil, errors.WithMessagef(ErrNotFound, "directory %q", path)
	}

	return node, nil
}

// List renders the entries of the directory at path. Listings are cached until the directory is
// mutated, callers always receive their own copy.
func (s *Store) List(path string) ([]Entry, error) {
	key := CanonicalPath(path)
	if listing, ok := s.listings.Get(key); ok {
		return copyListing(listing), nil
	}

	dir, err := s.resolveDirectory(path)
	if err != nil {
		return nil, err
	}

	listing := make([]Entry, 0, len(dir.Entries))
	for _, entry := range dir.Entries {
		listing = append(listing, Entry{
			Name: entry.Name,
			Kind: entry.Kind,
			Path: childPath(key, entry.Name),
		})
	}

	s.listings.Add(key, listing)

	return copyListing(listing), nil
}

func copyListing(listing []Entry) []Entry {
	result := make([]Entry, len(listing))
	copy(result, listing)
	return result
}

// CreateChild appends an empty directory or an empty document named name to the directory at
// parentPath.
func (s *Store) CreateChild(parentPath, name string, kind Kind) (*Node, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var child *Node
	switch kind {
	case KindDirectory:
		child = NewDirectory(name)
	case KindDocument:
		child = NewDocument(name, "")
	default:
		return nil, errors.WithMessagef(ErrWrongKind, "unknown kind %q", kind)
	}

	parent, err := s.resolveDirectory(parentPath)
	if err != nil {
		return nil, err
	}

	if _, found := parent.Search(name); found {
		return nil, errors.WithMessagef(ErrNameConflict, "%q", JoinPath(parentPath, name))
	}

	parent.Entries = append(parent.Entries, child)
	s.invalidate(CanonicalPath(parentPath))

	s.logger.WithFields(logrus.Fields{
		"parent": CanonicalPath(parentPath),
		"name":   name,
		"kind":   kind,
	}).Debug("Node created")

	return child, nil
}

// Delete removes the node at path along with its whole subtree.
func (s *Store) Delete(path string) error {
	if IsRoot(path) {
		return ErrProtectedNode
	}

	parentPath, name := SplitPath(path)
	parent, err := s.Resolve(parentPath)
	if err != nil {
		return errors.WithMessagef(ErrNotFound, "path %q", path)
	}

	index, found := -1, false
	if parent.IsDirectory() {
		index, found = parent.Search(name)
	}
	if !found {
		return errors.WithMessagef(ErrNotFound, "path %q", path)
	}

	removed := parent.Entries[index]
	parent.Entries = append(parent.Entries[:index], parent.Entries[index+1:]...)

	s.invalidate(parentPath)
	if removed.IsDirectory() {
		s.invalidateSubtree(JoinPath(parentPath, name))
	}

	s.logger.WithFields(logrus.Fields{
		"path": JoinPath(parentPath, name),
		"kind": removed.Kind,
	}).Debug("Node deleted")

	return nil
}

// SetContent replaces the payload of the document at path.
func (s *Store) SetContent(path, payload string) error {
	node, err := s.Resolve(path)
	if err != nil {
		return err
	}

	if !node.IsDocument() {
		return errors.WithMessagef(ErrWrongKind, "%q is a directory", path)
	}

	node.Content = payload

	s.logger.WithFields(logrus.Fields{
		"path": CanonicalPath(path),
		"size": len(payload),
	}).Debug("Document content updated")

	return nil
}

// Reorder swaps the named entry with its predecessor (Up) or successor (Down). Moving past either
// end of the directory is a no-op.
func (s *Store) Reorder(parentPath string, direction Direction, name string) error {
	if direction != Up && direction != Down {
		return errors.WithMessagef(ErrInvalidDirection, "%q", direction)
	}

	parent, err := s.resolveDirectory(parentPath)
	if err != nil {
		return err
	}

	index, found := parent.Search(name)
	if !found {
		return errors.WithMessagef(ErrNotFound, "%q", JoinPath(parentPath, name))
	}

	other := index - 1
	if direction == Down {
		other = index + 1
	}

	if other < 0 || other >= len(parent.Entries) {
		return nil
	}

	parent.Entries[index], parent.Entries[other] = parent.Entries[other], parent.Entries[index]
	s.invalidate(CanonicalPath(parentPath))

	s.logger.WithFields(logrus.Fields{
		"parent":    CanonicalPath(parentPath),
		"name":      name,
		"direction": direction,
	}).Debug("Node moved")

	return nil
}

// invalidate evicts the cached listing of a directory.
func (s *Store) invalidate(path string) {
	s.listings.Remove(path)
}

// invalidateSubtree evicts the cached listings of a removed directory and its descendants.
func (s *Store) invalidateSubtree(path string) {
	prefix := path + PathSeparator
	for _, key := range s.listings.Keys() {
		if key == path || strings.HasPrefix(key, prefix) {
			s.listings.Remove(key)
		}
	}
}
