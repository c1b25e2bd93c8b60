package session

import (
	"context"
	"sync"

	"github.com/ckhero/content-tree/common"
	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/tree"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errPublisherNotConfigured = errors.New("publisher not configured")

// Option configures a Session.
type Option struct {
	StoreOption tree.StoreOption
	LogOption   common.LogOption
}

// Status summarizes the session state.
type Status struct {
	CurrentPath       string         `json:"currentPath"`
	Selected          string         `json:"selected,omitempty"`
	Dirty             bool           `json:"dirty"`
	Revision          ethCommon.Hash `json:"revision"`
	PublishedRevision ethCommon.Hash `json:"publishedRevision"`
	Entries           []tree.Entry   `json:"entries"`
}

// Session is an admin editing session: the content tree, the navigation state and the persisted
// representation it was loaded from and is published to. All commands are serialized, so no
// partially applied mutation is ever observable.
type Session struct {
	mu sync.Mutex

	loader    publish.Loader
	publisher publish.Publisher

	store *tree.Store
	nav   *Navigator

	published         *tree.Node // tree as last loaded or published
	publishedRevision ethCommon.Hash
	publishSeq        uint64 // sequence of the latest started publish
	recordedSeq       uint64 // sequence of the latest recorded publish

	logger *logrus.Logger
}

// Load reads and parses the persisted representation. Any failure is fatal for the session, the
// caller may retry or abort.
func Load(ctx context.Context, loader publish.Loader, publisher publish.Publisher, option ...Option) (*Session, error) {
	var opt Option
	if len(option) > 0 {
		opt = option[0]
	}

	if opt.StoreOption.LogOption == (common.LogOption{}) {
		opt.StoreOption.LogOption = opt.LogOption
	}

	root, revision, err := load(ctx, loader)
	if err != nil {
		return nil, err
	}

	store, err := tree.NewStore(root, opt.StoreOption)
	if err != nil {
		return nil, err
	}

	s := &Session{
		loader:            loader,
		publisher:         publisher,
		store:             store,
		nav:               NewNavigator(store),
		published:         root.Clone(),
		publishedRevision: revision,
		logger:            common.NewLogger(opt.LogOption),
	}

	s.logger.WithField("revision", revision).Info("Content tree loaded")

	return s, nil
}

func load(ctx context.Context, loader publish.Loader) (*tree.Node, ethCommon.Hash, error) {
	text, err := loader.Load(ctx)
	if err != nil {
		return nil, ethCommon.Hash{}, errors.WithMessage(err, "failed to load content")
	}

	root, err := tree.Deserialize(text)
	if err != nil {
		return nil, ethCommon.Hash{}, errors.WithMessage(err, "failed to parse content")
	}

	revision, err := tree.Revision(root)
	if err != nil {
		return nil, ethCommon.Hash{}, errors.WithMessage(err, "failed to compute revision")
	}

	return root, revision, nil
}

// Do runs fn with exclusive access to the navigator and its store.
func (s *Session) Do(fn func(nav *Navigator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.nav)
}

// Reload replaces the tree with the persisted representation. On failure the current tree is kept.
func (s *Session) Reload(ctx context.Context) error {
	root, revision, err := load(ctx, s.loader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Replace(root); err != nil {
		return err
	}

	s.published = root.Clone()
	s.publishedRevision = revision
	s.recordedSeq = s.publishSeq
	s.nav.Revalidate()

	s.logger.WithField("revision", revision).Info("Content tree reloaded")

	return nil
}

// Publish overwrites the persisted representation with the current tree. The tree stays editable
// while the request is in flight. On failure the tree is unchanged and publishing can be retried.
func (s *Session) Publish(ctx context.Context) (*publish.Result, error) {
	if s.publisher == nil {
		return nil, errPublisherNotConfigured
	}

	s.mu.Lock()
	text, err := tree.Serialize(s.store.Root())
	snapshot := s.store.Root().Clone()
	s.publishSeq++
	seq := s.publishSeq
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	result, err := s.publisher.Publish(ctx, text)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to publish content")

		if !publish.IsTransportError(err) {
			err = &publish.TransportError{Message: err.Error(), Err: err}
		}
		return nil, err
	}

	revision := tree.RevisionOf(text)
	if result.Revision == "" {
		result.Revision = revision.Hex()
	}

	s.mu.Lock()
	// a slower publish started earlier must not overwrite a newer record
	if seq > s.recordedSeq {
		s.published = snapshot
		s.publishedRevision = revision
		s.recordedSeq = seq
	}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"revision":  revision,
		"requestId": result.RequestID,
		"size":      len(text),
	}).Info("Content published")

	return result, nil
}

// Revision fingerprints the current tree.
func (s *Session) Revision() (ethCommon.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return tree.Revision(s.store.Root())
}

// Dirty reports whether the current tree diverged from the last loaded or published one.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.published.Equal(s.store.Root())
}

// Changes lists the paths changed since the last load or publish.
func (s *Session) Changes() ([]tree.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diff, err := tree.Diff(s.published, s.store.Root())
	if err != nil {
		return nil, err
	}

	return diff.Changes(), nil
}

// Status summarizes the session, including the listing of the current directory.
func (s *Session) Status() (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	revision, err := tree.Revision(s.store.Root())
	if err != nil {
		return nil, err
	}

	entries, err := s.nav.List()
	if err != nil {
		return nil, err
	}

	selected, _ := s.nav.Selected()

	return &Status{
		CurrentPath:       s.nav.CurrentPath(),
		Selected:          selected,
		Dirty:             revision != s.publishedRevision,
		Revision:          revision,
		PublishedRevision: s.publishedRevision,
		Entries:           entries,
	}, nil
}
