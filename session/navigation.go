package session

import (
	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
)

var ErrNoSelection = errors.New("no node selected")

// Navigator tracks the current directory and the selected entry within it. Selection always names
// a child of the current directory and is cleared whenever the current directory changes.
type Navigator struct {
	store       *tree.Store
	currentPath string
	selected    string // empty if nothing selected
}

// NewNavigator creates a navigator positioned at the root of store.
func NewNavigator(store *tree.Store) *Navigator {
	return &Navigator{
		store:       store,
		currentPath: tree.RootName,
	}
}

// Store returns the underlying store.
func (n *Navigator) Store() *tree.Store {
	return n.store
}

// CurrentPath returns the canonical path of the current directory.
func (n *Navigator) CurrentPath() string {
	return n.currentPath
}

// Selected returns the selected entry name, if any.
func (n *Navigator) Selected() (string, bool) {
	return n.selected, n.selected != ""
}

// SelectedPath returns the absolute path of the selected entry, if any.
func (n *Navigator) SelectedPath() (string, bool) {
	if n.selected == "" {
		return "", false
	}
	return tree.JoinPath(n.currentPath, n.selected), true
}

func (n *Navigator) setCurrent(path string) {
	path = tree.CanonicalPath(path)
	if path != n.currentPath {
		n.currentPath = path
		n.selected = ""
	}
}

func (n *Navigator) current() (*tree.Node, error) {
	node, err := n.store.Resolve(n.currentPath)
	if err != nil {
		return nil, err
	}

	if !node.IsDirectory() {
		return nil, errors.WithMessagef(tree.ErrNotFound, "directory %q", n.currentPath)
	}

	return node, nil
}

// List renders the current directory.
func (n *Navigator) List() ([]tree.Entry, error) {
	return n.store.List(n.currentPath)
}

// Select marks a child of the current directory.
func (n *Navigator) Select(name string) error {
	dir, err := n.current()
	if err != nil {
		return err
	}

	if _, found := dir.Child(name); !found {
		return errors.WithMessagef(tree.ErrNotFound, "%q", tree.JoinPath(n.currentPath, name))
	}

	n.selected = name

	return nil
}

// ClearSelection drops the selection, if any.
func (n *Navigator) ClearSelection() {
	n.selected = ""
}

// NavigateInto enters the named child directory. It reports false and leaves the state unchanged if
// name is not a child directory.
func (n *Navigator) NavigateInto(name string) bool {
	dir, err := n.current()
	if err != nil {
		return false
	}

	child, found := dir.Child(name)
	if !found || !child.IsDirectory() {
		return false
	}

	n.setCurrent(tree.JoinPath(n.currentPath, name))

	return true
}

// NavigateUp moves to the parent directory. It reports false at the root.
func (n *Navigator) NavigateUp() bool {
	if tree.IsRoot(n.currentPath) {
		return false
	}

	parent, _ := tree.SplitPath(n.currentPath)
	n.setCurrent(parent)

	return true
}

// NavigateTo jumps to the node at path. A directory becomes the current directory. For a document
// its parent becomes the current directory and the document is returned to be opened. On error
// the state is unchanged.
func (n *Navigator) NavigateTo(path string) (*tree.Node, error) {
	node, err := n.store.Resolve(path)
	if err != nil {
		return nil, err
	}

	if node.IsDirectory() {
		n.setCurrent(path)
	} else {
		parent, _ := tree.SplitPath(path)
		n.setCurrent(parent)
	}

	return node, nil
}

// CreateChild creates an empty directory or document in the current directory.
func (n *Navigator) CreateChild(name string, kind tree.Kind) (*tree.Node, error) {
	return n.store.CreateChild(n.currentPath, name, kind)
}

// Delete removes the selected entry and clears the selection.
func (n *Navigator) Delete() error {
	path, ok := n.SelectedPath()
	if !ok {
		return ErrNoSelection
	}

	if err := n.store.Delete(path); err != nil {
		return err
	}

	n.selected = ""

	return nil
}

// Reorder moves the selected entry one position up or down, keeping it selected.
func (n *Navigator) Reorder(direction tree.Direction) error {
	if n.selected == "" {
		return ErrNoSelection
	}

	return n.store.Reorder(n.currentPath, direction, n.selected)
}

// Revalidate repairs the state after the tree changed underneath, e.g. on reload. The current
// directory falls back to its nearest existing ancestor directory, and a selection that no longer
// exists is dropped.
func (n *Navigator) Revalidate() {
	path := n.currentPath
	for {
		if node, err := n.store.Resolve(path); err == nil && node.IsDirectory() {
			break
		}
		path, _ = tree.SplitPath(path)
	}

	n.setCurrent(path)

	if n.selected == "" {
		return
	}

	if dir, err := n.current(); err != nil {
		n.selected = ""
	} else if _, found := dir.Child(n.selected); !found {
		n.selected = ""
	}
}
