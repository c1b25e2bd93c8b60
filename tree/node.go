package tree

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind is the discriminant of a Node.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindDocument  Kind = "document"
)

// ParseKind converts the textual form of a kind, accepting the "folder" and "file" aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "directory", "folder", "dir":
		return KindDirectory, nil
	case "document", "file", "doc":
		return KindDocument, nil
	default:
		return "", ErrWrongKind
	}
}

// RootName is the name carried by the root directory of every tree.
const RootName = "/"

// Node represents a directory or a document in the content tree.
type Node struct {
	Name    string  `json:"name"`              // Entry name, unique among siblings
	Kind    Kind    `json:"kind"`              // Directory or document
	Content string  `json:"content,omitempty"` // Rich-text payload (only for documents)
	Entries []*Node `json:"entries,omitempty"` // Ordered entries (only for directories)
}

// NewDirectory creates a directory node holding the given entries in order.
func NewDirectory(name string, entries ...*Node) *Node {
	return &Node{
		Name:    name,
		Kind:    KindDirectory,
		Entries: append([]*Node{}, entries...),
	}
}

// NewDocument creates a document node with the given content.
func NewDocument(name, content string) *Node {
	return &Node{
		Name:    name,
		Kind:    KindDocument,
		Content: content,
	}
}

// NewRoot creates an empty root directory.
func NewRoot(entries ...*Node) *Node {
	return NewDirectory(RootName, entries...)
}

func (node *Node) IsDirectory() bool { return node.Kind == KindDirectory }

func (node *Node) IsDocument() bool { return node.Kind == KindDocument }

// Search returns the position of the named entry in display order.
func (node *Node) Search(name string) (int, bool) {
	for i, entry := range node.Entries {
		if entry.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Child returns the named entry of a directory.
func (node *Node) Child(name string) (*Node, bool) {
	if !node.IsDirectory() {
		return nil, false
	}
	if i, found := node.Search(name); found {
		return node.Entries[i], true
	}
	return nil, false
}

// Names returns the entry names in display order.
func (node *Node) Names() []string {
	names := make([]string, 0, len(node.Entries))
	for _, entry := range node.Entries {
		names = append(names, entry.Name)
	}
	return names
}

// Equal compares two nodes, including entry order.
func (node *Node) Equal(rhs *Node) bool {
	if node == nil || rhs == nil {
		return node == rhs
	}

	if node.Kind != rhs.Kind || node.Name != rhs.Name {
		return false
	}

	switch node.Kind {
	case KindDocument:
		return node.Content == rhs.Content
	case KindDirectory:
		if len(node.Entries) != len(rhs.Entries) {
			return false
		}
		for i := 0; i < len(node.Entries); i++ {
			if !node.Entries[i].Equal(rhs.Entries[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the node.
func (node *Node) Clone() *Node {
	clone := &Node{
		Name:    node.Name,
		Kind:    node.Kind,
		Content: node.Content,
	}

	if node.IsDirectory() {
		clone.Entries = make([]*Node, 0, len(node.Entries))
		for _, entry := range node.Entries {
			clone.Entries = append(clone.Entries, entry.Clone())
		}
	}

	return clone
}

// Traverse walks the subtree depth-first in display order and applies actionFunc to each node
// along with its absolute path, where the node itself is located at basePath.
func (node *Node) Traverse(basePath string, actionFunc func(node *Node, path string) error) error {
	return node.traverse(CanonicalPath(basePath), actionFunc)
}

func (node *Node) traverse(path string, actionFunc func(node *Node, path string) error) error {
	if err := actionFunc(node, path); err != nil {
		return err
	}

	if !node.IsDirectory() {
		return nil
	}

	for _, entry := range node.Entries {
		if err := entry.traverse(childPath(path, entry.Name), actionFunc); err != nil {
			return err
		}
	}

	return nil
}

// Flatten collects the nodes of the subtree rooted at basePath together with their paths.
// The optional filterFunc decides which nodes are included.
func (node *Node) Flatten(basePath string, filterFunc ...func(*Node) bool) (result []*Node, paths []string) {
	node.Traverse(basePath, func(n *Node, p string) error {
		if len(filterFunc) == 0 || filterFunc[0](n) {
			result = append(result, n)
			paths = append(paths, p)
		}
		return nil
	})
	return result, paths
}

// Validate checks that a tree built outside of the Store satisfies the tree invariants.
func Validate(root *Node) error {
	if root == nil || !root.IsDirectory() {
		return errors.WithMessage(ErrWrongKind, "root must be a directory")
	}

	return (&validator{}).validate(root)
}

// validator keeps the names from the root to the node being checked, the path is only
// rendered when reporting a violation.
type validator struct {
	names []string
}

func (v *validator) path(name ...string) string {
	return PathSeparator + strings.Join(append(v.names[:len(v.names):len(v.names)], name...), PathSeparator)
}

func (v *validator) validate(n *Node) error {
	switch n.Kind {
	case KindDocument:
		if len(n.Entries) > 0 {
			return errors.WithMessagef(ErrWrongKind, "document %s has entries", v.path())
		}
		return nil
	case KindDirectory:
	default:
		return errors.WithMessagef(ErrWrongKind, "unknown kind %q at %s", n.Kind, v.path())
	}

	if n.Content != "" {
		return errors.WithMessagef(ErrWrongKind, "directory %s has content", v.path())
	}

	seen := make(map[string]struct{}, len(n.Entries))
	for _, entry := range n.Entries {
		if entry == nil {
			return errors.WithMessagef(ErrWrongKind, "nil entry in %s", v.path())
		}
		if err := ValidateName(entry.Name); err != nil {
			return errors.WithMessagef(err, "entry of %s", v.path())
		}
		if _, ok := seen[entry.Name]; ok {
			return errors.WithMessagef(ErrNameConflict, "%s", v.path(entry.Name))
		}
		seen[entry.Name] = struct{}{}
	}

	for _, entry := range n.Entries {
		v.names = append(v.names, entry.Name)
		if err := v.validate(entry); err != nil {
			return err
		}
		v.names = v.names[:len(v.names)-1]
	}

	return nil
}
