package tree

import (
	"github.com/google/btree"
	"github.com/pkg/errors"
)

// DiffStatus represents the status of a node in the diff.
type DiffStatus string

const (
	DiffStatusAdded     DiffStatus = "added"
	DiffStatusRemoved   DiffStatus = "removed"
	DiffStatusModified  DiffStatus = "modified"
	DiffStatusUnchanged DiffStatus = "unchanged"
)

// DiffNode represents a node in the diff structure with its status.
type DiffNode struct {
	Node    *Node                    // The node, taken from the next tree unless removed
	Path    string                   // Absolute path of the node
	Status  DiffStatus               // Diff status of the node
	Entries *btree.BTreeG[*DiffNode] // Directory entries ordered by name
}

// Change is a single flattened diff entry.
type Change struct {
	Path   string     `json:"path"`
	Kind   Kind       `json:"kind"`
	Status DiffStatus `json:"status"`
}

// NewDiffNode creates a new DiffNode.
func NewDiffNode(node *Node, path string, status DiffStatus) *DiffNode {
	diffNode := &DiffNode{
		Node:   node,
		Path:   path,
		Status: status,
	}

	if node.IsDirectory() {
		diffNode.Entries = btree.NewG(2, func(a, b *DiffNode) bool {
			return a.Node.Name < b.Node.Name
		})
	}

	return diffNode
}

// Diff compares two directories and returns a DiffNode tree with the differences. Besides added,
// removed and modified entries, a directory whose entries were reordered is reported as modified.
func Diff(current, next *Node) (*DiffNode, error) {
	if !current.IsDirectory() || !next.IsDirectory() {
		return nil, errors.WithMessage(ErrWrongKind, "diff is only supported for directories")
	}

	return diff(current, next, RootName), nil
}

// diff is a recursive function that computes the differences between two directory nodes.
func diff(current, next *Node, path string) *DiffNode {
	root := NewDiffNode(next, path, DiffStatusUnchanged)

	// processes entries from the current directory.
	for _, currentEntry := range current.Entries {
		entryPath := childPath(path, currentEntry.Name)

		nextEntry, found := next.Child(currentEntry.Name)
		if !found {
			root.Entries.ReplaceOrInsert(NewDiffNode(currentEntry, entryPath, DiffStatusRemoved))
			root.Status = DiffStatusModified
			continue
		}

		if currentEntry.Equal(nextEntry) {
			root.Entries.ReplaceOrInsert(NewDiffNode(nextEntry, entryPath, DiffStatusUnchanged))
			continue
		}

		root.Status = DiffStatusModified
		if currentEntry.IsDirectory() && nextEntry.IsDirectory() {
			root.Entries.ReplaceOrInsert(diff(currentEntry, nextEntry, entryPath))
		} else {
			root.Entries.ReplaceOrInsert(NewDiffNode(nextEntry, entryPath, DiffStatusModified))
		}
	}

	// processes entries from the next directory that were not found in the current directory.
	for _, nextEntry := range next.Entries {
		if _, found := current.Child(nextEntry.Name); !found {
			root.Status = DiffStatusModified
			root.Entries.ReplaceOrInsert(NewDiffNode(nextEntry, childPath(path, nextEntry.Name), DiffStatusAdded))
		}
	}

	if reordered(current, next) {
		root.Status = DiffStatusModified
	}

	return root
}

// reordered reports whether the entries present in both directories changed relative order.
func reordered(current, next *Node) bool {
	var before, after []string
	for _, entry := range current.Entries {
		if _, found := next.Child(entry.Name); found {
			before = append(before, entry.Name)
		}
	}
	for _, entry := range next.Entries {
		if _, found := current.Child(entry.Name); found {
			after = append(after, entry.Name)
		}
	}

	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}

// Changes flattens the diff into the list of changed paths, parents before children.
func (node *DiffNode) Changes() []Change {
	var changes []Change
	node.walk(func(n *DiffNode) {
		if n.Status != DiffStatusUnchanged {
			changes = append(changes, Change{Path: n.Path, Kind: n.Node.Kind, Status: n.Status})
		}
	})
	return changes
}

func (node *DiffNode) walk(fn func(*DiffNode)) {
	fn(node)
	if node.Entries == nil {
		return
	}
	node.Entries.Ascend(func(entry *DiffNode) bool {
		entry.walk(fn)
		return true
	})
}
