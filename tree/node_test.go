package tree_test

import (
	"fmt"
	"testing"

	"github.com/ckhero/content-tree/tree"
	"github.com/stretchr/testify/assert"
)

func TestNewDirectory(t *testing.T) {
	child1 := tree.NewDocument("b.txt", "")
	child2 := tree.NewDirectory("a")

	node := tree.NewDirectory("root", child1, child2)

	assert.Equal(t, "root", node.Name)
	assert.True(t, node.IsDirectory())
	assert.False(t, node.IsDocument())
	// entries are never sorted
	assert.Equal(t, []string{"b.txt", "a"}, node.Names())
}

func TestNewDocument(t *testing.T) {
	node := tree.NewDocument("b.txt", "<p>hi</p>")

	assert.Equal(t, "b.txt", node.Name)
	assert.True(t, node.IsDocument())
	assert.Equal(t, "<p>hi</p>", node.Content)
	assert.Empty(t, node.Entries)
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"directory", "folder", "DIR"} {
		kind, err := tree.ParseKind(s)
		assert.NoError(t, err)
		assert.Equal(t, tree.KindDirectory, kind)
	}

	for _, s := range []string{"document", "file", " doc "} {
		kind, err := tree.ParseKind(s)
		assert.NoError(t, err)
		assert.Equal(t, tree.KindDocument, kind)
	}

	_, err := tree.ParseKind("symlink")
	assert.ErrorIs(t, err, tree.ErrWrongKind)
}

func TestSearch(t *testing.T) {
	node := tree.NewRoot(tree.NewDirectory("z"), tree.NewDocument("a", ""))

	index, found := node.Search("a")
	assert.True(t, found)
	assert.Equal(t, 1, index)

	_, found = node.Search("missing")
	assert.False(t, found)

	_, found = tree.NewDocument("doc", "").Child("a")
	assert.False(t, found)
}

func TestNodeEqual(t *testing.T) {
	tests := []struct {
		name     string
		node1    *tree.Node
		node2    *tree.Node
		expected bool
	}{
		{
			name:     "Equal Documents",
			node1:    tree.NewDocument("a", "<p>x</p>"),
			node2:    tree.NewDocument("a", "<p>x</p>"),
			expected: true,
		},
		{
			name:     "Different Content",
			node1:    tree.NewDocument("a", "<p>x</p>"),
			node2:    tree.NewDocument("a", "<p>y</p>"),
			expected: false,
		},
		{
			name:     "Empty Directory vs Empty Document",
			node1:    tree.NewDirectory("a"),
			node2:    tree.NewDocument("a", ""),
			expected: false,
		},
		{
			name:     "Equal Nested Directories",
			node1:    tree.NewDirectory("a", tree.NewDirectory("b"), tree.NewDocument("c", "1")),
			node2:    tree.NewDirectory("a", tree.NewDirectory("b"), tree.NewDocument("c", "1")),
			expected: true,
		},
		{
			name:     "Different Entry Order",
			node1:    tree.NewDirectory("a", tree.NewDirectory("b"), tree.NewDocument("c", "1")),
			node2:    tree.NewDirectory("a", tree.NewDocument("c", "1"), tree.NewDirectory("b")),
			expected: false,
		},
		{
			name:     "Nil Entries vs Empty Entries",
			node1:    &tree.Node{Name: "a", Kind: tree.KindDirectory},
			node2:    tree.NewDirectory("a"),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node1.Equal(tt.node2))
		})
	}
}

func TestClone(t *testing.T) {
	original := tree.NewRoot(tree.NewDirectory("a", tree.NewDocument("b", "x")))
	clone := original.Clone()

	assert.True(t, original.Equal(clone))

	clone.Entries[0].Entries[0].Content = "y"
	assert.Equal(t, "x", original.Entries[0].Entries[0].Content)
}

func TestTraverse(t *testing.T) {
	root := tree.NewRoot(
		tree.NewDocument("file1.txt", ""),
		tree.NewDirectory("subdir", tree.NewDocument("file2.txt", "")),
	)

	var visited []string
	err := root.Traverse(tree.RootName, func(node *tree.Node, path string) error {
		visited = append(visited, path)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"/", "/file1.txt", "/subdir", "/subdir/file2.txt"}, visited)

	// errors stop the traversal
	err = root.Traverse(tree.RootName, func(node *tree.Node, path string) error {
		if node.IsDocument() {
			return fmt.Errorf("stop at %s", path)
		}
		return nil
	})
	assert.EqualError(t, err, "stop at /file1.txt")

	// the base path is canonicalized once
	visited = nil
	err = root.Entries[1].Traverse("projects/subdir", func(node *tree.Node, path string) error {
		visited = append(visited, path)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"/projects/subdir", "/projects/subdir/file2.txt"}, visited)
}

func TestFlatten(t *testing.T) {
	root := tree.NewRoot(
		tree.NewDocument("file1.txt", ""),
		tree.NewDirectory("subdir", tree.NewDocument("file2.txt", "")),
	)

	nodes, paths := root.Flatten(tree.RootName, (*tree.Node).IsDocument)
	assert.Len(t, nodes, 2)
	assert.Equal(t, []string{"/file1.txt", "/subdir/file2.txt"}, paths)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, tree.Validate(tree.NewRoot(tree.NewDirectory("a"), tree.NewDocument("b", ""))))

	assert.ErrorIs(t, tree.Validate(tree.NewDocument("/", "")), tree.ErrWrongKind)
	assert.ErrorIs(t, tree.Validate(tree.NewRoot(tree.NewDirectory("a"), tree.NewDocument("a", ""))), tree.ErrNameConflict)
	assert.ErrorIs(t, tree.Validate(tree.NewRoot(tree.NewDirectory("a/b"))), tree.ErrInvalidName)
	assert.ErrorIs(t, tree.Validate(tree.NewRoot(tree.NewDirectory(""))), tree.ErrInvalidName)
	assert.ErrorIs(t, tree.Validate(tree.NewRoot(&tree.Node{Name: "x", Kind: "symlink"})), tree.ErrWrongKind)

	// violations below the root report the full path
	err := tree.Validate(tree.NewRoot(tree.NewDirectory("a", tree.NewDirectory("b", tree.NewDocument("c", ""), tree.NewDirectory("c")))))
	assert.ErrorIs(t, err, tree.ErrNameConflict)
	assert.Contains(t, err.Error(), "/a/b/c")
}

func TestValidateDeepTree(t *testing.T) {
	root := tree.NewRoot()
	current := root
	for i := 0; i < tree.MaxDepth; i++ {
		child := tree.NewDirectory("d")
		current.Entries = append(current.Entries, child)
		current = child
	}
	current.Entries = append(current.Entries, tree.NewDocument("leaf", "x"))

	assert.NoError(t, tree.Validate(root))

	current.Entries = append(current.Entries, tree.NewDirectory("leaf"))
	err := tree.Validate(root)
	assert.ErrorIs(t, err, tree.ErrNameConflict)
	assert.Contains(t, err.Error(), "/d/d/leaf")
}
