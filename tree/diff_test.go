package tree_test

import (
	"testing"

	"github.com/ckhero/content-tree/tree"
	"github.com/stretchr/testify/assert"
)

func TestDiffIdenticalDirectories(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDocument("file1.txt", "1"), tree.NewDocument("file2.txt", "2"))
	dir2 := tree.NewRoot(tree.NewDocument("file1.txt", "1"), tree.NewDocument("file2.txt", "2"))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)
	assert.Equal(t, tree.DiffStatusUnchanged, diffNode.Status)
	assert.Equal(t, 2, diffNode.Entries.Len())
	assert.Empty(t, diffNode.Changes())
}

func TestDiffFileAdded(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDocument("file1.txt", "1"))
	dir2 := tree.NewRoot(tree.NewDocument("file1.txt", "1"), tree.NewDocument("file2.txt", "2"))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)
	assert.Equal(t, tree.DiffStatusModified, diffNode.Status)

	addedNode := findDiffNodeByName(diffNode, "file2.txt")
	assert.NotNil(t, addedNode)
	assert.Equal(t, tree.DiffStatusAdded, addedNode.Status)
	assert.Equal(t, "/file2.txt", addedNode.Path)
}

func TestDiffFileRemoved(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDocument("file1.txt", "1"), tree.NewDirectory("old"))
	dir2 := tree.NewRoot(tree.NewDocument("file1.txt", "1"))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)
	assert.Equal(t, tree.DiffStatusModified, diffNode.Status)

	removedNode := findDiffNodeByName(diffNode, "old")
	assert.NotNil(t, removedNode)
	assert.Equal(t, tree.DiffStatusRemoved, removedNode.Status)
	assert.True(t, removedNode.Node.IsDirectory())
}

func TestDiffSubdirectoryChanges(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDirectory("subdir", tree.NewDocument("file1.txt", "<p>a</p>")))
	dir2 := tree.NewRoot(tree.NewDirectory("subdir", tree.NewDocument("file1.txt", "<p>b</p>")))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)
	assert.Equal(t, tree.DiffStatusModified, diffNode.Status)

	subDirDiffNode := findDiffNodeByName(diffNode, "subdir")
	assert.NotNil(t, subDirDiffNode)
	assert.Equal(t, tree.DiffStatusModified, subDirDiffNode.Status)

	modifiedNode := findDiffNodeByName(subDirDiffNode, "file1.txt")
	assert.NotNil(t, modifiedNode)
	assert.Equal(t, tree.DiffStatusModified, modifiedNode.Status)

	assert.Equal(t, []tree.Change{
		{Path: "/", Kind: tree.KindDirectory, Status: tree.DiffStatusModified},
		{Path: "/subdir", Kind: tree.KindDirectory, Status: tree.DiffStatusModified},
		{Path: "/subdir/file1.txt", Kind: tree.KindDocument, Status: tree.DiffStatusModified},
	}, diffNode.Changes())
}

func TestDiffKindChange(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDirectory("x"))
	dir2 := tree.NewRoot(tree.NewDocument("x", ""))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)

	node := findDiffNodeByName(diffNode, "x")
	assert.Equal(t, tree.DiffStatusModified, node.Status)
	assert.True(t, node.Node.IsDocument())
}

func TestDiffReorder(t *testing.T) {
	dir1 := tree.NewRoot(tree.NewDocument("a", ""), tree.NewDocument("b", ""))
	dir2 := tree.NewRoot(tree.NewDocument("b", ""), tree.NewDocument("a", ""))

	diffNode, err := tree.Diff(dir1, dir2)
	assert.NoError(t, err)
	assert.Equal(t, tree.DiffStatusModified, diffNode.Status)
	assert.Equal(t, []tree.Change{
		{Path: "/", Kind: tree.KindDirectory, Status: tree.DiffStatusModified},
	}, diffNode.Changes())
}

func TestDiffRequiresDirectories(t *testing.T) {
	_, err := tree.Diff(tree.NewRoot(), tree.NewDocument("x", ""))
	assert.ErrorIs(t, err, tree.ErrWrongKind)
}

// Utility function to find a DiffNode by name
func findDiffNodeByName(root *tree.DiffNode, name string) *tree.DiffNode {
	var result *tree.DiffNode
	root.Entries.Ascend(func(n *tree.DiffNode) bool {
		if n.Node.Name == name {
			result = n
			return false
		}
		return true
	})
	return result
}
