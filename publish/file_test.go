package publish_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePublisherAndLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "content-data.js")

	result, err := (&publish.FilePublisher{Path: path}).Publish(context.Background(), `{"a": {}}`)
	require.NoError(t, err)
	assert.Equal(t, tree.RevisionOf(`{"a": {}}`).Hex(), result.Revision)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `export const fileSystemData = {"a": {}};`, string(data))

	text, err := (&publish.FileLoader{Path: path}).Load(context.Background())
	require.NoError(t, err)

	root, err := tree.Deserialize(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, root.Names())

	// overwritten wholesale, no temp files left behind
	_, err = (&publish.FilePublisher{Path: path}).Publish(context.Background(), `{}`)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileLoaderMissing(t *testing.T) {
	_, err := (&publish.FileLoader{Path: filepath.Join(t.TempDir(), "missing.js")}).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
