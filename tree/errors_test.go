package tree_test

import (
	"testing"

	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func extractParseError(err error) *tree.ParseError {
	var parseError *tree.ParseError
	if errors.As(err, &parseError) {
		return parseError
	}
	return nil
}

func TestParseErrorAs(t *testing.T) {
	assert.Equal(t, extractParseError(errors.New("123")) == nil, true)

	err := &tree.ParseError{Line: 2, Offset: 10, Message: "unexpected value"}
	assert.DeepEqual(t, extractParseError(errors.WithMessage(err, "failed to load")), err)
	assert.DeepEqual(
		t,
		extractParseError(errors.WithMessage(errors.WithMessage(err, "failed to deserialize"), "Failed to load content")),
		err,
	)
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	store, err := tree.NewStore(tree.NewRoot())
	assert.NilError(t, err)

	err = store.Delete("/missing")
	assert.Assert(t, errors.Is(err, tree.ErrNotFound))
	assert.Assert(t, errors.Is(errors.WithMessage(err, "failed to delete"), tree.ErrNotFound))
	assert.Assert(t, !errors.Is(err, tree.ErrProtectedNode))
}
