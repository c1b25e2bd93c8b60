package gateway

import (
	"net/http"

	"github.com/ckhero/content-tree/common/api"
	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/session"
	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
)

// Content tree errors
var (
	ErrNodeNotFound     = api.NewBusinessError(101, "Node not found")
	ErrNameConflict     = api.NewBusinessError(102, "Item exists")
	ErrWrongKind        = api.NewBusinessError(103, "Operation not supported on this node kind")
	ErrProtectedNode    = api.NewBusinessError(104, "Root directory cannot be deleted")
	ErrNoSelection      = api.NewBusinessError(105, "No item selected")
	ErrInvalidName      = api.NewBusinessError(106, "Invalid name")
	ErrInvalidDirection = api.NewBusinessError(107, "Invalid direction")
)

// Persistence errors
var (
	ErrInvalidContent = api.NewBusinessError(201, "Invalid content").WithStatus(http.StatusBadRequest)
	ErrWriteFailed    = api.NewBusinessError(202, "Failed to write content").WithStatus(http.StatusInternalServerError)
	ErrPublishFailed  = api.NewBusinessError(203, "Failed to publish content")
	ErrLoadFailed     = api.NewBusinessError(204, "Failed to load content")
)

var treeErrors = []struct {
	err      error
	business *api.BusinessError
}{
	{tree.ErrNotFound, ErrNodeNotFound},
	{tree.ErrNameConflict, ErrNameConflict},
	{tree.ErrWrongKind, ErrWrongKind},
	{tree.ErrProtectedNode, ErrProtectedNode},
	{session.ErrNoSelection, ErrNoSelection},
	{tree.ErrInvalidName, ErrInvalidName},
	{tree.ErrInvalidDirection, ErrInvalidDirection},
}

// convertError maps content tree errors to business errors, others are returned as is.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	for _, e := range treeErrors {
		if errors.Is(err, e.err) {
			return e.business.WithData(err.Error())
		}
	}

	if tree.IsParseError(err) {
		return ErrLoadFailed.WithData(err.Error())
	}

	if publish.IsTransportError(err) {
		return ErrPublishFailed.WithData(err.Error())
	}

	return err
}
