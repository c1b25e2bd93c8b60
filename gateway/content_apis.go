package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/tree"
	"github.com/gin-gonic/gin"
)

const moduleContentType = "application/javascript; charset=utf-8"

type contentController struct {
	repo *Repository
}

func (ctrl *contentController) publishContent(c *gin.Context) (interface{}, error) {
	var input struct {
		Content string `form:"content" json:"content"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	if input.Content == "" {
		return nil, ErrInvalidContent.WithData("content is required")
	}

	return ctrl.repo.Save(input.Content)
}

// getModule serves the viewer data module as is.
func (ctrl *contentController) getModule(c *gin.Context) {
	text, err := ctrl.repo.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrLoadFailed.WithData(err.Error()))
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, moduleContentType, []byte(text))
}

func (ctrl *contentController) getTree(c *gin.Context) (interface{}, error) {
	root, err := ctrl.repo.Tree()
	if err != nil {
		return nil, convertError(err)
	}

	text, err := tree.Serialize(root)
	if err != nil {
		return nil, err
	}

	// keep entry order
	return json.RawMessage(text), nil
}

// ContentApi is the JSON-RPC service of the gateway, registered under the "content" namespace.
type ContentApi struct {
	repo *Repository
}

// NewContentApi creates the RPC service backed by repo.
func NewContentApi(repo *Repository) *ContentApi {
	return &ContentApi{repo}
}

// Publish validates content and overwrites the persisted content with it.
func (api *ContentApi) Publish(ctx context.Context, content string) (*publish.Receipt, error) {
	return api.repo.Save(content)
}

// Tree returns the persisted content tree text.
func (api *ContentApi) Tree(ctx context.Context) (string, error) {
	root, err := api.repo.Tree()
	if err != nil {
		return "", err
	}

	return tree.Serialize(root)
}
