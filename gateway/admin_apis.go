package gateway

import (
	"github.com/ckhero/content-tree/common/api"
	"github.com/ckhero/content-tree/session"
	"github.com/ckhero/content-tree/tree"
	"github.com/gin-gonic/gin"
)

// MustServeAdmin serves the admin API of an editing session.
func MustServeAdmin(endpoint string, sess *session.Session, origins ...string) {
	api.MustServe(endpoint, AdminRoutes(sess), api.RouterOption{
		OriginsAllowed: origins,
	})
}

// AdminRoutes creates the admin routes over sess.
func AdminRoutes(sess *session.Session) api.RouteFactory {
	ctrl := &adminController{sess}

	return func(router *gin.Engine) {
		adminApi := router.Group("/admin")
		adminApi.GET("/status", wrap(ctrl.status))
		adminApi.GET("/ls", wrap(ctrl.list))
		adminApi.POST("/cd", wrap(ctrl.changeDirectory))
		adminApi.POST("/up", wrap(ctrl.up))
		adminApi.POST("/select", wrap(ctrl.selectEntry))
		adminApi.POST("/folder", wrap(ctrl.createFolder))
		adminApi.POST("/file", wrap(ctrl.createFile))
		adminApi.POST("/delete", wrap(ctrl.deleteSelected))
		adminApi.POST("/move", wrap(ctrl.move))
		adminApi.GET("/content", wrap(ctrl.getContent))
		adminApi.PUT("/content", wrap(ctrl.setContent))
		adminApi.POST("/publish", wrap(ctrl.publish))
		adminApi.POST("/reload", wrap(ctrl.reload))
		adminApi.GET("/changes", wrap(ctrl.changes))
	}
}

// wrap converts content tree errors before replying.
func wrap(controller api.Controller) gin.HandlerFunc {
	return api.Wrap(func(c *gin.Context) (interface{}, error) {
		result, err := controller(c)
		return result, convertError(err)
	})
}

type adminController struct {
	sess *session.Session
}

// Document is an opened document.
type Document struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (ctrl *adminController) status(c *gin.Context) (interface{}, error) {
	return ctrl.sess.Status()
}

func (ctrl *adminController) list(c *gin.Context) (interface{}, error) {
	var input struct {
		Path string `form:"path" json:"path"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	var entries []tree.Entry
	err := ctrl.sess.Do(func(nav *session.Navigator) (err error) {
		if input.Path == "" {
			entries, err = nav.List()
		} else {
			entries, err = nav.Store().List(input.Path)
		}
		return
	})

	return entries, err
}

// changeDirectory navigates to a path. A document path opens the document.
func (ctrl *adminController) changeDirectory(c *gin.Context) (interface{}, error) {
	var input struct {
		Path string `form:"path" json:"path" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	var doc *Document
	err := ctrl.sess.Do(func(nav *session.Navigator) error {
		node, err := nav.NavigateTo(input.Path)
		if err != nil {
			return err
		}

		if node.IsDocument() {
			doc = &Document{Path: tree.CanonicalPath(input.Path), Content: node.Content}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if doc != nil {
		return doc, nil
	}

	return ctrl.sess.Status()
}

func (ctrl *adminController) up(c *gin.Context) (interface{}, error) {
	ctrl.sess.Do(func(nav *session.Navigator) error {
		nav.NavigateUp()
		return nil
	})

	return ctrl.sess.Status()
}

func (ctrl *adminController) selectEntry(c *gin.Context) (interface{}, error) {
	var input struct {
		Name string `form:"name" json:"name" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	if err := ctrl.sess.Do(func(nav *session.Navigator) error {
		return nav.Select(input.Name)
	}); err != nil {
		return nil, err
	}

	return ctrl.sess.Status()
}

func (ctrl *adminController) createFolder(c *gin.Context) (interface{}, error) {
	return ctrl.create(c, tree.KindDirectory)
}

func (ctrl *adminController) createFile(c *gin.Context) (interface{}, error) {
	return ctrl.create(c, tree.KindDocument)
}

func (ctrl *adminController) create(c *gin.Context, kind tree.Kind) (interface{}, error) {
	var input struct {
		Name string `form:"name" json:"name" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	var entry tree.Entry
	err := ctrl.sess.Do(func(nav *session.Navigator) error {
		node, err := nav.CreateChild(input.Name, kind)
		if err != nil {
			return err
		}

		entry = tree.Entry{
			Name: node.Name,
			Kind: node.Kind,
			Path: tree.JoinPath(nav.CurrentPath(), node.Name),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (ctrl *adminController) deleteSelected(c *gin.Context) (interface{}, error) {
	if err := ctrl.sess.Do(func(nav *session.Navigator) error {
		return nav.Delete()
	}); err != nil {
		return nil, err
	}

	return ctrl.sess.Status()
}

func (ctrl *adminController) move(c *gin.Context) (interface{}, error) {
	var input struct {
		Direction string `form:"direction" json:"direction" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	direction, err := tree.ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}

	if err := ctrl.sess.Do(func(nav *session.Navigator) error {
		return nav.Reorder(direction)
	}); err != nil {
		return nil, err
	}

	return ctrl.sess.Status()
}

func (ctrl *adminController) getContent(c *gin.Context) (interface{}, error) {
	var input struct {
		Path string `form:"path" json:"path" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	var doc *Document
	err := ctrl.sess.Do(func(nav *session.Navigator) error {
		node, err := nav.Store().Resolve(input.Path)
		if err != nil {
			return err
		}

		if !node.IsDocument() {
			return tree.ErrWrongKind
		}

		doc = &Document{Path: tree.CanonicalPath(input.Path), Content: node.Content}
		return nil
	})

	return doc, err
}

func (ctrl *adminController) setContent(c *gin.Context) (interface{}, error) {
	var input struct {
		Path    string `form:"path" json:"path" binding:"required"`
		Content string `form:"content" json:"content"`
	}

	if err := c.ShouldBind(&input); err != nil {
		return nil, err
	}

	err := ctrl.sess.Do(func(nav *session.Navigator) error {
		return nav.Store().SetContent(input.Path, input.Content)
	})

	return nil, err
}

func (ctrl *adminController) publish(c *gin.Context) (interface{}, error) {
	return ctrl.sess.Publish(c.Request.Context())
}

func (ctrl *adminController) reload(c *gin.Context) (interface{}, error) {
	if err := ctrl.sess.Reload(c.Request.Context()); err != nil {
		return nil, ErrLoadFailed.WithData(err.Error())
	}

	return ctrl.sess.Status()
}

func (ctrl *adminController) changes(c *gin.Context) (interface{}, error) {
	return ctrl.sess.Changes()
}
