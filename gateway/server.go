package gateway

import (
	"github.com/ckhero/content-tree/common/api"
	"github.com/ckhero/content-tree/common/rpc"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config configures the content gateway.
type Config struct {
	Endpoint       string   // listen address
	DataFile       string   // viewer data module on disk
	RPCEnabled     bool     // serve JSON-RPC at "/"
	OriginsAllowed []string // CORS origins, all if empty
}

// MustServe serves the content gateway, which persists published content as the viewer data
// module.
func MustServe(config Config) {
	factory, err := Routes(config)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create gateway routes")
	}

	logrus.WithFields(logrus.Fields{
		"file": config.DataFile,
		"rpc":  config.RPCEnabled,
	}).Info("Content gateway configured")

	api.MustServe(config.Endpoint, factory, api.RouterOption{
		OriginsAllowed: config.OriginsAllowed,
	})
}

// Routes creates the gateway routes.
func Routes(config Config) (api.RouteFactory, error) {
	repo := NewRepository(config.DataFile)
	ctrl := &contentController{repo}

	var rpcHandler gin.HandlerFunc
	if config.RPCEnabled {
		handler, err := rpc.NewHandler(map[string]interface{}{
			"content": NewContentApi(repo),
		}, config.OriginsAllowed...)
		if err != nil {
			return nil, err
		}
		rpcHandler = gin.WrapH(handler)
	}

	return func(router *gin.Engine) {
		router.POST("/publish", api.Wrap(ctrl.publishContent))
		router.GET("/content-data.js", ctrl.getModule)
		router.GET("/tree", api.Wrap(ctrl.getTree))

		if rpcHandler != nil {
			router.POST("/", rpcHandler)
		}
	}, nil
}
