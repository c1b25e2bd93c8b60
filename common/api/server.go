package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouteFactory registers the routes of a service on router.
type RouteFactory func(router *gin.Engine)

// RouterOption tunes the middlewares installed by NewRouter.
type RouterOption struct {
	RecoveryDisabled bool     // do not recover from panics in handlers
	LoggerForced     bool     // log requests even when debug logging is off
	OriginsAllowed   []string // CORS origins, empty allows any origin
}

// MustServe is like Serve, but exits the process if the server fails for any other reason than
// being closed.
func MustServe(endpoint string, factory RouteFactory, option ...RouterOption) {
	if err := Serve(endpoint, factory, option...); err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("Failed to serve API")
	}
}

// Serve listens on endpoint and blocks until the server stops.
func Serve(endpoint string, factory RouteFactory, option ...RouterOption) error {
	router := NewRouter(factory, option...)

	server := http.Server{
		Addr:    endpoint,
		Handler: router,
	}

	logrus.WithField("endpoint", endpoint).Info("API server started")

	return server.ListenAndServe()
}

// NewRouter creates the gin engine with the common middlewares and the routes built by factory.
func NewRouter(factory RouteFactory, option ...RouterOption) *gin.Engine {
	var opt RouterOption
	if len(option) > 0 {
		opt = option[0]
	}

	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	if !opt.RecoveryDisabled {
		router.Use(gin.Recovery())
	}

	router.Use(newCorsMiddleware(opt.OriginsAllowed))

	if opt.LoggerForced || logrus.IsLevelEnabled(logrus.DebugLevel) {
		router.Use(gin.Logger())
	}

	factory(router)

	return router
}

func newCorsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowMethods = append(conf.AllowMethods, "OPTIONS")
	conf.AllowHeaders = append(conf.AllowHeaders, "*")

	if len(origins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}

	return cors.New(conf)
}
