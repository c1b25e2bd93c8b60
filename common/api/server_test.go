package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckhero/content-tree/common/api"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(option ...api.RouterOption) *gin.Engine {
	return api.NewRouter(func(router *gin.Engine) {
		router.GET("/ok", api.Wrap(func(c *gin.Context) (interface{}, error) {
			return "pong", nil
		}))
		router.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})
	}, option...)
}

func TestNewRouterRecovery(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	router = newTestRouter(api.RouterOption{RecoveryDisabled: true})
	assert.Panics(t, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
}

func TestNewRouterCors(t *testing.T) {
	request := func(router *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// any origin by default
	w := request(newTestRouter(), "http://viewer.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	router := newTestRouter(api.RouterOption{OriginsAllowed: []string{"http://viewer.example"}})

	w = request(router, "http://viewer.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://viewer.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(router, "http://elsewhere.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
