package rpc

import (
	"net/http"

	"github.com/ethereum/go-ethereum/node"
	"github.com/openweb3/go-rpc-provider"
	"github.com/pkg/errors"
)

// NewHandler creates a http.Handler serving the specified RPC apis, keyed by namespace.
func NewHandler(apis map[string]interface{}, origins ...string) (http.Handler, error) {
	handler := rpc.NewServer()

	for namespace, impl := range apis {
		if err := handler.RegisterName(namespace, impl); err != nil {
			return nil, errors.WithMessagef(err, "failed to register rpc service %s", namespace)
		}
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// enable cors
	return node.NewHTTPHandlerStack(handler, origins, []string{"*"}, []byte{}), nil
}
