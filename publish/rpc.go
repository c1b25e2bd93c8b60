package publish

import (
	"context"

	"github.com/ckhero/content-tree/common/rpc"
	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
)

// RPCMethod is the JSON-RPC method exposed by the content gateway.
const RPCMethod = "content_publish"

// RPCPublisher publishes through the JSON-RPC endpoint of the content gateway.
type RPCPublisher struct {
	*rpc.Client
}

// NewRPCPublisher creates a publisher connected to the gateway RPC endpoint at url.
func NewRPCPublisher(url string, option ...providers.Option) (*RPCPublisher, error) {
	client, err := rpc.NewClient(url, option...)
	if err != nil {
		return nil, err
	}

	return &RPCPublisher{client}, nil
}

// Publish implements the Publisher interface.
func (p *RPCPublisher) Publish(ctx context.Context, content string) (*Result, error) {
	receipt, err := rpc.CallContext[Receipt](p.MiddlewarableProvider, ctx, RPCMethod, content)
	if err != nil {
		return nil, &TransportError{Endpoint: p.URL(), Message: err.Error(), Err: err}
	}

	return &Result{
		Message:  receipt.Message,
		Revision: receipt.Revision,
	}, nil
}
