package rpc

import (
	"context"

	"github.com/openweb3/go-rpc-provider/interfaces"
	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
	"github.com/pkg/errors"
)

// Client is a JSON-RPC connection to a remote publishing endpoint. Middlewares such as request
// logging are hooked on the embedded provider.
type Client struct {
	*providers.MiddlewarableProvider
	url string
}

func NewClient(url string, option ...providers.Option) (*Client, error) {
	var opt providers.Option
	if len(option) > 0 {
		opt = option[0]
	}

	provider, err := providers.NewProviderWithOption(url, opt)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to dial %v", url)
	}

	return &Client{providers.NewMiddlewarableProvider(provider), url}, nil
}

func (c *Client) URL() string {
	return c.url
}

// CallContext invokes method and decodes its result into a T.
func CallContext[T any](provider interfaces.Provider, ctx context.Context, method string, args ...any) (result T, err error) {
	err = provider.CallContext(ctx, &result, method, args...)
	return
}
