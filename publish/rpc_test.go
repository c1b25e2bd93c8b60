package publish_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ckhero/content-tree/common/rpc"
	"github.com/ckhero/content-tree/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentApi struct {
	received string
	err      error
}

func (api *fakeContentApi) Publish(ctx context.Context, content string) (*publish.Receipt, error) {
	if api.err != nil {
		return nil, api.err
	}
	api.received = content
	return &publish.Receipt{Message: "ok", Revision: "0x02", Size: len(content)}, nil
}

func newRPCServer(t *testing.T, api *fakeContentApi) *httptest.Server {
	handler, err := rpc.NewHandler(map[string]interface{}{"content": api})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestRPCPublisher(t *testing.T) {
	api := &fakeContentApi{}
	server := newRPCServer(t, api)

	publisher, err := publish.NewRPCPublisher(server.URL)
	require.NoError(t, err)
	defer publisher.Close()

	result, err := publisher.Publish(context.Background(), `{"a": {}}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {}}`, api.received)
	assert.Equal(t, "ok", result.Message)
	assert.Equal(t, "0x02", result.Revision)
}

func TestRPCPublisherFailure(t *testing.T) {
	server := newRPCServer(t, &fakeContentApi{err: errors.New("disk full")})

	publisher, err := publish.NewRPCPublisher(server.URL)
	require.NoError(t, err)
	defer publisher.Close()

	_, err = publisher.Publish(context.Background(), "{}")
	assert.True(t, publish.IsTransportError(err))
	assert.Contains(t, err.Error(), "disk full")
}
