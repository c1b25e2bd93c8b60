package publish

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// RequestIDHeader carries the id generated for every publish request.
const RequestIDHeader = "X-Request-Id"

// ContentField is the single field sent to the persistence endpoint.
const ContentField = "content"

// Publisher overwrites the persisted representation with serialized tree text.
type Publisher interface {
	Publish(ctx context.Context, content string) (*Result, error)
}

// Loader reads the persisted representation.
type Loader interface {
	Load(ctx context.Context) (string, error)
}

// Receipt is returned by the content gateway for a successful publish.
type Receipt struct {
	Message  string `json:"message"`
	Revision string `json:"revision"`
	Size     int    `json:"size"`
}

// Result describes a successful publish.
type Result struct {
	Message   string `json:"message"`
	Revision  string `json:"revision"` // revision reported by the gateway, if any
	RequestID string `json:"requestId,omitempty"`
}

// TransportError reports a failed publish or load round trip. The in-memory tree is never changed by
// a failed publish, so the operation can be retried.
type TransportError struct {
	Endpoint   string
	StatusCode int    // http status code, 0 if no response was received
	Message    string // message replied by the server, if any
	Err        error  // underlying error, if any
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("transport failure: %s", e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status: %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += fmt.Sprintf(", message: %s", e.Message)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(", error: %v", e.Err)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether any error in err's chain is a *TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
