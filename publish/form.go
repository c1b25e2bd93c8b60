package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ckhero/content-tree/common"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 1 << 20
)

// HTTPOption configures the http based publisher and loader.
type HTTPOption struct {
	Timeout   time.Duration    // request timeout, 0 for the default
	Client    *http.Client     // custom http client
	LogOption common.LogOption // log option for requests
}

func newHTTPClient(opt HTTPOption) *http.Client {
	if opt.Client != nil {
		return opt.Client
	}

	if opt.Timeout <= 0 {
		opt.Timeout = defaultTimeout
	}

	return &http.Client{Timeout: opt.Timeout}
}

// FormPublisher posts the content as an url encoded form, like the admin page posting to the legacy
// publish.php endpoint. Both the gateway envelope {code, message, data} and the legacy
// {status, message} reply are understood.
type FormPublisher struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

// NewFormPublisher creates a publisher posting to url.
func NewFormPublisher(url string, option ...HTTPOption) *FormPublisher {
	var opt HTTPOption
	if len(option) > 0 {
		opt = option[0]
	}

	return &FormPublisher{
		url:    url,
		client: newHTTPClient(opt),
		logger: common.NewLogger(opt.LogOption),
	}
}

// reply covers both response formats.
type reply struct {
	Code    *int            `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// receipt decodes the data of a successful reply, if any.
func (r *reply) receipt() *Receipt {
	var receipt Receipt
	if err := json.Unmarshal(r.Data, &receipt); err != nil {
		return nil
	}
	return &receipt
}

// message joins the reply message with the error detail carried in data.
func (r *reply) message() string {
	var detail string
	if receipt := r.receipt(); receipt != nil {
		detail = receipt.Message
	} else {
		json.Unmarshal(r.Data, &detail)
	}

	if detail == "" {
		return r.Message
	}
	if r.Message == "" {
		return detail
	}
	return r.Message + ": " + detail
}

func (r *reply) success() bool {
	if r.Code != nil {
		return *r.Code == 0
	}
	return r.Status == "success"
}

// Publish implements the Publisher interface.
func (p *FormPublisher) Publish(ctx context.Context, content string) (*Result, error) {
	form := url.Values{}
	form.Set(ContentField, content)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Endpoint: p.url, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger := p.logger.WithFields(logrus.Fields{
		"url":       p.url,
		"requestId": requestID,
		"size":      len(content),
	})
	logger.Debug("Publishing content")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: p.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Endpoint: p.url, StatusCode: resp.StatusCode, Err: err}
	}

	var r reply
	decodeErr := json.Unmarshal(body, &r)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := r.message()
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &TransportError{Endpoint: p.url, StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, &TransportError{Endpoint: p.url, StatusCode: resp.StatusCode, Message: "malformed response", Err: decodeErr}
	}

	if !r.success() {
		return nil, &TransportError{Endpoint: p.url, StatusCode: resp.StatusCode, Message: r.message()}
	}

	result := &Result{Message: r.Message, RequestID: requestID}
	if receipt := r.receipt(); receipt != nil {
		if receipt.Message != "" {
			result.Message = receipt.Message
		}
		result.Revision = receipt.Revision
	}

	logger.WithField("revision", result.Revision).Debug("Content published")

	return result, nil
}

// HTTPLoader fetches the persisted representation over http, e.g. the data module served to the
// viewer.
type HTTPLoader struct {
	url    string
	client *http.Client
}

// NewHTTPLoader creates a loader reading url.
func NewHTTPLoader(url string, option ...HTTPOption) *HTTPLoader {
	var opt HTTPOption
	if len(option) > 0 {
		opt = option[0]
	}

	return &HTTPLoader{
		url:    url,
		client: newHTTPClient(opt),
	}
}

// Load implements the Loader interface.
func (l *HTTPLoader) Load(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", &TransportError{Endpoint: l.url, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", &TransportError{Endpoint: l.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Endpoint: l.url, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Endpoint: l.url, StatusCode: resp.StatusCode, Err: err}
	}

	return string(body), nil
}
