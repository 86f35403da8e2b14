package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrInvalidBaseURL is returned when the base URL is not absolute.
var ErrInvalidBaseURL = errors.New("base URL must be absolute")

// Request is a single call against a JSON API.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is resolved against the transport's base URL.
	Path string
	// Query holds the query string parameters.
	Query url.Values
	// Body is the JSON payload, nil for none.
	Body []byte
}

// Response is the raw outcome of a Request that reached the server.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the full response body.
	Body []byte
}

// Failed reports whether the server answered with an error status.
func (r *Response) Failed() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Transport sends Requests to one base URL. An error from Do means no
// response was obtained; error statuses are returned as Responses.
type Transport struct {
	client  *http.Client
	baseURL *url.URL
}

// NewTransport creates a Transport rooted at baseURL.
func NewTransport(baseURL string, client *http.Client) (*Transport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	return &Transport{client: client, baseURL: u}, nil
}

// Do performs req and reads the whole response body.
func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	target := t.baseURL.ResolveReference(&url.URL{Path: req.Path})
	target.RawQuery = req.Query.Encode()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
