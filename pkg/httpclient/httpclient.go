package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 10 * time.Second

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
}

type HttpResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Client struct {
	httpClient *http.Client
}

// CreateHttpClient wraps client, or a traced client with a 10s timeout when
// client is nil.
func CreateHttpClient(client *http.Client) *Client {
	if client == nil {
		client = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{httpClient: client}
}

// SendRequest sends an HTTP request based on the given HttpRequest struct
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) (HttpResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewBuffer(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return HttpResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return HttpResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return HttpResponse{StatusCode: response.StatusCode, Header: response.Header}, fmt.Errorf("failed to read response body: %w", err)
	}

	return HttpResponse{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       respBody,
	}, nil
}
