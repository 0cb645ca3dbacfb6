package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/metabake/metabake/pkg/errors"
)

// DefaultTimeout bounds every forge request. The pipeline has no cancellation
// story beyond the process signal context, so an unbounded call could hang a
// run indefinitely.
const DefaultTimeout = 30 * time.Second

// Client provides shared HTTP functionality for forge API clients.
// It applies default headers to every request and maps response status
// codes onto the structured error taxonomy.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given timeout and default headers.
// A non-positive timeout falls back to [DefaultTimeout]. Pass nil for
// headers if no default headers are needed. Redirects are followed by
// the underlying http.Client.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
// A non-success status aborts with a NETWORK_ERROR (404 maps to NOT_FOUND).
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "decode response from %s", url)
	}
	return nil
}

// GetBytes performs an HTTP GET request and returns the raw response body.
// Used for archive downloads and other non-JSON endpoints.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read response from %s", url)
	}
	return data, nil
}

// StatusCode performs an HTTP GET request and returns the observed status
// code without mapping it to an error. The response body is discarded.
// Transport-level failures still return a NETWORK_ERROR.
func (c *Client) StatusCode(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", url)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", url)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)
	}

	if err := checkStatus(url, resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s returned status 404", url)
	default:
		return errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, code)
	}
}

// StatusText formats a status code the way pipeline errors report it.
func StatusText(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}
