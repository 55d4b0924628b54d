package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTP fetches raw form definition text from a remote endpoint, for
// deployments where forms live as wiki pages served over the action API's
// raw mode.
type HTTP struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// HTTPOption adjusts an HTTP provider.
type HTTPOption func(*HTTP)

// WithHTTPClient supplies the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTP) {
		if client != nil {
			p.client = client
		}
	}
}

// WithHTTPTimeout caps the duration of a single fetch.
func WithHTTPTimeout(timeout time.Duration) HTTPOption {
	return func(p *HTTP) {
		p.timeout = timeout
	}
}

// NewHTTP builds a provider fetching from baseURL + the escaped form name.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	p := &HTTP{
		client:  &http.Client{},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetForm implements Provider. A 404 from the remote maps to ErrNotFound.
func (p *HTTP) GetForm(ctx context.Context, name string) (string, error) {
	if p.baseURL == "" {
		return "", errors.New("provider: base url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.baseURL+url.PathEscape(name), nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
