// Package upstream talks to the Park API that owns products, tasks and docs.
package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Park API endpoints aggregated by the stats handler
const (
	ProductsEndpoint = "/products"
	TasksEndpoint    = "/tasks"
	DocsEndpoint     = "/docs"
)

// ClientConfig holds configuration for the upstream client
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client fetches raw JSON documents from the Park API
type Client struct {
	http *resty.Client
}

// NewClient creates a new upstream client. Every request carries the bearer
// token and a JSON content type.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthScheme("Bearer").
		SetAuthToken(cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetLogger(logrus.StandardLogger())

	return &Client{http: httpClient}
}

// Fetch issues a GET against endpoint and returns the response body.
// Transport failures, non-2xx responses and bodies that are not valid JSON
// are all reported as *Error.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, NewError(endpoint, 0, fmt.Errorf("%w: %w", ErrRequestFailed, err))
	}

	if !resp.IsSuccess() {
		return nil, NewError(endpoint, resp.StatusCode(), ErrUnexpectedStatus)
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, NewError(endpoint, resp.StatusCode(), ErrInvalidJSON)
	}

	return body, nil
}
