// Package aodb is a read-only client for the hosted game item database API.
// It converts wire documents into the internal item model; nothing outside
// this package sees wire types.
package aodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rubika-tools/aocomp/internal/config"
)

// ErrNotFound is returned when the API answers 404 for a requested resource.
var ErrNotFound = errors.New("aodb: not found")

// Client talks to one item database API endpoint.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL     string
	userAgent   string
	timeout     time.Duration
	pageSize    int
	maxParallel int
	client      *fasthttp.Client
	logger      *zap.Logger
}

// NewClient creates a Client from cfg.
//
// Precondition: cfg must have passed config validation; logger must be non-nil.
// Postcondition: Returns a non-nil Client ready for requests.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		timeout:     cfg.Timeout,
		pageSize:    cfg.PageSize,
		maxParallel: cfg.MaxConcurrency,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// doRequest performs a GET against url and decodes the JSON body into T.
// The context deadline bounds the request; without one the configured client
// timeout applies. A 404 answer maps to ErrNotFound.
func doRequest[T any](ctx context.Context, c *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	start := time.Now()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("aodb: GET %s: %w", url, err)
	}
	c.logger.Debug("aodb: request",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("aodb: GET %s: status %d", url, resp.StatusCode())
	}

	result := new(T)
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, fmt.Errorf("aodb: decoding %s: %w", url, err)
	}
	return result, nil
}
