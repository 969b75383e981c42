package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/domain/product"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// maxBodySize caps upstream response bodies.
const maxBodySize = 4 << 20

// StatusError reports an unexpected upstream status.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client calls the external product catalog API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	metrics *Metrics
	logger  *logrus.Logger
}

var _ ports.ProductCatalog = (*Client)(nil)

// NewClient creates a catalog client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, metrics *Metrics, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, page int) (*product.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	var out product.Page
	if err := c.get(ctx, "list", "/product/?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var out product.Product
	if err := c.get(ctx, "show", "/product/"+url.PathEscape(id)+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, op, path string, target any) error {
	start := time.Now()
	status, err := c.do(ctx, op, path, target)
	c.metrics.observe(op, status, time.Since(start))

	if err != nil && c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"operation": op,
			"path":      path,
			"status":    status,
		}).WithError(err).Debug("catalog request failed")
	}
	return err
}

// do returns the upstream status code, or 0 when no response was received.
func (c *Client) do(ctx context.Context, op, path string, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, product.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
