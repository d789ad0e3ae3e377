// Package registry carries SPML requests to the remote subscriber
// registry over SOAP 1.1 and decodes its replies.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hss-gateway/internal/platform/config"
)

// Client posts SOAP envelopes to the registry endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	username   string
	password   string
	logger     *slog.Logger
}

// NewClient builds a Client from registry configuration.
func NewClient(cfg config.RegistryConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.EndpointURL,
		username:   cfg.Username,
		password:   cfg.Password,
		logger:     logger,
	}
}

// Do posts one envelope and returns the raw response body. Only 3xx and
// 4xx statuses are transport failures; any other status returns the
// body so registry-reported errors can be parsed out of it.
func (c *Client) Do(ctx context.Context, envelope string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(envelope))
	if err != nil {
		return "", fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("SOAPAction", `""`)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to registry: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read registry response: %w", err)
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 500 {
		c.logger.ErrorContext(ctx, "registry returned non-success status",
			"status", resp.StatusCode,
			"endpoint", c.endpoint,
		)
		return "", fmt.Errorf("registry status %d", resp.StatusCode)
	}
	return string(body), nil
}
