package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
)

const (
	// maxBodyBytes caps how much of a response is read into memory.
	maxBodyBytes = 32 << 20
	// maxErrorBodyBytes caps the body excerpt kept on a TransportError.
	maxErrorBodyBytes = 512
)

// ErrBodyTooLarge is returned when a listing exceeds the client's size cap.
var ErrBodyTooLarge = errors.New("response body too large")

// Client fetches raw incident listings from the intake backend.
type Client struct {
	url          string
	httpClient   *http.Client
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewClient creates a backend client for the listing endpoint at url.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// URL returns the listing endpoint this client reads from.
func (c *Client) URL() string { return c.url }

// Fetch performs one GET of the listing endpoint. Network failures and
// non-2xx statuses are returned as *domain.TransportError.
func (c *Client) Fetch(ctx context.Context) (domain.RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawResponse{}, &domain.TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return domain.RawResponse{}, &domain.TransportError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Body:       string(excerpt),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return domain.RawResponse{}, &domain.TransportError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBodyBytes {
		return domain.RawResponse{}, fmt.Errorf("%w: %s: exceeds %d bytes", ErrBodyTooLarge, c.url, c.maxBodyBytes)
	}

	c.logger.Debug("fetched incident listing",
		"url", c.url,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return domain.RawResponse{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
