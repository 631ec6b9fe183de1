// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package sequenceclient uploads sequence record batches to the data entry API.
package sequenceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardinalhq/dataentry/internal/sequence"
)

const (
	DefaultTimeout   = 5 * time.Minute
	MaxResponseSize  = 256 * 1024 * 1024 // 256 MB
	maxErrorBodySize = 64 * 1024

	requestIDHeader = "X-Request-Id"
)

// UploadError is returned when the API answers with a non-2xx status.
type UploadError struct {
	StatusCode int
	Status     string
	Body       string
	RequestID  string
}

func (e *UploadError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("upload rejected with status %s", e.Status)
	}
	return fmt.Sprintf("upload rejected with status %s: %s", e.Status, body)
}

// Client posts sequence batches to <base>/api/sequence.
type Client struct {
	endpoint    *url.URL
	httpClient  *http.Client
	credentials Credentials
	userAgent   string
	logger      *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds a single upload round trip. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.credentials = creds }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the API rooted at baseURL, which must be an
// absolute http or https URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme %q", baseURL, base.Scheme)
	}

	c := &Client{
		endpoint:   base.JoinPath("api", "sequence"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "de",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL a batch with opts is posted to, without
// credentials.
func (c *Client) Endpoint(opts sequence.UploadOptions) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("dryRun", strconv.FormatBool(opts.DryRun))
	q.Set("truncate", strconv.FormatBool(opts.Truncate))
	if opts.StopOnError {
		q.Set("stopOnError", "true")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Upload sends records as a single JSON array and returns the per-record
// reports in the order the server produced them.
func (c *Client) Upload(ctx context.Context, records []sequence.Record, opts sequence.UploadOptions) ([]sequence.Report, error) {
	if records == nil {
		records = []sequence.Record{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(opts), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if c.credentials != nil {
		c.credentials.Apply(req)
	}

	c.logger.Debug("Posting sequence batch",
		slog.String("requestID", requestID),
		slog.Int("records", len(records)),
		slog.Int("bytes", len(body)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post sequences: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Received response",
		slog.String("requestID", requestID),
		slog.String("status", resp.Status),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &UploadError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
			RequestID:  requestID,
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return []sequence.Report{}, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	// An empty 2xx body carries no reports.
	if len(bytes.TrimSpace(data)) == 0 {
		return []sequence.Report{}, nil
	}

	var reports []sequence.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return reports, nil
}
