// Package remote implements the HTTP client for the hosted JSON bin that
// holds the storefront document.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/maktabat-alamal/storefront/internal/models"
)

// ErrUnavailable wraps every transport error, timeout and non-2xx response.
// Callers only need to know "the remote store cannot serve us right now".
var ErrUnavailable = errors.New("remote store unavailable")

const (
	defaultTimeout = 10 * time.Second
	masterKeyHdr   = "X-Master-Key"
)

// Client talks to the bin API: GET /b/{id}/latest, PUT /b/{id}, POST /b.
type Client struct {
	baseURL *url.URL
	binID   string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client for the given base URL (e.g.
// "https://api.jsonbin.io/v3") and bin id. A zero timeout gets a sane default.
func NewClient(base, binID, apiKey string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q missing scheme or host", base)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: u,
		binID:   binID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// fetchResponse matches the bin API read envelope.
type fetchResponse struct {
	Record *models.Document `json:"record"`
}

// Fetch reads the latest revision of the document.
func (c *Client) Fetch(ctx context.Context) (*models.Document, error) {
	var payload fetchResponse
	if err := c.do(ctx, http.MethodGet, "/b/"+c.binID+"/latest", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Record == nil {
		return nil, fmt.Errorf("%w: empty record", ErrUnavailable)
	}
	return payload.Record, nil
}

// Replace overwrites the whole document.
func (c *Client) Replace(ctx context.Context, doc *models.Document) error {
	return c.do(ctx, http.MethodPut, "/b/"+c.binID, doc, nil)
}

// Create writes the initial document into a fresh bin. Replaying it with the
// same payload is harmless; the bin API treats creation as a plain write.
func (c *Client) Create(ctx context.Context, doc *models.Document) error {
	return c.do(ctx, http.MethodPost, "/b", doc, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	// join onto the base path; the hosted API lives under a version prefix
	// (e.g. /v3) that must survive
	reqURL := c.baseURL.JoinPath(path)

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if c.apiKey != "" {
		req.Header.Set(masterKeyHdr, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned status %d", ErrUnavailable, method, reqURL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
