package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBody = 4 << 20

// Failure is returned for transport errors and non-2xx responses.
type Failure struct {
	URL    string
	Status int // zero when no response was received
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("fetch %s: http %d: %v", f.URL, f.Status, f.Err)
	}
	return fmt.Sprintf("fetch %s: %v", f.URL, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fetcher is what skills use to reach third-party services.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchJSON(ctx context.Context, url string, out any) error
	PostJSON(ctx context.Context, url string, headers map[string]string, body any) error
}

var _ Fetcher = (*Client)(nil)

type Client struct {
	client    *http.Client
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) FetchJSON(ctx context.Context, url string, out any) error {
	body, err := c.do(ctx, http.MethodGet, url, map[string]string{"Accept": "application/json"}, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Failure{URL: url, Err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	_, err = c.do(ctx, http.MethodPost, url, h, bytes.NewReader(data))
	return err
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &Failure{URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Failure{URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &Failure{URL: url, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Failure{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("%s", truncate(data))}
	}
	return data, nil
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
