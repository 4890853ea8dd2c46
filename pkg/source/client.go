package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Clapiton/socials/pkg/config"
)

// limit on response bodies read from sources
const maxBodySize = 10 << 20

// StatusError reports a non-2xx response, adapters treat it as a skip
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// httpClient is the rate-limited client shared by the adapters of one registry
type httpClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newHTTPClient(cfg config.SourcesConfig) *httpClient {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &httpClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: cfg.UserAgent,
	}
}

// get fetches url and returns the body, non-2xx responses are returned as *StatusError
func (c *httpClient) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, headers)
}

// getJSON fetches url and decodes the JSON body into dst, numbers are kept as json.Number
func (c *httpClient) getJSON(ctx context.Context, url string, headers map[string]string, dst any) error {
	body, err := c.get(ctx, url, headers)
	if err != nil {
		return err
	}
	return decodeJSON(body, dst)
}

// postJSON sends payload as JSON and decodes the response into dst
func (c *httpClient) postJSON(ctx context.Context, url string, headers map[string]string, payload, dst any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, url, data, headers)
	if err != nil {
		return err
	}
	return decodeJSON(body, dst)
}

func (c *httpClient) do(ctx context.Context, method, url string, payload []byte, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", redactQuery(url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{URL: redactQuery(url), Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", redactQuery(url), err)
	}
	return data, nil
}

func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redactQuery drops the query string so tokens never end up in errors and logs
func redactQuery(url string) string {
	base, _, _ := strings.Cut(url, "?")
	return base
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
