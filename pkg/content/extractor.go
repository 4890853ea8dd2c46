package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"

	"github.com/Clapiton/socials/pkg/config"
)

// HTTPExtractor pulls readable article text from a linked page with trafilatura.
// Used to give link-only posts something the pre-filter and classifier can read.
type HTTPExtractor struct {
	cfg    config.ExtractionConfig
	client *http.Client
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(cfg config.ExtractionConfig) *HTTPExtractor {
	return &HTTPExtractor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Extract retrieves the page at urlStr and returns its main text.
// Text shorter than the configured minimum is reported as an error.
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	// validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	// create request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// set user agent
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	addBrowserHeaders(req)

	// fetch content
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// configure trafilatura options
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	// extract content
	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	// get main content
	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	if n := utf8.RuneCountInString(text); n < e.cfg.MinTextLength {
		return "", fmt.Errorf("extracted text too short (%d chars) from %s", n, urlStr)
	}
	return text, nil
}
