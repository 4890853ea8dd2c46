package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

const defaultHackerNewsURL = "https://hn.algolia.com/api/v1/search_by_date"

// Extractor pulls readable text from a linked article
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

var hackerNewsRules = []FieldRule{
	{Path: "objectID", Field: FieldPostID},
	{Path: "title", Field: FieldTitle},
	{Path: "comment_text", Field: FieldContent},
	{Path: "story_text", Field: FieldContent},
	{Path: "author", Field: FieldAuthor},
	{Path: "url", Field: FieldURL},
	{Path: "points", Field: FieldScore},
}

// HackerNewsAdapter searches stories and comments through the Algolia API
type HackerNewsAdapter struct {
	cfg       config.HackerNewsConfig
	http      *httpClient
	norm      *Normalizer
	extractor Extractor // optional, fills link-only stories
}

// newHackerNewsAdapter makes a hacker news adapter, extractor may be nil
func newHackerNewsAdapter(cfg config.HackerNewsConfig, client *httpClient, norm *Normalizer, extractor Extractor) *HackerNewsAdapter {
	if cfg.URL == "" {
		cfg.URL = defaultHackerNewsURL
	}
	return &HackerNewsAdapter{cfg: cfg, http: client, norm: norm, extractor: extractor}
}

// Name returns the source label
func (h *HackerNewsAdapter) Name() string { return "algolia" }

// Platform returns the platform tag
func (h *HackerNewsAdapter) Platform() string { return domain.PlatformHackerNews }

// Fetch runs one search by date for the first ten keywords
func (h *HackerNewsAdapter) Fetch(ctx context.Context, req Request) ([]domain.RawPost, error) {
	quoted := make([]string, 0, 10)
	for _, kw := range head(req.Keywords, 10) {
		quoted = append(quoted, `"`+kw+`"`)
	}

	params := url.Values{}
	params.Set("query", strings.Join(quoted, " OR "))
	params.Set("hitsPerPage", strconv.Itoa(clampLimit(req.Limit, 100)))
	if h.cfg.SearchType == "story" || h.cfg.SearchType == "comment" {
		params.Set("tags", h.cfg.SearchType)
	}

	var resp struct {
		Hits []map[string]any `json:"hits"`
	}
	if err := h.http.getJSON(ctx, h.cfg.URL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	res := make([]domain.RawPost, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		post := h.norm.Map(hit, domain.PlatformHackerNews, hackerNewsRules)
		post.Content = stripHTML(post.Content)
		if post.URL == "" {
			post.URL = "https://news.ycombinator.com/item?id=" + post.PostID
		} else if post.Content == "" && h.extractor != nil {
			h.enrich(ctx, &post)
		}
		if post.Content == "" {
			post.Content = post.Title
		}
		res = append(res, post)
	}
	return res, nil
}

// enrich replaces empty content of a link-only story with the linked article text
func (h *HackerNewsAdapter) enrich(ctx context.Context, post *domain.RawPost) {
	text, err := h.extractor.Extract(ctx, post.URL)
	if err != nil {
		lgr.Printf("[DEBUG] no article text for hn %s: %v", post.PostID, err)
		return
	}
	post.Content = truncate(text, maxContentLen)
}

// clampLimit bounds a requested page size to [1, upper], zero means upper
func clampLimit(limit, upper int) int {
	if limit <= 0 || limit > upper {
		return upper
	}
	return limit
}
