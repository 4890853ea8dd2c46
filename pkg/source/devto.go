package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

const defaultDevToURL = "https://dev.to/api/articles"

var devToRules = []FieldRule{
	{Path: "id", Field: FieldPostID},
	{Path: "title", Field: FieldTitle},
	{Path: "description", Field: FieldContent},
	{Path: "user.username", Field: FieldAuthor},
	{Path: "user.name", Field: FieldAuthor},
	{Path: "url", Field: FieldURL},
	{Path: "public_reactions_count", Field: FieldScore},
}

// DevToAdapter reads rising articles from the public dev.to API
type DevToAdapter struct {
	url  string
	http *httpClient
	norm *Normalizer
}

// newDevToAdapter makes a dev.to adapter
func newDevToAdapter(cfg config.SourcesConfig, client *httpClient, norm *Normalizer) *DevToAdapter {
	u := cfg.DevTo.URL
	if u == "" {
		u = defaultDevToURL
	}
	return &DevToAdapter{url: u, http: client, norm: norm}
}

// Name returns the source label
func (d *DevToAdapter) Name() string { return "public_api" }

// Platform returns the platform tag
func (d *DevToAdapter) Platform() string { return domain.PlatformDevTo }

// Fetch pulls one page of rising articles, at most 30
func (d *DevToAdapter) Fetch(ctx context.Context, req Request) ([]domain.RawPost, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(clampLimit(req.Limit, 30)))
	params.Set("state", "rising")

	var articles []map[string]any
	if err := d.http.getJSON(ctx, d.url+"?"+params.Encode(), nil, &articles); err != nil {
		return nil, err
	}

	res := make([]domain.RawPost, 0, len(articles))
	for _, article := range articles {
		post := d.norm.Map(article, domain.PlatformDevTo, devToRules)
		post.Group = strings.Join(head(tagList(article["tag_list"]), 3), ", ")
		res = append(res, post)
	}
	return res, nil
}

// tagList accepts both the array and the comma separated string forms of tag_list
func tagList(v any) []string {
	switch val := v.(type) {
	case []any:
		res := make([]string, 0, len(val))
		for _, t := range val {
			if s := strings.TrimSpace(toText(t)); s != "" {
				res = append(res, s)
			}
		}
		return res
	case string:
		return domain.SplitList(val)
	}
	return nil
}
