package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

const defaultRedditURL = "https://www.reddit.com"

// RedditAdapter reads the "new" RSS listing of each monitored subreddit
type RedditAdapter struct {
	baseURL string
	http    *httpClient
	norm    *Normalizer
	parser  *gofeed.Parser
}

// newRedditAdapter makes a reddit RSS adapter
func newRedditAdapter(cfg config.SourcesConfig, client *httpClient, norm *Normalizer) *RedditAdapter {
	base := strings.TrimSuffix(cfg.Reddit.URL, "/")
	if base == "" {
		base = defaultRedditURL
	}
	return &RedditAdapter{baseURL: base, http: client, norm: norm, parser: gofeed.NewParser()}
}

// Name returns the source label
func (r *RedditAdapter) Name() string { return "rss" }

// Platform returns the platform tag
func (r *RedditAdapter) Platform() string { return domain.PlatformReddit }

// Fetch pulls up to req.Limit newest posts per subreddit. A failing subreddit is logged and skipped.
func (r *RedditAdapter) Fetch(ctx context.Context, req Request) ([]domain.RawPost, error) {
	if len(req.Subreddits) == 0 {
		lgr.Printf("[WARN] no subreddits configured, nothing to collect from reddit")
		return nil, nil
	}

	var res []domain.RawPost
	for _, sub := range req.Subreddits {
		posts, err := r.fetchSubreddit(ctx, sub, req.Limit)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			lgr.Printf("[WARN] failed to collect r/%s: %v", sub, err)
			continue
		}
		res = append(res, posts...)
	}
	return res, nil
}

func (r *RedditAdapter) fetchSubreddit(ctx context.Context, sub string, limit int) ([]domain.RawPost, error) {
	feedURL := fmt.Sprintf("%s/r/%s/new/.rss", r.baseURL, url.PathEscape(sub))
	if limit > 0 {
		feedURL += fmt.Sprintf("?limit=%d", limit)
	}

	body, err := r.http.get(ctx, feedURL, nil)
	if err != nil {
		return nil, err
	}
	feed, err := r.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	res := make([]domain.RawPost, 0, len(feed.Items))
	for i, item := range feed.Items {
		if limit > 0 && i >= limit {
			break
		}
		post := domain.RawPost{
			Platform: domain.PlatformReddit,
			PostID:   strings.TrimPrefix(item.GUID, "t3_"),
			Title:    item.Title,
			URL:      item.Link,
			Group:    sub,
			Author:   "[deleted]",
		}
		if item.Author != nil && item.Author.Name != "" {
			post.Author = strings.TrimPrefix(item.Author.Name, "/u/")
		}
		html := item.Content
		if html == "" {
			html = item.Description
		}
		post.Content = redditBody(html)
		if post.Content == "" {
			post.Content = post.Title
		}
		res = append(res, r.norm.Finish(post))
	}
	return res, nil
}

// redditBody extracts the self-text from an entry's HTML, dropping the "submitted by" footer
func redditBody(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	md := doc.Find("div.md")
	if md.Length() == 0 {
		return ""
	}
	var parts []string
	md.Children().Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(md.Text()), " ")
	}
	return strings.Join(parts, "\n")
}
