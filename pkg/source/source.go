// Package source fetches posts from external platforms, normalizes them into
// domain.RawPost and hands them to a deduplicating sink.
package source

import (
	"context"
	"errors"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
)

//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink

// ErrNotConfigured is returned by adapters missing required credentials
var ErrNotConfigured = errors.New("source not configured")

// Request carries per-sweep parameters taken from settings
type Request struct {
	Keywords   []string
	Subreddits []string
	Instances  []string
	Limit      int
}

// Adapter fetches and normalizes posts from one external source
type Adapter interface {
	Name() string     // source label reported in stats, e.g. "apify"
	Platform() string // platform tag stored on posts
	Fetch(ctx context.Context, req Request) ([]domain.RawPost, error)
}

// Sink stores posts, returning nil for duplicates
type Sink interface {
	InsertPost(ctx context.Context, post domain.RawPost) (*domain.RawPost, error)
}

// Collect runs one adapter and feeds keyword-matched posts into sink.
// Fetch failures never escape, they are reported in the returned stats.
func Collect(ctx context.Context, a Adapter, sink Sink, req Request) domain.CollectionStats {
	stats := domain.CollectionStats{Platform: a.Platform(), Source: a.Name()}

	posts, err := a.Fetch(ctx, req)
	if err != nil {
		var se *StatusError
		switch {
		case errors.Is(err, ErrNotConfigured):
			lgr.Printf("[WARN] %s (%s) skipped: %v", stats.Platform, stats.Source, err)
			stats.Skipped = true
			stats.Error = err.Error()
		case errors.As(err, &se):
			lgr.Printf("[WARN] %s (%s) skipped: %v", stats.Platform, stats.Source, err)
			stats.Skipped = true
			stats.Error = err.Error()
		default:
			lgr.Printf("[ERROR] %s (%s) fetch failed: %v", stats.Platform, stats.Source, err)
			stats.Error = err.Error()
		}
		return stats
	}

	stats.Fetched = len(posts)
	for _, post := range posts {
		text := post.Text()
		if strings.TrimSpace(text) == "" || !MatchesKeywords(text, req.Keywords) {
			stats.Filtered++
			continue
		}

		stored, err := sink.InsertPost(ctx, post)
		switch {
		case err != nil:
			lgr.Printf("[WARN] failed to store %s post %s: %v", post.Platform, post.PostID, err)
			stats.Errors++
		case stored == nil:
			stats.Duplicates++
		default:
			stats.Inserted++
		}
	}

	lgr.Printf("[INFO] %s (%s): %d fetched, %d inserted, %d duplicates, %d filtered, %d errors",
		stats.Platform, stats.Source, stats.Fetched, stats.Inserted, stats.Duplicates, stats.Filtered, stats.Errors)
	return stats
}

// MatchesKeywords reports whether text contains any keyword, case-insensitive.
// An empty keyword set matches everything.
func MatchesKeywords(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
