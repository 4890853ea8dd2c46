package source

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

// instances polled when the mastodon_instances setting is empty
var defaultInstances = []string{"mastodon.social", "fosstodon.org", "techhub.social"}

var mastodonRules = []FieldRule{
	{Path: "id", Field: FieldPostID},
	{Path: "content", Field: FieldContent},
	{Path: "account.acct", Field: FieldAuthor},
	{Path: "account.username", Field: FieldAuthor},
	{Path: "url", Field: FieldURL},
	{Path: "uri", Field: FieldURL},
}

var strictPolicy = bluemonday.StrictPolicy()

// MastodonAdapter reads the public timeline of each configured instance
type MastodonAdapter struct {
	scheme string
	http   *httpClient
	norm   *Normalizer
}

// newMastodonAdapter makes a mastodon adapter
func newMastodonAdapter(cfg config.SourcesConfig, client *httpClient, norm *Normalizer) *MastodonAdapter {
	scheme := cfg.Mastodon.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return &MastodonAdapter{scheme: scheme, http: client, norm: norm}
}

// Name returns the source label
func (m *MastodonAdapter) Name() string { return "public_api" }

// Platform returns the platform tag
func (m *MastodonAdapter) Platform() string { return domain.PlatformMastodon }

// Fetch collects public statuses from every instance. Instances that refuse
// anonymous access, answer with non-2xx or cannot be reached are skipped.
func (m *MastodonAdapter) Fetch(ctx context.Context, req Request) ([]domain.RawPost, error) {
	instances := req.Instances
	if len(instances) == 0 {
		instances = defaultInstances
	}

	var res []domain.RawPost
	for _, instance := range instances {
		posts, err := m.fetchInstance(ctx, instance, req.Limit)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			lgr.Printf("[WARN] skipping mastodon instance %s: %v", instance, err)
			continue
		}
		res = append(res, posts...)
	}
	return res, nil
}

func (m *MastodonAdapter) fetchInstance(ctx context.Context, instance string, limit int) ([]domain.RawPost, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit, 40)))
	params.Set("local", "false")
	u := fmt.Sprintf("%s://%s/api/v1/timelines/public?%s", m.scheme, instance, params.Encode())

	var statuses []map[string]any
	if err := m.http.getJSON(ctx, u, nil, &statuses); err != nil {
		return nil, err
	}

	res := make([]domain.RawPost, 0, len(statuses))
	for _, status := range statuses {
		if c, ok := status["content"].(string); ok {
			status["content"] = stripHTML(c)
		}
		post := m.norm.Map(status, domain.PlatformMastodon, mastodonRules)
		if post.Author != "" {
			post.Author += "@" + instance
		}
		post.Score = toInt(lookup(status, "favourites_count")) + toInt(lookup(status, "reblogs_count"))
		post.Group = instance
		res = append(res, post)
	}
	return res, nil
}

// stripHTML turns an HTML fragment into plain text with collapsed whitespace
func stripHTML(s string) string {
	if !strings.Contains(s, "<") && !strings.Contains(s, "&") {
		return strings.TrimSpace(s)
	}
	// pad tags so adjacent block elements don't glue words together
	text := strictPolicy.Sanitize(strings.ReplaceAll(s, "<", " <"))
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}
