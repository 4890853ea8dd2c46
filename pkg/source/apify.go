package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

// Actor describes one Apify scraper: how to start it and how to map its dataset items
type Actor struct {
	Platform string
	ActorID  string
	Rules    []FieldRule
	Input    func(req Request) map[string]any
}

// subreddits used by the reddit actor when none are configured
var defaultActorSubreddits = []string{"freelance", "webdev"}

// ApifyActors lists the supported actors in collection order
var ApifyActors = []Actor{
	{
		Platform: domain.PlatformReddit,
		ActorID:  "trudax~reddit-scraper",
		Rules: []FieldRule{
			{Path: "id", Field: FieldPostID},
			{Path: "title", Field: FieldTitle},
			{Path: "body", Field: FieldContent},
			{Path: "username", Field: FieldAuthor},
			{Path: "url", Field: FieldURL},
			{Path: "upVotes", Field: FieldScore},
			{Path: "parsedCommunityName", Field: FieldGroup},
		},
		Input: func(req Request) map[string]any {
			subs := req.Subreddits
			if len(subs) == 0 {
				subs = defaultActorSubreddits
			}
			startURLs := make([]map[string]string, 0, len(subs))
			for _, sub := range subs {
				startURLs = append(startURLs, map[string]string{"url": "https://www.reddit.com/r/" + sub + "/new/"})
			}
			return map[string]any{"startUrls": startURLs, "maxItems": req.Limit * len(subs), "sort": "New", "type": "posts"}
		},
	},
	{
		Platform: domain.PlatformTwitter,
		ActorID:  "apidojo~tweet-scraper",
		Rules: []FieldRule{
			{Path: "id", Field: FieldPostID},
			{Path: "text", Field: FieldContent},
			{Path: "author.userName", Field: FieldAuthor},
			{Path: "url", Field: FieldURL},
			{Path: "likeCount", Field: FieldScore},
		},
		Input: func(req Request) map[string]any {
			return map[string]any{"searchTerms": head(req.Keywords, 5), "maxItems": req.Limit, "sort": "Latest"}
		},
	},
	{
		Platform: domain.PlatformFacebook,
		ActorID:  "apify~facebook-posts-scraper",
		Rules: []FieldRule{
			{Path: "postId", Field: FieldPostID},
			{Path: "text", Field: FieldContent},
			{Path: "pageName", Field: FieldAuthor},
			{Path: "url", Field: FieldURL},
			{Path: "likes", Field: FieldScore},
		},
		// the actor takes page urls only, keyword search urls stand in for discovery
		Input: func(req Request) map[string]any {
			kws := head(req.Keywords, 3)
			startURLs := make([]map[string]string, 0, len(kws))
			for _, kw := range kws {
				startURLs = append(startURLs, map[string]string{"url": "https://www.facebook.com/search/posts/?q=" + url.QueryEscape(kw)})
			}
			return map[string]any{"startUrls": startURLs, "maxPosts": req.Limit, "maxPostComments": 0}
		},
	},
}

// ApifyAdapter runs one Apify actor, waits for it and maps its dataset
type ApifyAdapter struct {
	actor Actor
	cfg   config.ApifyConfig
	http  *httpClient
	norm  *Normalizer
	sleep SleepFunc
}

// newApifyAdapter makes an adapter for actor
func newApifyAdapter(actor Actor, cfg config.ApifyConfig, client *httpClient, norm *Normalizer, sleep SleepFunc) *ApifyAdapter {
	if sleep == nil {
		sleep = sleepCtx
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &ApifyAdapter{actor: actor, cfg: cfg, http: client, norm: norm, sleep: sleep}
}

// Name returns the source label
func (a *ApifyAdapter) Name() string { return "apify" }

// Platform returns the platform tag
func (a *ApifyAdapter) Platform() string { return a.actor.Platform }

type apifyRun struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

// Fetch starts the actor, polls until it finishes and maps the dataset items
func (a *ApifyAdapter) Fetch(ctx context.Context, req Request) ([]domain.RawPost, error) {
	if a.cfg.Token == "" {
		return nil, fmt.Errorf("apify token is empty: %w", ErrNotConfigured)
	}

	items, err := a.run(ctx, a.actor.Input(req))
	if err != nil {
		return nil, fmt.Errorf("actor %s: %w", a.actor.ActorID, err)
	}

	res := make([]domain.RawPost, 0, len(items))
	for _, item := range items {
		res = append(res, a.norm.Map(item, a.actor.Platform, a.actor.Rules))
	}
	return res, nil
}

func (a *ApifyAdapter) run(ctx context.Context, input map[string]any) ([]map[string]any, error) {
	headers := map[string]string{"Authorization": "Bearer " + a.cfg.Token}
	timeoutSecs := int(a.cfg.ActorTimeout / time.Second)

	lgr.Printf("[INFO] starting apify actor %s", a.actor.ActorID)
	var run apifyRun
	startURL := fmt.Sprintf("%s/acts/%s/runs?timeout=%d", a.cfg.BaseURL, a.actor.ActorID, timeoutSecs)
	if err := a.http.postJSON(ctx, startURL, headers, input, &run); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	status, datasetID := run.Data.Status, run.Data.DefaultDatasetID
	if status == "" {
		status = "RUNNING"
	}
	pollURL := fmt.Sprintf("%s/acts/%s/runs/%s", a.cfg.BaseURL, a.actor.ActorID, run.Data.ID)
	var elapsed time.Duration
	for (status == "RUNNING" || status == "READY") && elapsed < a.cfg.ActorTimeout {
		if err := a.sleep(ctx, a.cfg.PollInterval); err != nil {
			return nil, err
		}
		elapsed += a.cfg.PollInterval

		var poll apifyRun
		if err := a.http.getJSON(ctx, pollURL, headers, &poll); err != nil {
			return nil, fmt.Errorf("poll run %s: %w", run.Data.ID, err)
		}
		status = poll.Data.Status
		if poll.Data.DefaultDatasetID != "" {
			datasetID = poll.Data.DefaultDatasetID
		}
	}

	if status != "SUCCEEDED" {
		return nil, fmt.Errorf("run %s finished with status %s", run.Data.ID, status)
	}

	var items []map[string]any
	dsURL := fmt.Sprintf("%s/datasets/%s/items?limit=%d", a.cfg.BaseURL, datasetID, a.cfg.DatasetLimit)
	if err := a.http.getJSON(ctx, dsURL, headers, &items); err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %w", datasetID, err)
	}
	return items, nil
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
