package source

import (
	"fmt"
	"time"

	"github.com/Clapiton/socials/pkg/config"
)

// collection platform tags accepted by sweeps, in default order
const (
	CollectReddit     = "reddit"
	CollectHackerNews = "hackernews"
	CollectMastodon   = "mastodon"
	CollectDevTo      = "devto"
	CollectApify      = "apify"
)

// Registry groups adapters under the platform tags a sweep can select
type Registry struct {
	order    []string
	adapters map[string][]Adapter
}

// RegistryOption customizes NewRegistry
type RegistryOption func(*registryOpts)

type registryOpts struct {
	extractor Extractor
	now       func() time.Time
	sleep     SleepFunc
}

// WithExtractor enables article extraction for link-only hacker news stories
func WithExtractor(e Extractor) RegistryOption {
	return func(o *registryOpts) { o.extractor = e }
}

// WithClock sets the clock used for fallback ids
func WithClock(now func() time.Time) RegistryOption {
	return func(o *registryOpts) { o.now = now }
}

// WithPollSleep replaces the wait between apify run status polls
func WithPollSleep(sleep SleepFunc) RegistryOption {
	return func(o *registryOpts) { o.sleep = sleep }
}

// NewRegistry builds all adapters sharing one rate-limited http client
func NewRegistry(cfg config.SourcesConfig, opts ...RegistryOption) *Registry {
	o := registryOpts{now: time.Now, sleep: sleepCtx}
	for _, opt := range opts {
		opt(&o)
	}

	client := newHTTPClient(cfg)
	norm := NewNormalizer(o.now)

	apify := make([]Adapter, 0, len(ApifyActors))
	for _, actor := range ApifyActors {
		apify = append(apify, newApifyAdapter(actor, cfg.Apify, client, norm, o.sleep))
	}

	r := &Registry{
		order: []string{CollectReddit, CollectHackerNews, CollectMastodon, CollectDevTo, CollectApify},
		adapters: map[string][]Adapter{
			CollectReddit:     {newRedditAdapter(cfg, client, norm)},
			CollectHackerNews: {newHackerNewsAdapter(cfg.HackerNews, client, norm, o.extractor)},
			CollectMastodon:   {newMastodonAdapter(cfg, client, norm)},
			CollectDevTo:      {newDevToAdapter(cfg, client, norm)},
			CollectApify:      apify,
		},
	}
	return r
}

// NewRegistryFromAdapters builds a registry over explicit adapters, order follows the given tags
func NewRegistryFromAdapters(order []string, adapters map[string][]Adapter) *Registry {
	return &Registry{order: order, adapters: adapters}
}

// Platforms returns the selectable platform tags in default order
func (r *Registry) Platforms() []string {
	res := make([]string, len(r.order))
	copy(res, r.order)
	return res
}

// Adapters returns the adapters registered under platform
func (r *Registry) Adapters(platform string) ([]Adapter, error) {
	a, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q, expected one of %v", platform, r.order)
	}
	return a, nil
}

// compile-time checks
var (
	_ Adapter = (*RedditAdapter)(nil)
	_ Adapter = (*ApifyAdapter)(nil)
	_ Adapter = (*HackerNewsAdapter)(nil)
	_ Adapter = (*MastodonAdapter)(nil)
	_ Adapter = (*DevToAdapter)(nil)
)
