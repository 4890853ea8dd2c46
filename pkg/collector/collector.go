// Package collector runs a collection sweep over the selected platforms.
package collector

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/source"
)

// SettingsStore provides the settings snapshot
type SettingsStore interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
}

// Progress receives per-platform progress of a running sweep
type Progress interface {
	SetTotal(taskType string, total int, message string)
	Update(taskType string, current int, message string)
}

// Collector fetches posts from every adapter of the selected platforms into the sink
type Collector struct {
	registry *source.Registry
	sink     source.Sink
	settings SettingsStore
	progress Progress
}

// New makes a collector. Progress may be nil.
func New(registry *source.Registry, sink source.Sink, settings SettingsStore, progress Progress) *Collector {
	return &Collector{registry: registry, sink: sink, settings: settings, progress: progress}
}

// Collect runs adapters of the given platforms one after another, all registered
// platforms if none given. Unknown platform tags fail the sweep before anything
// is fetched, failures of single adapters are reported in their stats only.
func (c *Collector) Collect(ctx context.Context, platforms []string, limit int) ([]domain.CollectionStats, error) {
	if len(platforms) == 0 {
		platforms = c.registry.Platforms()
	}
	groups := make([][]source.Adapter, 0, len(platforms))
	for _, p := range platforms {
		adapters, err := c.registry.Adapters(p)
		if err != nil {
			return nil, err
		}
		groups = append(groups, adapters)
	}

	settings, err := c.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	req := source.Request{
		Keywords:   settings.Keywords(),
		Subreddits: settings.Subreddits(),
		Instances:  settings.MastodonInstances(),
		Limit:      limit,
	}

	lgr.Printf("[INFO] collecting from %v, limit %d, %d keywords", platforms, limit, len(req.Keywords))
	c.setTotal(len(platforms), fmt.Sprintf("Collecting from %d platforms", len(platforms)))

	var res []domain.CollectionStats
	for i, adapters := range groups {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("collection interrupted: %w", err)
		}
		c.update(i, fmt.Sprintf("Collecting %s (%d/%d)", platforms[i], i+1, len(platforms)))
		for _, a := range adapters {
			st := source.Collect(ctx, a, c.sink, req)
			lgr.Printf("[INFO] %s (%s): fetched %d, inserted %d, duplicates %d, filtered %d, errors %d",
				st.Platform, st.Source, st.Fetched, st.Inserted, st.Duplicates, st.Filtered, st.Errors)
			res = append(res, st)
		}
	}
	c.update(len(platforms), fmt.Sprintf("Collected from %d platforms", len(platforms)))
	return res, nil
}

// Total sums per-adapter stats of one sweep
func Total(stats []domain.CollectionStats) domain.CollectionStats {
	var total domain.CollectionStats
	for _, st := range stats {
		total.Add(st)
	}
	return total
}

func (c *Collector) setTotal(total int, msg string) {
	if c.progress != nil {
		c.progress.SetTotal(domain.TaskCollect, total, msg)
	}
}

func (c *Collector) update(current int, msg string) {
	if c.progress != nil {
		c.progress.Update(domain.TaskCollect, current, msg)
	}
}
