package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/service"
)

//go:generate moq -out mocks/sweeper.go -pkg mocks -skip-ensure -fmt goimports . Sweeper
//go:generate moq -out mocks/settings_store.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore

// Sweeper runs sweeps synchronously
type Sweeper interface {
	RunCollect(ctx context.Context, platforms []string, limit int) (service.CollectResult, error)
	RunAnalyze(ctx context.Context, limit int) (domain.AnalysisStats, error)
}

// SettingsStore provides the settings snapshot
type SettingsStore interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
}

// Scheduler runs collect followed by analyze every poll interval
type Scheduler struct {
	sweeper         Sweeper
	settings        SettingsStore
	platforms       []string
	collectLimit    int
	analyzeLimit    int
	defaultInterval time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params contains scheduler dependencies and limits
type Params struct {
	Sweeper         Sweeper
	Settings        SettingsStore
	Platforms       []string      // empty means all registered platforms
	CollectLimit    int           // per adapter
	AnalyzeLimit    int           // per cycle
	DefaultInterval time.Duration // used when the poll interval setting is unusable
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.CollectLimit <= 0 {
		params.CollectLimit = 25
	}
	if params.AnalyzeLimit <= 0 {
		params.AnalyzeLimit = 50
	}
	if params.DefaultInterval <= 0 {
		params.DefaultInterval = 10 * time.Minute
	}
	return &Scheduler{
		sweeper:         params.Sweeper,
		settings:        params.Settings,
		platforms:       params.Platforms,
		collectLimit:    params.CollectLimit,
		analyzeLimit:    params.AnalyzeLimit,
		defaultInterval: params.DefaultInterval,
	}
}

// Start begins the scheduler, the first cycle runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker(ctx)
	lgr.Printf("[INFO] scheduler started, collect limit %d, analyze limit %d", s.collectLimit, s.analyzeLimit)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		s.runCycle(ctx)

		// poll interval is re-read every cycle, a settings change applies without restart
		interval := s.interval(ctx)
		lgr.Printf("[DEBUG] next sweep in %v", interval)
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runCycle collects then analyzes, a failed collection does not prevent analysis of older posts
func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if res, err := s.sweeper.RunCollect(ctx, s.platforms, s.collectLimit); err != nil {
		lgr.Printf("[WARN] scheduled collection failed: %v", err)
	} else {
		lgr.Printf("[INFO] scheduled collection inserted %d posts", res.Total.Inserted)
	}

	if ctx.Err() != nil {
		return
	}
	if stats, err := s.sweeper.RunAnalyze(ctx, s.analyzeLimit); err != nil {
		lgr.Printf("[WARN] scheduled analysis failed: %v", err)
	} else {
		lgr.Printf("[INFO] scheduled analysis processed %d posts, %d leads", stats.Fetched, stats.LeadsCreated)
	}
}

func (s *Scheduler) interval(ctx context.Context) time.Duration {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't read settings, using default interval %v: %v", s.defaultInterval, err)
		return s.defaultInterval
	}
	interval, err := settings.PollInterval()
	if err != nil {
		lgr.Printf("[WARN] %v, using default interval %v", err, s.defaultInterval)
		return s.defaultInterval
	}
	return interval
}
