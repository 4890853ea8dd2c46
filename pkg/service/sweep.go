// Package service runs collection and analysis sweeps and reports their progress
// into the task tracker, either in background goroutines or synchronously.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/collector"
	"github.com/Clapiton/socials/pkg/domain"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer

// Collector runs a collection sweep
type Collector interface {
	Collect(ctx context.Context, platforms []string, limit int) ([]domain.CollectionStats, error)
}

// Analyzer runs an analysis sweep
type Analyzer interface {
	Run(ctx context.Context, limit int) (domain.AnalysisStats, error)
}

// Tracker records sweep progress
type Tracker interface {
	Start(taskType string, total int, message string) string
	Complete(taskType, message string, result any)
	Fail(taskType string, err error)
	Status(taskType string) domain.TaskStatus
	All() []domain.TaskStatus
}

// Recorder receives sweep outcomes for metrics
type Recorder interface {
	RecordCollect(stats []domain.CollectionStats, err error)
	RecordAnalyze(stats domain.AnalysisStats, err error)
}

// CollectResult is the tracker result of a finished collection sweep
type CollectResult struct {
	Total   domain.CollectionStats   `json:"total"`
	Sources []domain.CollectionStats `json:"sources"`
}

// Params contains the dependencies of SweepService
type Params struct {
	Collector Collector
	Analyzer  Analyzer
	Tracker   Tracker
	Recorder  Recorder // optional
}

// SweepService starts sweeps and keeps the tracker in sync with them.
// Background sweeps run under the context given to NewSweepService, so they
// outlive the request which started them and stop with the process.
type SweepService struct {
	Params
	ctx context.Context
	wg  sync.WaitGroup
}

// NewSweepService makes a service, ctx bounds background sweeps
func NewSweepService(ctx context.Context, params Params) *SweepService {
	return &SweepService{Params: params, ctx: ctx}
}

// StartCollect runs a collection sweep in background and returns its run id.
// A collect sweep already running is not stopped, the tracker entry is taken over.
func (s *SweepService) StartCollect(platforms []string, limit int) string {
	runID := s.Tracker.Start(domain.TaskCollect, len(platforms), "Starting collection")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, _ = s.collect(s.ctx, platforms, limit)
	}()
	return runID
}

// StartAnalyze runs an analysis sweep in background and returns its run id
func (s *SweepService) StartAnalyze(limit int) string {
	runID := s.Tracker.Start(domain.TaskAnalyze, 0, "Starting analysis")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, _ = s.analyze(s.ctx, limit)
	}()
	return runID
}

// RunCollect runs a collection sweep and waits for it
func (s *SweepService) RunCollect(ctx context.Context, platforms []string, limit int) (CollectResult, error) {
	s.Tracker.Start(domain.TaskCollect, len(platforms), "Starting collection")
	return s.collect(ctx, platforms, limit)
}

// RunAnalyze runs an analysis sweep and waits for it
func (s *SweepService) RunAnalyze(ctx context.Context, limit int) (domain.AnalysisStats, error) {
	s.Tracker.Start(domain.TaskAnalyze, 0, "Starting analysis")
	return s.analyze(ctx, limit)
}

// Status returns the progress of one sweep type
func (s *SweepService) Status(taskType string) domain.TaskStatus {
	return s.Tracker.Status(taskType)
}

// AllStatuses returns the progress of every sweep type seen so far
func (s *SweepService) AllStatuses() []domain.TaskStatus {
	return s.Tracker.All()
}

// Wait blocks until background sweeps finish
func (s *SweepService) Wait() {
	s.wg.Wait()
}

func (s *SweepService) collect(ctx context.Context, platforms []string, limit int) (CollectResult, error) {
	stats, err := s.Collector.Collect(ctx, platforms, limit)
	if s.Recorder != nil {
		s.Recorder.RecordCollect(stats, err)
	}
	if err != nil {
		lgr.Printf("[ERROR] collection failed: %v", err)
		s.Tracker.Fail(domain.TaskCollect, err)
		return CollectResult{}, fmt.Errorf("collect: %w", err)
	}

	res := CollectResult{Total: collector.Total(stats), Sources: stats}
	s.Tracker.Complete(domain.TaskCollect,
		fmt.Sprintf("Collected %d new posts from %d sources", res.Total.Inserted, len(stats)), res)
	return res, nil
}

func (s *SweepService) analyze(ctx context.Context, limit int) (domain.AnalysisStats, error) {
	stats, err := s.Analyzer.Run(ctx, limit)
	if s.Recorder != nil {
		s.Recorder.RecordAnalyze(stats, err)
	}
	if err != nil {
		lgr.Printf("[ERROR] analysis failed: %v", err)
		s.Tracker.Fail(domain.TaskAnalyze, err)
		return stats, fmt.Errorf("analyze: %w", err)
	}

	s.Tracker.Complete(domain.TaskAnalyze,
		fmt.Sprintf("Analyzed %d posts, %d leads found", stats.Fetched, stats.LeadsCreated), stats)
	return stats, nil
}
