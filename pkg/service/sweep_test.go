package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/metrics"
	"github.com/Clapiton/socials/pkg/service/mocks"
	"github.com/Clapiton/socials/pkg/task"
)

func TestSweepService_StartCollect(t *testing.T) {
	coll := &mocks.CollectorMock{CollectFunc: func(_ context.Context, platforms []string, limit int) ([]domain.CollectionStats, error) {
		return []domain.CollectionStats{
			{Platform: "reddit", Source: "rss", Fetched: 5, Inserted: 3},
			{Platform: "hackernews", Source: "algolia", Error: "timeout"},
		}, nil
	}}
	tracker := task.NewTracker()
	svc := NewSweepService(context.Background(), Params{Collector: coll, Analyzer: &mocks.AnalyzerMock{},
		Tracker: tracker, Recorder: metrics.New()})

	runID := svc.StartCollect([]string{"reddit", "hackernews"}, 7)
	assert.NotEmpty(t, runID)
	svc.Wait()

	require.Len(t, coll.CollectCalls(), 1)
	assert.Equal(t, []string{"reddit", "hackernews"}, coll.CollectCalls()[0].Platforms)
	assert.Equal(t, 7, coll.CollectCalls()[0].Limit)

	st := svc.Status(domain.TaskCollect)
	assert.Equal(t, domain.TaskCompleted, st.Status)
	assert.Equal(t, runID, st.RunID)
	assert.Equal(t, 100, st.Percent)
	assert.Equal(t, "Collected 3 new posts from 2 sources", st.Message)
	res, ok := st.Result.(CollectResult)
	require.True(t, ok)
	assert.Equal(t, 3, res.Total.Inserted)
	assert.Equal(t, "timeout", res.Total.Error)
	assert.Len(t, res.Sources, 2)
}

func TestSweepService_StartAnalyzeFails(t *testing.T) {
	an := &mocks.AnalyzerMock{RunFunc: func(context.Context, int) (domain.AnalysisStats, error) {
		return domain.AnalysisStats{}, errors.New("setting sentiment_threshold is not a number")
	}}
	svc := NewSweepService(context.Background(), Params{Collector: &mocks.CollectorMock{}, Analyzer: an, Tracker: task.NewTracker()})

	svc.StartAnalyze(50)
	svc.Wait()

	st := svc.Status(domain.TaskAnalyze)
	assert.Equal(t, domain.TaskFailed, st.Status)
	assert.Contains(t, st.Message, "sentiment_threshold")
	assert.Equal(t, domain.TaskIdle, svc.Status(domain.TaskCollect).Status)
}

func TestSweepService_RunSync(t *testing.T) {
	an := &mocks.AnalyzerMock{RunFunc: func(_ context.Context, limit int) (domain.AnalysisStats, error) {
		return domain.AnalysisStats{Fetched: limit, LeadsCreated: 1}, nil
	}}
	coll := &mocks.CollectorMock{CollectFunc: func(context.Context, []string, int) ([]domain.CollectionStats, error) {
		return nil, errors.New(`unknown platform "myspace"`)
	}}
	svc := NewSweepService(context.Background(), Params{Collector: coll, Analyzer: an, Tracker: task.NewTracker()})

	stats, err := svc.RunAnalyze(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Fetched)
	st := svc.Status(domain.TaskAnalyze)
	assert.Equal(t, domain.TaskCompleted, st.Status)
	assert.Equal(t, "Analyzed 4 posts, 1 leads found", st.Message)
	assert.Equal(t, stats, st.Result)

	_, err = svc.RunCollect(context.Background(), []string{"myspace"}, 1)
	require.Error(t, err)
	assert.Equal(t, domain.TaskFailed, svc.Status(domain.TaskCollect).Status)
	assert.Len(t, svc.AllStatuses(), 2)
}
