package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/scheduler/mocks"
	"github.com/Clapiton/socials/pkg/service"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{Sweeper: &mocks.SweeperMock{}, Settings: &mocks.SettingsStoreMock{}})
	assert.Equal(t, 25, s.collectLimit)
	assert.Equal(t, 50, s.analyzeLimit)
	assert.Equal(t, 10*time.Minute, s.defaultInterval)
}

func TestScheduler_RunsCyclesInOrder(t *testing.T) {
	var order []string
	calls := make(chan struct{}, 100)
	sweeper := &mocks.SweeperMock{
		RunCollectFunc: func(_ context.Context, platforms []string, limit int) (service.CollectResult, error) {
			order = append(order, "collect")
			return service.CollectResult{}, errors.New("reddit down")
		},
		RunAnalyzeFunc: func(_ context.Context, limit int) (domain.AnalysisStats, error) {
			order = append(order, "analyze")
			calls <- struct{}{}
			return domain.AnalysisStats{}, nil
		},
	}
	settings := &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) {
		return domain.Settings{domain.SettingPollInterval: "often"}, nil
	}}

	s := NewScheduler(Params{Sweeper: sweeper, Settings: settings, Platforms: []string{"reddit"},
		CollectLimit: 5, AnalyzeLimit: 7, DefaultInterval: 10 * time.Millisecond})
	s.Start(context.Background())
	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not run")
		}
	}
	s.Stop()

	require.GreaterOrEqual(t, len(order), 4)
	assert.Equal(t, []string{"collect", "analyze", "collect", "analyze"}, order[:4], "analysis runs even if collection failed")
	assert.Equal(t, []string{"reddit"}, sweeper.RunCollectCalls()[0].Platforms)
	assert.Equal(t, 5, sweeper.RunCollectCalls()[0].Limit)
	assert.Equal(t, 7, sweeper.RunAnalyzeCalls()[0].Limit)
}

func TestScheduler_Interval(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.Settings
		err      error
		want     time.Duration
	}{
		{"from settings", domain.Settings{domain.SettingPollInterval: "15"}, nil, 15 * time.Minute},
		{"malformed", domain.Settings{domain.SettingPollInterval: "soon"}, nil, time.Minute},
		{"zero", domain.Settings{domain.SettingPollInterval: "0"}, nil, time.Minute},
		{"store error", nil, errors.New("locked"), time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(Params{Sweeper: &mocks.SweeperMock{}, DefaultInterval: time.Minute,
				Settings: &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) {
					return tt.settings, tt.err
				}}})
			assert.Equal(t, tt.want, s.interval(context.Background()))
		})
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	sweeper := &mocks.SweeperMock{
		RunCollectFunc: func(context.Context, []string, int) (service.CollectResult, error) {
			return service.CollectResult{}, nil
		},
		RunAnalyzeFunc: func(context.Context, int) (domain.AnalysisStats, error) {
			return domain.AnalysisStats{}, nil
		},
	}
	settings := &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) {
		return domain.Settings{domain.SettingPollInterval: "60"}, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(Params{Sweeper: sweeper, Settings: settings})
	s.Start(ctx)

	done := make(chan struct{})
	go func() {
		cancel()
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
