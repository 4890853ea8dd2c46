package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/pipeline/mocks"
	"github.com/Clapiton/socials/pkg/repository"
	"github.com/Clapiton/socials/pkg/task"
)

// fakeScorer returns fixed scores by text, zero for unknown text
type fakeScorer map[string]float64

func (f fakeScorer) Score(text string) float64 { return f[text] }

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN: "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_txlock=immediate",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	require.NoError(t, repos.Setting.SetSettings(ctx, map[string]string{
		domain.SettingSentimentThreshold:  "-0.05",
		domain.SettingConfidenceThreshold: "0.8",
		domain.SettingWebhookURL:          "http://hooks.example.com/lead",
		domain.SettingLLMModel:            "gpt-test",
	}))

	postA, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: domain.PlatformReddit, PostID: "a",
		Title: "help", Content: "I'm so frustrated with my invoicing", Author: "ann", URL: "https://reddit.com/a"})
	require.NoError(t, err)
	require.NotNil(t, postA)
	postB, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: domain.PlatformReddit, PostID: "b",
		Content: "frustrated for a second but it worked out great"})
	require.NoError(t, err)
	require.NotNil(t, postB)

	scorer := fakeScorer{postA.Content: -0.6, postB.Content: 0.2}
	classifier := &mocks.ClassifierMock{ClassifyFunc: func(_ context.Context, content, services, model string) domain.Classification {
		return domain.Classification{IsFrustrated: true, Confidence: 0.9, Reason: "stuck with invoices", SuggestedService: "automation"}
	}}
	notifier := &mocks.NotifierMock{NotifyFunc: func(string, int64) {}}
	tracker := task.NewTracker()
	tracker.Start(domain.TaskAnalyze, 0, "start")

	p := New(Params{
		Posts:      repos.Post,
		Analyses:   repos.Analysis,
		Settings:   repos.Setting,
		Scorer:     scorer,
		Classifier: classifier,
		Promoter:   NewPromoter(repos.Lead, notifier),
		Progress:   tracker,
	})

	stats, err := p.Run(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStats{Fetched: 2, SentimentPassed: 1, SentimentSkipped: 1, Frustrated: 1, LeadsCreated: 1}, stats)

	require.Len(t, classifier.ClassifyCalls(), 1)
	assert.Equal(t, postA.Content, classifier.ClassifyCalls()[0].Content)
	assert.Equal(t, "gpt-test", classifier.ClassifyCalls()[0].Model)

	skipped, err := repos.Analysis.GetAnalysisByPost(ctx, postB.ID)
	require.NoError(t, err)
	assert.False(t, skipped.IsFrustrated)
	assert.Zero(t, skipped.Confidence)
	assert.Contains(t, skipped.Reason, "0.200")
	assert.Equal(t, "none", skipped.SuggestedService)
	require.NotNil(t, skipped.SentimentScore)
	assert.InDelta(t, 0.2, *skipped.SentimentScore, 0.0001)

	leads, err := repos.Lead.GetLeads(ctx, domain.LeadFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, postA.ID, leads[0].RawPostID)
	assert.Equal(t, "ann", leads[0].Author)
	assert.Equal(t, domain.LeadNew, leads[0].Status)

	require.Len(t, notifier.NotifyCalls(), 1)
	assert.Equal(t, "http://hooks.example.com/lead", notifier.NotifyCalls()[0].Url)
	assert.Equal(t, leads[0].ID, notifier.NotifyCalls()[0].LeadID)

	st := tracker.Status(domain.TaskAnalyze)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 2, st.Current)
	assert.Equal(t, 100, st.Percent)

	// second run sees nothing new
	stats, err = p.Run(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStats{}, stats)
	assert.Len(t, classifier.ClassifyCalls(), 1)

	leads, err = repos.Lead.GetLeads(ctx, domain.LeadFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestPipeline_NotFrustratedAndBelowThreshold(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	for _, id := range []string{"calm", "unsure"} {
		_, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: domain.PlatformHackerNews, PostID: id, Content: id})
		require.NoError(t, err)
	}

	classifier := &mocks.ClassifierMock{ClassifyFunc: func(_ context.Context, content, _, _ string) domain.Classification {
		if content == "calm" {
			return domain.Classification{IsFrustrated: false, Confidence: 0.95, SuggestedService: "none"}
		}
		return domain.Classification{IsFrustrated: true, Confidence: 0.5, SuggestedService: "design"}
	}}
	leads := &mocks.LeadStoreMock{}

	p := New(Params{
		Posts: repos.Post, Analyses: repos.Analysis, Settings: repos.Setting,
		Scorer:     fakeScorer{"calm": -0.5, "unsure": -0.5},
		Classifier: classifier,
		Promoter:   NewPromoter(leads, nil),
	})
	stats, err := p.Run(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStats{Fetched: 2, SentimentPassed: 2, Frustrated: 1, NotFrustrated: 1}, stats)
	assert.Empty(t, leads.CreateLeadCalls(), "confidence below threshold never reaches the store")
}

func TestPipeline_NoClassifier(t *testing.T) {
	posts := &mocks.PostStoreMock{}
	p := New(Params{Posts: posts, Settings: &mocks.SettingsStoreMock{}})
	_, err := p.Run(context.Background(), 10)
	require.ErrorIs(t, err, ErrNoClassifier)
	assert.Empty(t, posts.GetUnanalyzedPostsCalls())
}

func TestPipeline_BadSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.Settings
		errText  string
	}{
		{"sentiment", domain.Settings{domain.SettingSentimentThreshold: "low", domain.SettingConfidenceThreshold: "0.8"}, "sentiment_threshold"},
		{"confidence", domain.Settings{domain.SettingSentimentThreshold: "-0.05", domain.SettingConfidenceThreshold: "high"}, "confidence_threshold"},
		{"confidence NaN", domain.Settings{domain.SettingSentimentThreshold: "-0.05", domain.SettingConfidenceThreshold: "NaN"}, "confidence_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &mocks.PostStoreMock{}
			p := New(Params{
				Posts:      posts,
				Settings:   &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) { return tt.settings, nil }},
				Classifier: &mocks.ClassifierMock{},
			})
			_, err := p.Run(context.Background(), 10)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Empty(t, posts.GetUnanalyzedPostsCalls())
		})
	}

	p := New(Params{
		Settings: &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) {
			return nil, errors.New("db gone")
		}},
		Classifier: &mocks.ClassifierMock{},
	})
	_, err := p.Run(context.Background(), 10)
	assert.ErrorContains(t, err, "db gone")
}

func TestPipeline_PostErrorsDoNotAbortBatch(t *testing.T) {
	posts := []domain.RawPost{
		{ID: 1, Platform: "reddit", PostID: "1", Content: "broken"},
		{ID: 2, Platform: "reddit", PostID: "2", Content: "   "},
		{ID: 3, Platform: "reddit", PostID: "3", Content: "fine"},
		{ID: 4, Platform: "reddit", PostID: "4", Content: "raced"},
	}
	analyses := &mocks.AnalysisStoreMock{CreateAnalysisFunc: func(_ context.Context, a *domain.AnalyzedPost) error {
		switch a.RawPostID {
		case 1:
			return errors.New("disk full")
		case 4:
			return repository.ErrAlreadyAnalyzed
		}
		a.ID = a.RawPostID * 10
		return nil
	}}
	classifier := &mocks.ClassifierMock{ClassifyFunc: func(context.Context, string, string, string) domain.Classification {
		return domain.Classification{IsFrustrated: true, Confidence: 1, SuggestedService: "automation"}
	}}
	leads := &mocks.LeadStoreMock{CreateLeadFunc: func(_ context.Context, lead domain.Lead) (*domain.Lead, error) {
		lead.ID = 7
		return &lead, nil
	}}

	p := New(Params{
		Posts: &mocks.PostStoreMock{GetUnanalyzedPostsFunc: func(_ context.Context, limit int) ([]domain.RawPost, error) {
			assert.Equal(t, 5, limit)
			return posts, nil
		}},
		Analyses:   analyses,
		Settings:   &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) { return domain.Settings(domain.DefaultSettings), nil }},
		Scorer:     fakeScorer{"broken": -1, "fine": -1, "raced": -1},
		Classifier: classifier,
		Promoter:   NewPromoter(leads, nil),
	})
	stats, err := p.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Fetched)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 3, stats.SentimentPassed)
	assert.Equal(t, 1, stats.Frustrated, "raced post is left to the sweep which recorded it")
	assert.Equal(t, 1, stats.LeadsCreated)
	require.Len(t, leads.CreateLeadCalls(), 1)
	assert.Equal(t, int64(30), leads.CreateLeadCalls()[0].Lead.AnalyzedPostID)
	assert.Len(t, analyses.CreateAnalysisCalls(), 3, "empty post is never recorded")
}

func TestPipeline_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(Params{
		Posts: &mocks.PostStoreMock{GetUnanalyzedPostsFunc: func(context.Context, int) ([]domain.RawPost, error) {
			return []domain.RawPost{{ID: 1, Content: "x"}}, nil
		}},
		Settings:   &mocks.SettingsStoreMock{GetSettingsFunc: func(context.Context) (domain.Settings, error) { return domain.Settings(domain.DefaultSettings), nil }},
		Classifier: &mocks.ClassifierMock{},
	})
	stats, err := p.Run(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Fetched)
}
