package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_txlock=immediate",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func insertPost(t *testing.T, repos *Repositories, post domain.RawPost) domain.RawPost {
	t.Helper()
	res, err := repos.Post.InsertPost(context.Background(), post)
	require.NoError(t, err)
	require.NotNil(t, res)
	return *res
}

func insertAnalysis(t *testing.T, repos *Repositories, a domain.AnalyzedPost) domain.AnalyzedPost {
	t.Helper()
	require.NoError(t, repos.Analysis.CreateAnalysis(context.Background(), &a))
	return a
}

func TestRepositories_Ping(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))
}

func TestPostRepository_InsertPost(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("new post is stored", func(t *testing.T) {
		res, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: "reddit", PostID: "p1",
			Title: "stuck on css", Content: "need help", Author: "bob", URL: "https://example.com/1", Score: 3,
			Group: "webdev"})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Positive(t, res.ID)
		assert.False(t, res.CollectedAt.IsZero())

		stored, err := repos.Post.GetPost(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "stuck on css", stored.Title)
		assert.Equal(t, "webdev", stored.Group)
		assert.Equal(t, 3, stored.Score)
	})

	t.Run("duplicate returns nil regardless of other fields", func(t *testing.T) {
		res, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: "reddit", PostID: "p1", Title: "other"})
		require.NoError(t, err)
		assert.Nil(t, res)

		posts, err := repos.Post.GetPosts(ctx, domain.PostFilter{Platform: "reddit"})
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("same post id on another platform is distinct", func(t *testing.T) {
		res, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: "devto", PostID: "p1", Title: "x"})
		require.NoError(t, err)
		assert.NotNil(t, res)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		res, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: "devto", PostID: "p2", Title: "  "})
		require.ErrorIs(t, err, ErrEmptyPost)
		assert.Nil(t, res)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repos.Post.GetPost(ctx, 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostRepository_ConcurrentInsert(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan *domain.RawPost, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			res, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: "hackernews", PostID: "same",
				Title: fmt.Sprintf("attempt %d", n)})
			assert.NoError(t, err)
			results <- res
		}(i)
	}
	wg.Wait()
	close(results)

	inserted := 0
	for res := range results {
		if res != nil {
			inserted++
		}
	}
	assert.Equal(t, 1, inserted)

	posts, err := repos.Post.GetPosts(ctx, domain.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostRepository_GetPosts(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "a", Title: "a", CollectedAt: base})
	insertPost(t, repos, domain.RawPost{Platform: "devto", PostID: "b", Title: "b", CollectedAt: base.Add(time.Hour)})
	insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "c", Title: "c", CollectedAt: base.Add(2 * time.Hour)})

	posts, err := repos.Post.GetPosts(ctx, domain.PostFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{posts[0].PostID, posts[1].PostID, posts[2].PostID})

	posts, err = repos.Post.GetPosts(ctx, domain.PostFilter{Platform: "reddit", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].PostID)
}

func TestPostRepository_GetUnanalyzedPosts(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	p1 := insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "1", Title: "one", CollectedAt: base})
	insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "2", Title: "two", CollectedAt: base.Add(time.Minute)})
	insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "3", Title: "three", CollectedAt: base.Add(2 * time.Minute)})

	insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p1.ID, Reason: "done"})

	posts, err := repos.Post.GetUnanalyzedPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "3", posts[0].PostID)
	assert.Equal(t, "2", posts[1].PostID)

	posts, err = repos.Post.GetUnanalyzedPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "3", posts[0].PostID)
}

func TestAnalysisRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	p1 := insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "1", Title: "one"})
	p2 := insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "2", Title: "two"})

	score := -0.6
	a1 := insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p1.ID, IsFrustrated: true, Confidence: 0.9,
		Reason: "stuck", SuggestedService: "web development", SentimentScore: &score})
	assert.Positive(t, a1.ID)
	insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p2.ID, Reason: "filtered"})

	t.Run("second analysis of the same post rejected", func(t *testing.T) {
		err := repos.Analysis.CreateAnalysis(ctx, &domain.AnalyzedPost{RawPostID: p1.ID})
		require.ErrorIs(t, err, ErrAlreadyAnalyzed)
	})

	t.Run("get by post", func(t *testing.T) {
		a, err := repos.Analysis.GetAnalysisByPost(ctx, p1.ID)
		require.NoError(t, err)
		assert.True(t, a.IsFrustrated)
		require.NotNil(t, a.SentimentScore)
		assert.InDelta(t, -0.6, *a.SentimentScore, 1e-9)

		a, err = repos.Analysis.GetAnalysisByPost(ctx, p2.ID)
		require.NoError(t, err)
		assert.Nil(t, a.SentimentScore)
	})

	t.Run("joined list", func(t *testing.T) {
		all, err := repos.Analysis.GetAnalyzedPosts(ctx, false, 10, 0)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "one", all[0].Post.Title)

		frustrated, err := repos.Analysis.GetAnalyzedPosts(ctx, true, 10, 0)
		require.NoError(t, err)
		require.Len(t, frustrated, 1)
		assert.Equal(t, p1.ID, frustrated[0].Post.ID)
	})
}

func TestLeadRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	p1 := insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "1", Title: "one", Author: "amy"})
	p2 := insertPost(t, repos, domain.RawPost{Platform: "devto", PostID: "2", Title: "two"})
	a1 := insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p1.ID, IsFrustrated: true, Confidence: 0.85})
	a2 := insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p2.ID, IsFrustrated: true, Confidence: 0.95})

	lead, err := repos.Lead.CreateLead(ctx, domain.NewLead(a1, p1))
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, domain.LeadNew, lead.Status)
	assert.Equal(t, "amy", lead.Author)

	t.Run("duplicate promotion is a no-op", func(t *testing.T) {
		dup, err := repos.Lead.CreateLead(ctx, domain.NewLead(a1, p1))
		require.NoError(t, err)
		assert.Nil(t, dup)

		leads, err := repos.Lead.GetLeads(ctx, domain.LeadFilter{})
		require.NoError(t, err)
		assert.Len(t, leads, 1)
	})

	_, err = repos.Lead.CreateLead(ctx, domain.NewLead(a2, p2))
	require.NoError(t, err)

	t.Run("ordered by confidence", func(t *testing.T) {
		leads, err := repos.Lead.GetLeads(ctx, domain.LeadFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, leads, 2)
		assert.Equal(t, "devto", leads[0].Platform)
		assert.Equal(t, "reddit", leads[1].Platform)

		leads, err = repos.Lead.GetLeads(ctx, domain.LeadFilter{MinConfidence: 0.9})
		require.NoError(t, err)
		assert.Len(t, leads, 1)
	})

	t.Run("status and draft updates", func(t *testing.T) {
		require.NoError(t, repos.Lead.UpdateLeadStatus(ctx, lead.ID, domain.LeadContacted))
		require.NoError(t, repos.Lead.UpdateLeadDraft(ctx, lead.ID, "hi", "body", "amy@example.com"))

		got, err := repos.Lead.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.LeadContacted, got.Status)
		assert.Equal(t, "hi", got.OutreachSubject)
		assert.Equal(t, "amy@example.com", got.ContactEmail)

		leads, err := repos.Lead.GetLeads(ctx, domain.LeadFilter{Status: domain.LeadContacted})
		require.NoError(t, err)
		assert.Len(t, leads, 1)
	})

	t.Run("invalid status and missing lead", func(t *testing.T) {
		require.Error(t, repos.Lead.UpdateLeadStatus(ctx, lead.ID, "bogus"))
		require.ErrorIs(t, repos.Lead.UpdateLeadStatus(ctx, 9999, domain.LeadDismissed), ErrNotFound)
		_, err := repos.Lead.GetLead(ctx, 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOutreachAndStats(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	p := insertPost(t, repos, domain.RawPost{Platform: "reddit", PostID: "1", Title: "one"})
	a := insertAnalysis(t, repos, domain.AnalyzedPost{RawPostID: p.ID, IsFrustrated: true, Confidence: 0.9})
	_, err := repos.Lead.CreateLead(ctx, domain.NewLead(a, p))
	require.NoError(t, err)

	o1 := domain.Outreach{AnalyzedPostID: a.ID, MessageSent: "hello"}
	require.NoError(t, repos.Outreach.CreateOutreach(ctx, &o1))
	assert.Equal(t, domain.OutreachSent, o1.Status)
	o2 := domain.Outreach{AnalyzedPostID: a.ID, Channel: "email", MessageSent: "follow up"}
	require.NoError(t, repos.Outreach.CreateOutreach(ctx, &o2))
	o3 := domain.Outreach{AnalyzedPostID: a.ID, MessageSent: "third"}
	require.NoError(t, repos.Outreach.CreateOutreach(ctx, &o3))
	require.NoError(t, repos.Outreach.UpdateOutreachStatus(ctx, o1.ID, domain.OutreachReplied, "thanks"))
	require.ErrorIs(t, repos.Outreach.UpdateOutreachStatus(ctx, 9999, domain.OutreachReplied, ""), ErrNotFound)

	list, err := repos.Outreach.GetOutreach(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	stats, err := repos.Stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPosts)
	assert.Equal(t, 1, stats.TotalAnalyzed)
	assert.Equal(t, 1, stats.TotalFrustrated)
	assert.Equal(t, 1, stats.TotalLeads)
	assert.Equal(t, 3, stats.TotalOutreach)
	assert.InDelta(t, 33.3, stats.ResponseRate, 1e-9)
}

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("defaults seeded on first read", func(t *testing.T) {
		settings, err := repos.Setting.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.8", settings[domain.SettingConfidenceThreshold])
		assert.Len(t, settings, len(domain.DefaultSettings))

		v, err := repos.Setting.GetSetting(ctx, domain.SettingLLMModel)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", v)
	})

	t.Run("stored values win over defaults", func(t *testing.T) {
		require.NoError(t, repos.Setting.SetSetting(ctx, domain.SettingLLMModel, "llama3"))
		require.NoError(t, repos.Setting.SetSettings(ctx, map[string]string{
			domain.SettingConfidenceThreshold: "0.7",
			"custom":                          "x",
		}))

		settings, err := repos.Setting.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "llama3", settings.Model())
		assert.Equal(t, "0.7", settings[domain.SettingConfidenceThreshold])
		assert.Equal(t, "x", settings["custom"])
	})

	t.Run("missing key", func(t *testing.T) {
		v, err := repos.Setting.GetSetting(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, v)
	})
}
