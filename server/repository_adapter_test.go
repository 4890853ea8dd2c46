package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/repository"
)

func TestRepositoryAdapter_LeadWorkflow(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN: "file:" + filepath.Join(t.TempDir(), "server.db") + "?_pragma=busy_timeout(5000)&_txlock=immediate",
	})
	require.NoError(t, err)
	defer repos.Close()

	post, err := repos.Post.InsertPost(ctx, domain.RawPost{Platform: domain.PlatformReddit, PostID: "abc",
		Author: "ann", Title: "invoices", Content: "I hate doing invoices by hand", URL: "https://reddit.com/abc"})
	require.NoError(t, err)
	analyzed := &domain.AnalyzedPost{RawPostID: post.ID, IsFrustrated: true, Confidence: 0.9,
		Reason: "manual work", SuggestedService: "automation"}
	require.NoError(t, repos.Analysis.CreateAnalysis(ctx, analyzed))
	lead, err := repos.Lead.CreateLead(ctx, domain.NewLead(*analyzed, *post))
	require.NoError(t, err)
	require.NotNil(t, lead)

	srv := newTestServer(t, testDeps{})
	srv.db = NewRepositoryAdapter(repos)

	leadPath := fmt.Sprintf("/api/v1/leads/%d", lead.ID)
	w := serve(t, srv, http.MethodGet, leadPath, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[domain.Lead](t, w)
	assert.Equal(t, "ann", got.Author)
	assert.Equal(t, "invoices", got.PostTitle)

	w = serve(t, srv, http.MethodPost, "/api/v1/outreach/generate", fmt.Sprintf(`{"lead_id":%d}`, lead.ID))
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = serve(t, srv, http.MethodPut, leadPath+"/draft", `{"subject":"Hi Ann","body":"Let us automate it"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, srv, http.MethodPost, "/api/v1/outreach/send", fmt.Sprintf(`{"lead_id":%d}`, lead.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, srv, http.MethodPut, leadPath+"/status", `{"status":"contacted"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, srv, http.MethodGet, "/api/v1/leads?status=contacted", "")
	require.Equal(t, http.StatusOK, w.Code)
	leads := decode[[]domain.Lead](t, w)
	require.Len(t, leads, 1)
	assert.Equal(t, "Hi Ann", leads[0].OutreachSubject)

	w = serve(t, srv, http.MethodGet, "/api/v1/outreach", "")
	require.Equal(t, http.StatusOK, w.Code)
	outreach := decode[[]domain.Outreach](t, w)
	require.Len(t, outreach, 1)
	assert.Equal(t, analyzed.ID, outreach[0].AnalyzedPostID)

	w = serve(t, srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.Stats](t, w)
	assert.Equal(t, 1, stats.TotalPosts)
	assert.Equal(t, 1, stats.TotalLeads)
	assert.Equal(t, 1, stats.TotalOutreach)

	w = serve(t, srv, http.MethodGet, "/api/v1/leads/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, srv, http.MethodPut, "/api/v1/settings", `{"poll_interval_minutes":"5"}`)
	require.Equal(t, http.StatusOK, w.Code)
	settings, err := repos.Setting.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", settings[domain.SettingPollInterval])
}
