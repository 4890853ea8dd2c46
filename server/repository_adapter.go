package server

import (
	"context"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetStats returns dashboard counters
func (r *RepositoryAdapter) GetStats(ctx context.Context) (domain.Stats, error) {
	return r.repos.Stats.GetStats(ctx)
}

// GetPosts returns a page of collected posts
func (r *RepositoryAdapter) GetPosts(ctx context.Context, filter domain.PostFilter) ([]domain.RawPost, error) {
	return r.repos.Post.GetPosts(ctx, filter)
}

// GetLeads returns a page of leads
func (r *RepositoryAdapter) GetLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	return r.repos.Lead.GetLeads(ctx, filter)
}

// GetLead returns a lead by id
func (r *RepositoryAdapter) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	return r.repos.Lead.GetLead(ctx, id)
}

// UpdateLeadStatus changes lead workflow state
func (r *RepositoryAdapter) UpdateLeadStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	return r.repos.Lead.UpdateLeadStatus(ctx, id, status)
}

// UpdateLeadDraft stores an outreach draft on a lead
func (r *RepositoryAdapter) UpdateLeadDraft(ctx context.Context, id int64, subject, body, contactEmail string) error {
	return r.repos.Lead.UpdateLeadDraft(ctx, id, subject, body, contactEmail)
}

// GetOutreach returns a page of outreach records
func (r *RepositoryAdapter) GetOutreach(ctx context.Context, limit, offset int) ([]domain.Outreach, error) {
	return r.repos.Outreach.GetOutreach(ctx, limit, offset)
}

// CreateOutreach logs an outreach attempt
func (r *RepositoryAdapter) CreateOutreach(ctx context.Context, o *domain.Outreach) error {
	return r.repos.Outreach.CreateOutreach(ctx, o)
}

// GetSettings returns all settings, seeding defaults
func (r *RepositoryAdapter) GetSettings(ctx context.Context) (domain.Settings, error) {
	return r.repos.Setting.GetSettings(ctx)
}

// SetSettings upserts settings
func (r *RepositoryAdapter) SetSettings(ctx context.Context, values map[string]string) error {
	return r.repos.Setting.SetSettings(ctx, values)
}

var _ Database = (*RepositoryAdapter)(nil)
