package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"github.com/Clapiton/socials/pkg/domain"
)

// StatsRepository computes dashboard counters
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats returns store-wide counters. Response rate is the share of outreach
// entries marked replied, in percent with one decimal.
func (r *StatsRepository) GetStats(ctx context.Context) (domain.Stats, error) {
	var row struct {
		Posts      int `db:"posts"`
		Analyzed   int `db:"analyzed"`
		Frustrated int `db:"frustrated"`
		Leads      int `db:"leads"`
		Outreach   int `db:"outreach"`
		Replied    int `db:"replied"`
	}
	query := `
		SELECT
			(SELECT COUNT(*) FROM raw_posts) AS posts,
			(SELECT COUNT(*) FROM analyzed_posts) AS analyzed,
			(SELECT COUNT(*) FROM analyzed_posts WHERE is_frustrated = 1) AS frustrated,
			(SELECT COUNT(*) FROM leads) AS leads,
			(SELECT COUNT(*) FROM outreach) AS outreach,
			(SELECT COUNT(*) FROM outreach WHERE status = ?) AS replied
	`
	if err := r.db.GetContext(ctx, &row, query, domain.OutreachReplied); err != nil {
		return domain.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	res := domain.Stats{
		TotalPosts:      row.Posts,
		TotalAnalyzed:   row.Analyzed,
		TotalFrustrated: row.Frustrated,
		TotalLeads:      row.Leads,
		TotalOutreach:   row.Outreach,
	}
	if row.Outreach > 0 {
		res.ResponseRate = math.Round(float64(row.Replied)/float64(row.Outreach)*1000) / 10
	}
	return res, nil
}
