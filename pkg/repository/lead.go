package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Clapiton/socials/pkg/domain"
)

// LeadRepository handles lead storage, at most one lead per analyzed post
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

type leadSQL struct {
	ID               int64           `db:"id"`
	AnalyzedPostID   int64           `db:"analyzed_post_id"`
	RawPostID        int64           `db:"raw_post_id"`
	Confidence       float64         `db:"confidence"`
	Reason           string          `db:"reason"`
	SuggestedService string          `db:"suggested_service"`
	SentimentScore   sql.NullFloat64 `db:"sentiment_score"`
	Platform         string          `db:"platform"`
	Author           string          `db:"author"`
	PostTitle        string          `db:"post_title"`
	PostContent      string          `db:"post_content"`
	PostURL          string          `db:"post_url"`
	Status           string          `db:"status"`
	OutreachSubject  string          `db:"outreach_subject"`
	OutreachBody     string          `db:"outreach_body"`
	ContactEmail     string          `db:"contact_email"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

const leadColumns = `id, analyzed_post_id, raw_post_id, confidence, reason, suggested_service, sentiment_score,
	platform, author, post_title, post_content, post_url, status, outreach_subject, outreach_body,
	contact_email, created_at, updated_at`

func (l leadSQL) toDomain() domain.Lead {
	res := domain.Lead{
		ID:               l.ID,
		AnalyzedPostID:   l.AnalyzedPostID,
		RawPostID:        l.RawPostID,
		Confidence:       l.Confidence,
		Reason:           l.Reason,
		SuggestedService: l.SuggestedService,
		Platform:         l.Platform,
		Author:           l.Author,
		PostTitle:        l.PostTitle,
		PostContent:      l.PostContent,
		PostURL:          l.PostURL,
		Status:           domain.LeadStatus(l.Status),
		OutreachSubject:  l.OutreachSubject,
		OutreachBody:     l.OutreachBody,
		ContactEmail:     l.ContactEmail,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.SentimentScore.Valid {
		v := l.SentimentScore.Float64
		res.SentimentScore = &v
	}
	return res
}

// CreateLead stores a lead. Returns nil without error if a lead for the same
// analyzed post already exists.
func (r *LeadRepository) CreateLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error) {
	now := time.Now().UTC()
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}
	lead.CreatedAt, lead.UpdatedAt = now, now

	row := leadSQL{
		AnalyzedPostID:   lead.AnalyzedPostID,
		RawPostID:        lead.RawPostID,
		Confidence:       lead.Confidence,
		Reason:           lead.Reason,
		SuggestedService: lead.SuggestedService,
		SentimentScore:   nullFloat(lead.SentimentScore),
		Platform:         lead.Platform,
		Author:           lead.Author,
		PostTitle:        lead.PostTitle,
		PostContent:      lead.PostContent,
		PostURL:          lead.PostURL,
		Status:           string(lead.Status),
		OutreachSubject:  lead.OutreachSubject,
		OutreachBody:     lead.OutreachBody,
		ContactEmail:     lead.ContactEmail,
		CreatedAt:        lead.CreatedAt,
		UpdatedAt:        lead.UpdatedAt,
	}
	query := `
		INSERT INTO leads (analyzed_post_id, raw_post_id, confidence, reason, suggested_service, sentiment_score,
			platform, author, post_title, post_content, post_url, status, outreach_subject, outreach_body,
			contact_email, created_at, updated_at)
		VALUES (:analyzed_post_id, :raw_post_id, :confidence, :reason, :suggested_service, :sentiment_score,
			:platform, :author, :post_title, :post_content, :post_url, :status, :outreach_subject, :outreach_body,
			:contact_email, :created_at, :updated_at)
		ON CONFLICT(analyzed_post_id) DO NOTHING
	`

	created := false
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueError(err) {
				return nil
			}
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create lead: %w", err)}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get affected rows: %w", err)}
		}
		if affected == 0 {
			return nil
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		lead.ID = id
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	return &lead, nil
}

// GetLead returns a lead by id
func (r *LeadRepository) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	var row leadSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+leadColumns+" FROM leads WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", id, err)
	}
	res := row.toDomain()
	return &res, nil
}

// GetLeads returns leads ordered by confidence, highest first
func (r *LeadRepository) GetLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	qb := sq.Select(leadColumns).From("leads").
		OrderBy("confidence DESC", "id DESC").
		Limit(pageLimit(filter.Limit)).Offset(pageOffset(filter.Offset))
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.MinConfidence > 0 {
		qb = qb.Where(sq.GtOrEq{"confidence": filter.MinConfidence})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leads query: %w", err)
	}

	var rows []leadSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get leads: %w", err)
	}
	res := make([]domain.Lead, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// UpdateLeadStatus moves a lead to another workflow state
func (r *LeadRepository) UpdateLeadStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid lead status %q", status)
	}
	return r.update(ctx, id, "update lead status",
		"UPDATE leads SET status = ?, updated_at = ? WHERE id = ?", string(status), time.Now().UTC(), id)
}

// UpdateLeadDraft stores the outreach draft and the optional contact address of a lead
func (r *LeadRepository) UpdateLeadDraft(ctx context.Context, id int64, subject, body, contactEmail string) error {
	return r.update(ctx, id, "update lead draft",
		"UPDATE leads SET outreach_subject = ?, outreach_body = ?, contact_email = ?, updated_at = ? WHERE id = ?",
		subject, body, contactEmail, time.Now().UTC(), id)
}

func (r *LeadRepository) update(ctx context.Context, id int64, op, query string, args ...any) error {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return nil
}
