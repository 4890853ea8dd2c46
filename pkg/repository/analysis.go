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

// ErrAlreadyAnalyzed is returned when a second analysis is recorded for the same raw post
var ErrAlreadyAnalyzed = errors.New("post already analyzed")

// AnalysisRepository stores analysis results, one per raw post
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

type analyzedPostSQL struct {
	ID               int64           `db:"id"`
	RawPostID        int64           `db:"raw_post_id"`
	IsFrustrated     bool            `db:"is_frustrated"`
	Confidence       float64         `db:"confidence"`
	Reason           string          `db:"reason"`
	SuggestedService string          `db:"suggested_service"`
	SentimentScore   sql.NullFloat64 `db:"sentiment_score"`
	AnalyzedAt       time.Time       `db:"analyzed_at"`
}

func (a analyzedPostSQL) toDomain() domain.AnalyzedPost {
	res := domain.AnalyzedPost{
		ID:               a.ID,
		RawPostID:        a.RawPostID,
		IsFrustrated:     a.IsFrustrated,
		Confidence:       a.Confidence,
		Reason:           a.Reason,
		SuggestedService: a.SuggestedService,
		AnalyzedAt:       a.AnalyzedAt,
	}
	if a.SentimentScore.Valid {
		v := a.SentimentScore.Float64
		res.SentimentScore = &v
	}
	return res
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// CreateAnalysis records the analysis of a raw post and sets its id
func (r *AnalysisRepository) CreateAnalysis(ctx context.Context, a *domain.AnalyzedPost) error {
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = time.Now().UTC()
	}
	row := analyzedPostSQL{
		RawPostID:        a.RawPostID,
		IsFrustrated:     a.IsFrustrated,
		Confidence:       a.Confidence,
		Reason:           a.Reason,
		SuggestedService: a.SuggestedService,
		SentimentScore:   nullFloat(a.SentimentScore),
		AnalyzedAt:       a.AnalyzedAt,
	}
	query := `
		INSERT INTO analyzed_posts (raw_post_id, is_frustrated, confidence, reason, suggested_service,
			sentiment_score, analyzed_at)
		VALUES (:raw_post_id, :is_frustrated, :confidence, :reason, :suggested_service,
			:sentiment_score, :analyzed_at)
	`

	duplicate := false
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueError(err) {
				duplicate = true
				return nil
			}
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create analysis: %w", err)}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		a.ID = id
		return nil
	})
	if err != nil {
		return err
	}
	if duplicate {
		return fmt.Errorf("raw post %d: %w", a.RawPostID, ErrAlreadyAnalyzed)
	}
	return nil
}

// GetAnalysisByPost returns the analysis of a raw post
func (r *AnalysisRepository) GetAnalysisByPost(ctx context.Context, rawPostID int64) (*domain.AnalyzedPost, error) {
	var row analyzedPostSQL
	err := r.db.GetContext(ctx, &row, `
		SELECT id, raw_post_id, is_frustrated, confidence, reason, suggested_service, sentiment_score, analyzed_at
		FROM analyzed_posts WHERE raw_post_id = ?`, rawPostID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis for post %d: %w", rawPostID, err)
	}
	res := row.toDomain()
	return &res, nil
}

type analyzedWithPostSQL struct {
	analyzedPostSQL
	PostPlatform    string    `db:"p_platform"`
	PostPostID      string    `db:"p_post_id"`
	PostTitle       string    `db:"p_title"`
	PostContent     string    `db:"p_content"`
	PostAuthor      string    `db:"p_author"`
	PostURL         string    `db:"p_url"`
	PostScore       int       `db:"p_score"`
	PostCommunity   string    `db:"p_community"`
	PostCollectedAt time.Time `db:"p_collected_at"`
}

// GetAnalyzedPosts returns analyses joined with their posts, most confident first
func (r *AnalysisRepository) GetAnalyzedPosts(ctx context.Context, frustratedOnly bool, limit, offset int) ([]domain.AnalyzedPostWithRaw, error) {
	qb := sq.Select(
		"ap.id", "ap.raw_post_id", "ap.is_frustrated", "ap.confidence", "ap.reason",
		"ap.suggested_service", "ap.sentiment_score", "ap.analyzed_at",
		"rp.platform AS p_platform", "rp.post_id AS p_post_id", "rp.title AS p_title",
		"rp.content AS p_content", "rp.author AS p_author", "rp.url AS p_url",
		"rp.score AS p_score", "rp.community AS p_community", "rp.collected_at AS p_collected_at",
	).From("analyzed_posts ap").
		Join("raw_posts rp ON rp.id = ap.raw_post_id").
		OrderBy("ap.confidence DESC", "ap.id DESC").
		Limit(pageLimit(limit)).Offset(pageOffset(offset))
	if frustratedOnly {
		qb = qb.Where(sq.Eq{"ap.is_frustrated": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build analyzed posts query: %w", err)
	}

	var rows []analyzedWithPostSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get analyzed posts: %w", err)
	}

	res := make([]domain.AnalyzedPostWithRaw, len(rows))
	for i, row := range rows {
		res[i] = domain.AnalyzedPostWithRaw{
			AnalyzedPost: row.toDomain(),
			Post: domain.RawPost{
				ID:          row.RawPostID,
				Platform:    row.PostPlatform,
				PostID:      row.PostPostID,
				Title:       row.PostTitle,
				Content:     row.PostContent,
				Author:      row.PostAuthor,
				URL:         row.PostURL,
				Score:       row.PostScore,
				Group:       row.PostCommunity,
				CollectedAt: row.PostCollectedAt,
			},
		}
	}
	return res, nil
}
