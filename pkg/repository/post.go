package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Clapiton/socials/pkg/domain"
)

// ErrEmptyPost is returned when a post without title and content is offered for insert
var ErrEmptyPost = errors.New("post has no text")

// PostRepository handles raw post storage and the deduplicating insert
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

type rawPostSQL struct {
	ID          int64     `db:"id"`
	Platform    string    `db:"platform"`
	PostID      string    `db:"post_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	Author      string    `db:"author"`
	URL         string    `db:"url"`
	Score       int       `db:"score"`
	Community   string    `db:"community"`
	CollectedAt time.Time `db:"collected_at"`
}

const rawPostColumns = "id, platform, post_id, title, content, author, url, score, community, collected_at"

func (p rawPostSQL) toDomain() domain.RawPost {
	return domain.RawPost{
		ID:          p.ID,
		Platform:    p.Platform,
		PostID:      p.PostID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		URL:         p.URL,
		Score:       p.Score,
		Group:       p.Community,
		CollectedAt: p.CollectedAt,
	}
}

// InsertPost stores a post unless one with the same platform and post id exists.
// Returns the stored post with its id, or nil when the post is a duplicate. A uniqueness
// violation raised by a concurrent insert is reported as a duplicate too.
func (r *PostRepository) InsertPost(ctx context.Context, post domain.RawPost) (*domain.RawPost, error) {
	if strings.TrimSpace(post.Title) == "" && strings.TrimSpace(post.Content) == "" {
		return nil, ErrEmptyPost
	}

	exists, err := r.PostExists(ctx, post.Platform, post.PostID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	if post.CollectedAt.IsZero() {
		post.CollectedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO raw_posts (platform, post_id, title, content, author, url, score, community, collected_at)
		VALUES (:platform, :post_id, :title, :content, :author, :url, :score, :community, :collected_at)
	`
	row := rawPostSQL{
		Platform:    post.Platform,
		PostID:      post.PostID,
		Title:       post.Title,
		Content:     post.Content,
		Author:      post.Author,
		URL:         post.URL,
		Score:       post.Score,
		Community:   post.Group,
		CollectedAt: post.CollectedAt,
	}

	duplicate := false
	err = withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueError(err) {
				duplicate = true
				return nil
			}
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("insert post: %w", err)}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		post.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, nil
	}
	return &post, nil
}

// PostExists checks if a post with the given platform and native id is stored
func (r *PostRepository) PostExists(ctx context.Context, platform, postID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM raw_posts WHERE platform = ? AND post_id = ?)", platform, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// GetPost returns a post by id
func (r *PostRepository) GetPost(ctx context.Context, id int64) (*domain.RawPost, error) {
	var row rawPostSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+rawPostColumns+" FROM raw_posts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	p := row.toDomain()
	return &p, nil
}

// GetPosts returns posts ordered by collection time, newest first, optionally for one platform
func (r *PostRepository) GetPosts(ctx context.Context, filter domain.PostFilter) ([]domain.RawPost, error) {
	qb := sq.Select(rawPostColumns).From("raw_posts").
		OrderBy("collected_at DESC", "id DESC").
		Limit(pageLimit(filter.Limit)).Offset(pageOffset(filter.Offset))
	if filter.Platform != "" {
		qb = qb.Where(sq.Eq{"platform": filter.Platform})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build posts query: %w", err)
	}

	var rows []rawPostSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	return toDomainPosts(rows), nil
}

// GetUnanalyzedPosts returns up to limit posts lacking an analysis, most recently collected first
func (r *PostRepository) GetUnanalyzedPosts(ctx context.Context, limit int) ([]domain.RawPost, error) {
	query := `
		SELECT rp.id, rp.platform, rp.post_id, rp.title, rp.content, rp.author, rp.url,
		       rp.score, rp.community, rp.collected_at
		FROM raw_posts rp
		LEFT JOIN analyzed_posts ap ON ap.raw_post_id = rp.id
		WHERE ap.id IS NULL
		ORDER BY rp.collected_at DESC, rp.id DESC
		LIMIT ?
	`
	var rows []rawPostSQL
	if err := r.db.SelectContext(ctx, &rows, query, pageLimit(limit)); err != nil {
		return nil, fmt.Errorf("get unanalyzed posts: %w", err)
	}
	return toDomainPosts(rows), nil
}

func toDomainPosts(rows []rawPostSQL) []domain.RawPost {
	res := make([]domain.RawPost, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res
}
