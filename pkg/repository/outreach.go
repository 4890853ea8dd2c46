package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Clapiton/socials/pkg/domain"
)

// OutreachRepository stores logged outreach attempts
type OutreachRepository struct {
	db *sqlx.DB
}

// NewOutreachRepository creates a new outreach repository
func NewOutreachRepository(db *sqlx.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

type outreachSQL struct {
	ID               int64     `db:"id"`
	AnalyzedPostID   int64     `db:"analyzed_post_id"`
	Channel          string    `db:"channel"`
	MessageSent      string    `db:"message_sent"`
	Status           string    `db:"status"`
	ResponseReceived string    `db:"response_received"`
	SentAt           time.Time `db:"sent_at"`
}

// CreateOutreach logs an outreach attempt and sets its id
func (r *OutreachRepository) CreateOutreach(ctx context.Context, o *domain.Outreach) error {
	if o.SentAt.IsZero() {
		o.SentAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = domain.OutreachSent
	}
	if o.Channel == "" {
		o.Channel = "manual"
	}
	row := outreachSQL{
		AnalyzedPostID:   o.AnalyzedPostID,
		Channel:          o.Channel,
		MessageSent:      o.MessageSent,
		Status:           o.Status,
		ResponseReceived: o.ResponseReceived,
		SentAt:           o.SentAt,
	}
	query := `
		INSERT INTO outreach (analyzed_post_id, channel, message_sent, status, response_received, sent_at)
		VALUES (:analyzed_post_id, :channel, :message_sent, :status, :response_received, :sent_at)
	`
	return withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create outreach: %w", err)}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		o.ID = id
		return nil
	})
}

// UpdateOutreachStatus sets the status and the received response of an outreach entry
func (r *OutreachRepository) UpdateOutreachStatus(ctx context.Context, id int64, status, response string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE outreach SET status = ?, response_received = ? WHERE id = ?", status, response, id)
	if err != nil {
		return fmt.Errorf("update outreach status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("outreach %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetOutreach returns logged outreach, newest first
func (r *OutreachRepository) GetOutreach(ctx context.Context, limit, offset int) ([]domain.Outreach, error) {
	query, args, err := sq.Select("id", "analyzed_post_id", "channel", "message_sent", "status",
		"response_received", "sent_at").
		From("outreach").
		OrderBy("sent_at DESC", "id DESC").
		Limit(pageLimit(limit)).Offset(pageOffset(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outreach query: %w", err)
	}

	var rows []outreachSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get outreach: %w", err)
	}
	res := make([]domain.Outreach, len(rows))
	for i, row := range rows {
		res[i] = domain.Outreach{
			ID:               row.ID,
			AnalyzedPostID:   row.AnalyzedPostID,
			Channel:          row.Channel,
			MessageSent:      row.MessageSent,
			Status:           row.Status,
			ResponseReceived: row.ResponseReceived,
			SentAt:           row.SentAt,
		}
	}
	return res, nil
}
