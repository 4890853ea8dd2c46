package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Clapiton/socials/pkg/domain"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set setting %s: %w", key, err)}
		}
		return nil
	})
}

// SetSettings stores several values in one transaction
func (r *SettingRepository) SetSettings(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := time.Now().UTC()
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			k, values[k], now); err != nil {
			return fmt.Errorf("set setting %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// GetSettings returns all settings, seeding keys missing from the store with their defaults
func (r *SettingRepository) GetSettings(ctx context.Context) (domain.Settings, error) {
	var rows []domain.Setting
	if err := r.db.SelectContext(ctx, &rows, "SELECT key, value FROM settings"); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	res := make(domain.Settings, len(domain.DefaultSettings))
	for _, row := range rows {
		res[row.Key] = row.Value
	}

	now := time.Now().UTC()
	for k, v := range domain.DefaultSettings {
		if _, ok := res[k]; ok {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)", k, v, now); err != nil {
			return nil, fmt.Errorf("seed setting %s: %w", k, err)
		}
		res[k] = v
	}
	return res, nil
}
