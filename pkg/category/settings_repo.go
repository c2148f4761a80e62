package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrSettingNotFound = errors.New("setting not found")

// SettingsRepo is a persisted key-value store of named text values, the
// durable home of the category registry.
type SettingsRepo interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name string, value string) error
}

type SettingsRepoImpl struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepoImpl {
	return &SettingsRepoImpl{db: db}
}

func (r *SettingsRepoImpl) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM settings WHERE name = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	} else if err != nil {
		err := fmt.Errorf("could not read setting %s: %w", name, err)
		log.Error(err)
		return "", err
	}

	return value, nil
}

func (r *SettingsRepoImpl) Set(ctx context.Context, name string, value string) error {
	query := `INSERT INTO settings (name, value) VALUES (?, ?)
              ON CONFLICT (name) DO UPDATE SET value = excluded.value`

	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		err := fmt.Errorf("could not store setting %s: %w", name, err)
		log.Error(err)
		return err
	}

	return nil
}
