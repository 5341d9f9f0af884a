package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"hr_ats_backend/internal/models"
)

// SettingsRepository defines the interface for key/value setting storage.
type SettingsRepository interface {
	// GetSetting returns the stored value and whether the key exists.
	GetSetting(key string) (string, bool, error)
	// SetSetting upserts the key/value pair; a key always holds its last
	// written value.
	SetSetting(executor SQLExecutor, key, value string) error
	GetSettings() ([]models.Setting, error)
	DeleteSetting(executor SQLExecutor, key string) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSetting(key string) (string, bool, error) {
	var value sql.NullString
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: getting setting %q: %v", ErrDatabaseError, key, err)
	}
	return value.String, true, nil
}

func (r *settingsRepository) SetSetting(executor SQLExecutor, key, value string) error {
	if _, err := executor.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		key, value,
	); err != nil {
		return fmt.Errorf("%w: setting %q: %v", ErrDatabaseError, key, err)
	}
	return nil
}

func (r *settingsRepository) GetSettings() ([]models.Setting, error) {
	rows, err := r.db.Query("SELECT key, COALESCE(value, '') FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("%w: listing settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingsRepository) DeleteSetting(executor SQLExecutor, key string) error {
	res, err := executor.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("%w: deleting setting %q: %v", ErrDatabaseError, key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting setting %q: %v", ErrDatabaseError, key, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
