package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/repositories"
)

// --- Custom Service Errors for Settings / Integrations ---
var (
	ErrSettingValidation        = errors.New("setting data validation error")
	ErrIntegrationNotFound      = errors.New("unknown job board integration")
	ErrIntegrationNotConfigured = errors.New("integration has no API key configured")
)

// --- SettingsService Interface ---
type SettingsService interface {
	GetSetting(key, defaultValue string) (string, error)
	SetSetting(key, value string) error
	GetSettings() ([]models.Setting, error)

	ListIntegrations() ([]models.IntegrationStatus, error)
	// ConfigureIntegration stores the API key for a job board under
	// <prefix>_api_key. An empty key clears the configuration.
	ConfigureIntegration(prefix, apiKey string) error
	// TestIntegration is a deliberate stub: it checks key presence only
	// and performs no network call.
	TestIntegration(prefix string) (*models.ConnectionTest, error)
}

// --- settingsService Implementation ---
type settingsService struct {
	settingsRepo repositories.SettingsRepository
	db           *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(settingsRepo repositories.SettingsRepository, db *sql.DB) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, db: db}
}

// GetSetting returns the stored value, or defaultValue when the key is
// absent.
func (s *settingsService) GetSetting(key, defaultValue string) (string, error) {
	value, found, err := s.settingsRepo.GetSetting(key)
	if err != nil {
		return "", err
	}
	if !found {
		return defaultValue, nil
	}
	return value, nil
}

// SetSetting upserts a key/value pair.
func (s *settingsService) SetSetting(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: setting key is required", ErrSettingValidation)
	}
	return s.settingsRepo.SetSetting(s.db, key, value)
}

// GetSettings lists all stored settings.
func (s *settingsService) GetSettings() ([]models.Setting, error) {
	return s.settingsRepo.GetSettings()
}

// ListIntegrations returns the fixed job-board set, each tagged with whether
// an API key is currently stored. The metadata itself is never persisted.
func (s *settingsService) ListIntegrations() ([]models.IntegrationStatus, error) {
	statuses := make([]models.IntegrationStatus, 0, len(models.JobBoards))
	for _, board := range models.JobBoards {
		key, err := s.GetSetting(models.APIKeySetting(board.KeyPrefix), "")
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, models.IntegrationStatus{
			JobBoard:   board,
			Configured: key != "",
		})
	}
	return statuses, nil
}

// ConfigureIntegration stores the trimmed API key for a known board.
func (s *settingsService) ConfigureIntegration(prefix, apiKey string) error {
	if _, ok := models.JobBoardByPrefix(prefix); !ok {
		return fmt.Errorf("%w: %q", ErrIntegrationNotFound, prefix)
	}
	return s.settingsRepo.SetSetting(s.db, models.APIKeySetting(prefix), strings.TrimSpace(apiKey))
}

// TestIntegration reports simulated connectivity. It fails only when the
// board's metadata requires an API key and none is stored.
func (s *settingsService) TestIntegration(prefix string) (*models.ConnectionTest, error) {
	board, ok := models.JobBoardByPrefix(prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIntegrationNotFound, prefix)
	}

	key, err := s.GetSetting(models.APIKeySetting(prefix), "")
	if err != nil {
		return nil, err
	}
	if key == "" && board.NeedsAPIKey {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotConfigured, board.Name)
	}
	return &models.ConnectionTest{
		Board:      board.Name,
		KeyPresent: key != "",
		Simulated:  true,
	}, nil
}
