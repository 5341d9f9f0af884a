package models

// Setting is an arbitrary string key/value pair. It covers both simple
// preferences (default_status) and per-integration secrets
// (<prefix>_api_key). Writes are upserts: a key always holds its last value.
type Setting struct {
	Key   string `json:"key" db:"key" binding:"required"`
	Value string `json:"value" db:"value"`
}

// SettingDefaultStatus stores the preferred initial pipeline stage.
const SettingDefaultStatus = "default_status"

// APIKeySetting returns the settings key holding the stored API key for a
// job-board integration prefix.
func APIKeySetting(prefix string) string {
	return prefix + "_api_key"
}
