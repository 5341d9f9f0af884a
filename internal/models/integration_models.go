package models

// JobBoard is static metadata for one external job-board integration.
// Only the API key value is persisted (as a setting); the metadata itself is
// compiled in. No integration performs real network calls.
type JobBoard struct {
	Name        string `json:"name"`
	KeyPrefix   string `json:"key_prefix"`
	NeedsAPIKey bool   `json:"needs_api_key"`
	NeedsOAuth  bool   `json:"needs_oauth"`
}

// JobBoards is the fixed set of known integrations.
var JobBoards = []JobBoard{
	{Name: "Indeed", KeyPrefix: "indeed", NeedsAPIKey: true, NeedsOAuth: false},
	{Name: "ZipRecruiter", KeyPrefix: "ziprecruiter", NeedsAPIKey: true, NeedsOAuth: false},
	{Name: "LinkedIn", KeyPrefix: "linkedin", NeedsAPIKey: false, NeedsOAuth: true},
	{Name: "Monster", KeyPrefix: "monster", NeedsAPIKey: true, NeedsOAuth: false},
}

// JobBoardByPrefix looks up an integration by its key prefix. Prefixes are
// case-sensitive.
func JobBoardByPrefix(prefix string) (JobBoard, bool) {
	for _, b := range JobBoards {
		if b.KeyPrefix == prefix {
			return b, true
		}
	}
	return JobBoard{}, false
}

// IntegrationStatus is a JobBoard together with whether an API key is
// currently stored for it.
type IntegrationStatus struct {
	JobBoard
	Configured bool `json:"configured"`
}

// ConnectionTest is the outcome of the stubbed connection check: it only
// reports whether a key is present. No request leaves the machine.
type ConnectionTest struct {
	Board      string `json:"board"`
	KeyPresent bool   `json:"key_present"`
	Simulated  bool   `json:"simulated"`
}
