package models

// Applicant represents a candidate tracked through the hiring pipeline.
// Date fields are stored as ISO strings (YYYY-MM-DD) to match the on-disk
// schema; they are never parsed except for dashboard window queries.
type Applicant struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name" binding:"required"`
	Email         string  `json:"email" db:"email" binding:"required"`
	Phone         *string `json:"phone,omitempty" db:"phone"`
	Job           *string `json:"job,omitempty" db:"job"`
	Status        string  `json:"status" db:"status"`
	Notes         *string `json:"notes,omitempty" db:"notes"`
	InterviewDate *string `json:"interview_date,omitempty" db:"interview_date"`
	AppliedDate   string  `json:"applied_date" db:"applied_date"`
	HiredDate     *string `json:"hired_date,omitempty" db:"hired_date"`
	Source        string  `json:"source" db:"source"`
}

// JobTitle returns the applicant's job title, or "" when none is set.
func (a *Applicant) JobTitle() string {
	if a.Job == nil {
		return ""
	}
	return *a.Job
}

// HistoryEntry is one append-only audit record for an applicant.
// Entries are never updated; they are removed only by the cascade when the
// owning applicant is deleted.
type HistoryEntry struct {
	ID          int64  `json:"id" db:"id"`
	ApplicantID int64  `json:"applicant_id" db:"applicant_id"`
	Date        string `json:"date" db:"date"`
	Change      string `json:"change" db:"change"`
}

// Stages is the canonical pipeline, in order. Status writes through the
// service layer are restricted to this set; the store itself keeps status as
// plain text so legacy or imported values survive reads unchanged.
var Stages = []string{
	"Applied",
	"Screening",
	"Interview",
	"Background Check",
	"Offer",
	"Hired",
	"Rejected",
}

// DefaultStatus is the stage assigned to newly created applicants.
const DefaultStatus = "Applied"

// DefaultSource tags applicants entered by hand.
const DefaultSource = "Manual"

// IsKnownStage reports whether status is one of the canonical pipeline
// stages. Unknown values are preserved, not rejected; callers use this to
// tag them as legacy.
func IsKnownStage(status string) bool {
	for _, s := range Stages {
		if s == status {
			return true
		}
	}
	return false
}
