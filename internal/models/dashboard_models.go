package models

// UpcomingInterview is one row of the dashboard's next-7-days interview list.
type UpcomingInterview struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Job           *string `json:"job,omitempty" db:"job"`
	InterviewDate string  `json:"interview_date" db:"interview_date"`
}

// DashboardSummary aggregates the pipeline for the dashboard view.
type DashboardSummary struct {
	Total              int                 `json:"total"`
	StatusCounts       map[string]int      `json:"status_counts"`
	UpcomingInterviews []UpcomingInterview `json:"upcoming_interviews"`
	RecentlyAdded      []Applicant         `json:"recently_added"`
}
