package models

import "strings"

// EmailTemplate is a reusable subject/body pair keyed by a unique name.
// Subject and body may contain the placeholders {name} and {job}.
type EmailTemplate struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" binding:"required"`
	Subject string `json:"subject" db:"subject"`
	Body    string `json:"body" db:"body"`
}

// RenderedEmail is a template after placeholder substitution for one
// applicant.
type RenderedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Render substitutes every occurrence of {name} and {job} in the subject and
// body with the applicant's name and job title. This is literal string
// replacement, not a template language: no other tokens are recognized and
// braces in content cannot be escaped.
func (t EmailTemplate) Render(applicant *Applicant) RenderedEmail {
	replacer := strings.NewReplacer(
		"{name}", applicant.Name,
		"{job}", applicant.JobTitle(),
	)
	return RenderedEmail{
		Subject: replacer.Replace(t.Subject),
		Body:    replacer.Replace(t.Body),
	}
}

// DefaultTemplates are seeded on first run when the template table is empty.
var DefaultTemplates = []EmailTemplate{
	{
		Name:    "Interview Invite",
		Subject: "Interview Invitation – {job}",
		Body:    "Hi {name},\n\nWe would like to invite you to interview for the {job} position.\n\nBest regards,\nHR Team",
	},
	{
		Name:    "Offer Sent",
		Subject: "Job Offer – {job}",
		Body:    "Dear {name},\n\nCongratulations! We are pleased to offer you the {job} position.\n\nHR Team",
	},
	{
		Name:    "Rejection",
		Subject: "Application Update",
		Body:    "Dear {name},\n\nThank you for your interest in the {job} position.\n\nWe have decided to move forward with other candidates.\n\nBest wishes,\nHR Team",
	},
}
