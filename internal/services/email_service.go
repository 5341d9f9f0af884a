package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"hr_ats_backend/internal/models"
)

// --- Custom Service Errors for Email ---
var (
	ErrNoEmailAddress = errors.New("applicant has no email address")
)

// ComposedEmail is a rendered template plus the mailto URI the frontend
// hands to the platform's default mail client. No mail is sent here.
type ComposedEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// --- EmailService Interface ---
type EmailService interface {
	ComposeEmail(applicant *models.Applicant, templateName string) (*ComposedEmail, error)
}

// --- emailService Implementation ---
type emailService struct {
	templateService TemplateService
}

// NewEmailService creates a new instance of EmailService.
func NewEmailService(templateService TemplateService) EmailService {
	return &emailService{templateService: templateService}
}

// ComposeEmail renders the named template for the applicant and builds the
// mailto URI with URL-encoded subject and body.
func (s *emailService) ComposeEmail(applicant *models.Applicant, templateName string) (*ComposedEmail, error) {
	if applicant.Email == "" {
		return nil, ErrNoEmailAddress
	}

	rendered, err := s.templateService.RenderForApplicant(templateName, applicant)
	if err != nil {
		return nil, err
	}

	mailto := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		applicant.Email, mailtoEscape(rendered.Subject), mailtoEscape(rendered.Body))

	return &ComposedEmail{
		To:      applicant.Email,
		Subject: rendered.Subject,
		Body:    rendered.Body,
		Mailto:  mailto,
	}, nil
}

// mailtoEscape percent-encodes a query value for a mailto URI. Mail clients
// expect %20 for spaces, not the + form query encoding produces.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
