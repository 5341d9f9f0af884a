package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/repositories"
)

// --- Custom Service Errors for Templates ---
var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateNameExists = errors.New("template name already exists")
	ErrTemplateValidation = errors.New("template data validation error")
)

// --- Template DTOs ---
type SaveTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// --- TemplateService Interface ---
type TemplateService interface {
	CreateTemplate(req SaveTemplateRequest) (*models.EmailTemplate, error)
	GetTemplates() ([]models.EmailTemplate, error)
	GetTemplateByName(name string) (*models.EmailTemplate, error)
	// UpdateTemplate rewrites (and possibly renames) the template
	// currently stored under originalName.
	UpdateTemplate(originalName string, req SaveTemplateRequest) (*models.EmailTemplate, error)
	DeleteTemplate(name string) error
	// RenderForApplicant substitutes {name} and {job} for the applicant.
	RenderForApplicant(templateName string, applicant *models.Applicant) (*models.RenderedEmail, error)
}

// --- templateService Implementation ---
type templateService struct {
	templateRepo repositories.TemplateRepository
	db           *sql.DB
}

// NewTemplateService creates a new instance of TemplateService.
func NewTemplateService(templateRepo repositories.TemplateRepository, db *sql.DB) TemplateService {
	return &templateService{templateRepo: templateRepo, db: db}
}

// CreateTemplate stores a new template; the name must not collide with any
// existing template.
func (s *templateService) CreateTemplate(req SaveTemplateRequest) (*models.EmailTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrTemplateValidation)
	}

	template := &models.EmailTemplate{Name: name, Subject: req.Subject, Body: req.Body}
	if _, err := s.templateRepo.CreateTemplate(s.db, template); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNameExists, name)
		}
		return nil, err
	}
	return template, nil
}

// GetTemplates lists all templates ordered by name.
func (s *templateService) GetTemplates() ([]models.EmailTemplate, error) {
	return s.templateRepo.GetTemplates()
}

// GetTemplateByName fetches a single template.
func (s *templateService) GetTemplateByName(name string) (*models.EmailTemplate, error) {
	template, err := s.templateRepo.GetTemplateByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// UpdateTemplate rewrites originalName's template. A rename re-validates
// uniqueness against every template except the one being renamed.
func (s *templateService) UpdateTemplate(originalName string, req SaveTemplateRequest) (*models.EmailTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrTemplateValidation)
	}

	if name != originalName {
		inUse, err := s.templateRepo.NameInUseByOther(name, originalName)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNameExists, name)
		}
	}

	template := &models.EmailTemplate{Name: name, Subject: req.Subject, Body: req.Body}
	if err := s.templateRepo.UpdateTemplate(s.db, originalName, template); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNameExists, name)
		}
		return nil, err
	}
	return s.templateRepo.GetTemplateByName(name)
}

// DeleteTemplate removes a template by name.
func (s *templateService) DeleteTemplate(name string) error {
	err := s.templateRepo.DeleteTemplate(s.db, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

// RenderForApplicant renders the named template against the applicant.
func (s *templateService) RenderForApplicant(templateName string, applicant *models.Applicant) (*models.RenderedEmail, error) {
	template, err := s.GetTemplateByName(templateName)
	if err != nil {
		return nil, err
	}
	rendered := template.Render(applicant)
	return &rendered, nil
}
