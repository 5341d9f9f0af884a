package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"hr_ats_backend/internal/models"
)

// TemplateRepository defines the interface for email-template database
// operations. Templates are keyed by their unique name.
type TemplateRepository interface {
	CreateTemplate(executor SQLExecutor, template *models.EmailTemplate) (int64, error)
	GetTemplateByName(name string) (*models.EmailTemplate, error)
	GetTemplates() ([]models.EmailTemplate, error)
	// NameInUseByOther reports whether name belongs to a template other
	// than the one named exclude.
	NameInUseByOther(name, exclude string) (bool, error)
	UpdateTemplate(executor SQLExecutor, originalName string, template *models.EmailTemplate) error
	DeleteTemplate(executor SQLExecutor, name string) error
}

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new instance of TemplateRepository.
func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// CreateTemplate inserts a new email template.
func (r *templateRepository) CreateTemplate(executor SQLExecutor, template *models.EmailTemplate) (int64, error) {
	res, err := executor.Exec(
		"INSERT INTO email_templates (name, subject, body) VALUES (?, ?, ?)",
		template.Name, template.Subject, template.Body,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: template name %q: %v", ErrDuplicateKey, template.Name, err)
		}
		return 0, fmt.Errorf("%w: creating template: %v", ErrDatabaseError, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new template id: %v", ErrDatabaseError, err)
	}
	template.ID = id
	return id, nil
}

// GetTemplateByName retrieves a template by its unique name.
func (r *templateRepository) GetTemplateByName(name string) (*models.EmailTemplate, error) {
	template := &models.EmailTemplate{}
	err := r.db.QueryRow(
		"SELECT id, name, COALESCE(subject, ''), COALESCE(body, '') FROM email_templates WHERE name = ?",
		name,
	).Scan(&template.ID, &template.Name, &template.Subject, &template.Body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting template %q: %v", ErrDatabaseError, name, err)
	}
	return template, nil
}

// GetTemplates retrieves all templates ordered by name.
func (r *templateRepository) GetTemplates() ([]models.EmailTemplate, error) {
	rows, err := r.db.Query(
		"SELECT id, name, COALESCE(subject, ''), COALESCE(body, '') FROM email_templates ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing templates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	templates := []models.EmailTemplate{}
	for rows.Next() {
		var t models.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body); err != nil {
			return nil, fmt.Errorf("%w: scanning template: %v", ErrDatabaseError, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating templates: %v", ErrDatabaseError, err)
	}
	return templates, nil
}

// NameInUseByOther checks name uniqueness for renames, ignoring the template
// currently holding exclude.
func (r *templateRepository) NameInUseByOther(name, exclude string) (bool, error) {
	var one int
	err := r.db.QueryRow(
		"SELECT 1 FROM email_templates WHERE name = ? AND name != ?",
		name, exclude,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking template name %q: %v", ErrDatabaseError, name, err)
	}
	return true, nil
}

// UpdateTemplate rewrites the template currently named originalName,
// possibly renaming it.
func (r *templateRepository) UpdateTemplate(executor SQLExecutor, originalName string, template *models.EmailTemplate) error {
	res, err := executor.Exec(
		"UPDATE email_templates SET name = ?, subject = ?, body = ? WHERE name = ?",
		template.Name, template.Subject, template.Body, originalName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: template name %q: %v", ErrDuplicateKey, template.Name, err)
		}
		return fmt.Errorf("%w: updating template %q: %v", ErrDatabaseError, originalName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating template %q: %v", ErrDatabaseError, originalName, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTemplate removes a template by name. No cascading effects.
func (r *templateRepository) DeleteTemplate(executor SQLExecutor, name string) error {
	res, err := executor.Exec("DELETE FROM email_templates WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("%w: deleting template %q: %v", ErrDatabaseError, name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting template %q: %v", ErrDatabaseError, name, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
