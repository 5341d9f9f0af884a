package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/repositories"
)

func newTemplateFixture(t *testing.T) TemplateService {
	t.Helper()
	db := newTestDB(t)
	return NewTemplateService(repositories.NewTemplateRepository(db), db)
}

func TestDefaultTemplatesSeeded(t *testing.T) {
	svc := newTemplateFixture(t)

	templates, err := svc.GetTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 3)

	// Listing is ordered by name.
	require.Equal(t, "Interview Invite", templates[0].Name)
	require.Equal(t, "Offer Sent", templates[1].Name)
	require.Equal(t, "Rejection", templates[2].Name)

	invite, err := svc.GetTemplateByName("Interview Invite")
	require.NoError(t, err)
	require.Equal(t, "Interview Invitation – {job}", invite.Subject)
}

func TestRenderForApplicant(t *testing.T) {
	svc := newTemplateFixture(t)

	t.Run("substitutes name and job everywhere", func(t *testing.T) {
		applicant := &models.Applicant{Name: "Jane Doe", Job: strPtr("Engineer")}

		rendered, err := svc.RenderForApplicant("Offer Sent", applicant)
		require.NoError(t, err)
		require.Equal(t, "Job Offer – Engineer", rendered.Subject)
		require.Contains(t, rendered.Body, "Dear Jane Doe,")
		require.Contains(t, rendered.Body, "offer you the Engineer position")
		require.NotContains(t, rendered.Body, "{name}")
		require.NotContains(t, rendered.Body, "{job}")
	})

	t.Run("missing job renders as empty string", func(t *testing.T) {
		applicant := &models.Applicant{Name: "Jane Doe"}

		rendered, err := svc.RenderForApplicant("Offer Sent", applicant)
		require.NoError(t, err)
		require.Equal(t, "Job Offer – ", rendered.Subject)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := svc.RenderForApplicant("No Such", &models.Applicant{Name: "x"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestCreateTemplate(t *testing.T) {
	svc := newTemplateFixture(t)

	created, err := svc.CreateTemplate(SaveTemplateRequest{
		Name:    "Follow Up",
		Subject: "Checking in, {name}",
		Body:    "Hello {name}",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	t.Run("duplicate name leaves original unmodified", func(t *testing.T) {
		_, err := svc.CreateTemplate(SaveTemplateRequest{Name: "Follow Up", Subject: "other"})
		require.ErrorIs(t, err, ErrTemplateNameExists)

		stored, err := svc.GetTemplateByName("Follow Up")
		require.NoError(t, err)
		require.Equal(t, "Checking in, {name}", stored.Subject)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.CreateTemplate(SaveTemplateRequest{Name: "   "})
		require.ErrorIs(t, err, ErrTemplateValidation)
	})
}

func TestUpdateTemplate(t *testing.T) {
	t.Run("edit in place", func(t *testing.T) {
		svc := newTemplateFixture(t)

		updated, err := svc.UpdateTemplate("Rejection", SaveTemplateRequest{
			Name:    "Rejection",
			Subject: "Your application",
			Body:    "Dear {name}, thank you.",
		})
		require.NoError(t, err)
		require.Equal(t, "Your application", updated.Subject)
	})

	t.Run("rename to a free name", func(t *testing.T) {
		svc := newTemplateFixture(t)

		_, err := svc.UpdateTemplate("Rejection", SaveTemplateRequest{
			Name:    "Polite Rejection",
			Subject: "Application Update",
		})
		require.NoError(t, err)

		_, err = svc.GetTemplateByName("Rejection")
		require.ErrorIs(t, err, ErrTemplateNotFound)

		renamed, err := svc.GetTemplateByName("Polite Rejection")
		require.NoError(t, err)
		require.Equal(t, "Application Update", renamed.Subject)
	})

	t.Run("rename onto an existing name is rejected", func(t *testing.T) {
		svc := newTemplateFixture(t)

		_, err := svc.UpdateTemplate("Rejection", SaveTemplateRequest{Name: "Offer Sent"})
		require.ErrorIs(t, err, ErrTemplateNameExists)

		// Both templates survive untouched.
		templates, err := svc.GetTemplates()
		require.NoError(t, err)
		require.Len(t, templates, 3)
	})

	t.Run("missing template", func(t *testing.T) {
		svc := newTemplateFixture(t)
		_, err := svc.UpdateTemplate("No Such", SaveTemplateRequest{Name: "No Such"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTemplateFixture(t)

	require.NoError(t, svc.DeleteTemplate("Rejection"))

	_, err := svc.GetTemplateByName("Rejection")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	require.ErrorIs(t, svc.DeleteTemplate("Rejection"), ErrTemplateNotFound)

	templates, err := svc.GetTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 2)
}
