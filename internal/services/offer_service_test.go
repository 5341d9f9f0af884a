package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hr_ats_backend/internal/models"
)

func TestGenerateOffer(t *testing.T) {
	svc := NewOfferService()

	t.Run("produces a PDF with the conventional filename", func(t *testing.T) {
		letter, err := svc.GenerateOffer(&models.Applicant{
			Name: "Jane Mary Doe",
			Job:  strPtr("Engineer"),
		})
		require.NoError(t, err)

		today := time.Now().Format("2006-01-02")
		require.Equal(t, fmt.Sprintf("Offer_Jane_Mary_Doe_%s.pdf", today), letter.Filename)

		require.Greater(t, len(letter.Content), 4)
		require.Equal(t, "%PDF", string(letter.Content[:4]))
	})

	t.Run("requires name and job", func(t *testing.T) {
		_, err := svc.GenerateOffer(&models.Applicant{Name: "Jane Doe"})
		require.ErrorIs(t, err, ErrOfferMissingFields)

		_, err = svc.GenerateOffer(&models.Applicant{Job: strPtr("Engineer")})
		require.ErrorIs(t, err, ErrOfferMissingFields)
	})
}
