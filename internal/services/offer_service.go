package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"hr_ats_backend/internal/models"
)

// --- Custom Service Errors for Offers ---
var (
	// ErrOfferMissingFields is returned when the applicant lacks the name
	// or job title the letter text requires.
	ErrOfferMissingFields = errors.New("name and job title are required for an offer letter")
)

// OfferLetter is a generated offer PDF with its conventional filename
// (Offer_<name with underscores>_<date>.pdf).
type OfferLetter struct {
	Filename string
	Content  []byte
}

// --- OfferService Interface ---
type OfferService interface {
	GenerateOffer(applicant *models.Applicant) (*OfferLetter, error)
}

type offerService struct{}

// NewOfferService creates a new instance of OfferService.
func NewOfferService() OfferService {
	return &offerService{}
}

// GenerateOffer renders the single-page offer letter. The line texts and
// their positions are a fixed external contract; dates use today's date.
func (s *offerService) GenerateOffer(applicant *models.Applicant) (*OfferLetter, error) {
	job := applicant.JobTitle()
	if applicant.Name == "" || job == "" {
		return nil, ErrOfferMissingFields
	}
	today := isoDate(time.Now())

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	// Letter is 792pt tall; the y offsets mirror the original layout
	// measured from the bottom of the page (750, 710, ... at x=80).
	lines := []struct {
		y    float64
		text string
	}{
		{42, "Offer of Employment"},
		{82, fmt.Sprintf("Dear %s,", applicant.Name)},
		{122, fmt.Sprintf("We are pleased to offer you the %s position.", job)},
		{162, "We look forward to working with you!"},
		{202, fmt.Sprintf("Date: %s", today)},
	}
	for _, line := range lines {
		pdf.Text(80, line.y, line.text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering offer PDF: %w", err)
	}

	return &OfferLetter{
		Filename: fmt.Sprintf("Offer_%s_%s.pdf", strings.ReplaceAll(applicant.Name, " ", "_"), today),
		Content:  buf.Bytes(),
	}, nil
}
