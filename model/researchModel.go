package model

import (
	"strings"
	"time"
)

// ResearchPaper is a single, non-multi-copy resource. It is read in place;
// a reservation only queues access, so status is nominally always available.
type ResearchPaper struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Authors       string        `json:"authors"`
	Department    string        `json:"department"`
	Year          int           `json:"publication_year,omitempty"`
	Abstract      string        `json:"abstract,omitempty"`
	Price         float64       `json:"price,omitempty"`
	QRCode        string        `json:"qr_code,omitempty"`
	CoverImage    string        `json:"cover_image,omitempty"`
	Location      ShelfLocation `json:"location"`
	Status        CopyStatus    `json:"status"`
	AverageRating float64       `json:"average_rating"`
	RatingCount   int           `json:"rating_count"`
	Reviews       []Review      `json:"reviews,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ResearchListing is a paper annotated for the browse views. Papers are
// surfaced as available; a reserved status only blocks reserving it again,
// the backend stays authoritative.
type ResearchListing struct {
	ResearchPaper

	IsAvailable   bool   `json:"is_available"`
	CanReserve    bool   `json:"can_reserve"`
	QRImage       string `json:"qr_image,omitempty"`
	LocationLabel string `json:"location_label"`
}

// InlineQRImage turns a raw QR payload into an inline image reference. Values
// that are already URIs pass through untouched.
func InlineQRImage(qr string) string {
	if qr == "" {
		return ""
	}
	if strings.HasPrefix(qr, "data:") || strings.HasPrefix(qr, "http://") || strings.HasPrefix(qr, "https://") {
		return qr
	}
	return "data:image/png;base64," + qr
}

const (
	ResearchPaperEntity = "research_paper"
)
