package research

import (
	"libtrack/model"

	"github.com/dustin/go-humanize"
)

type PaperCardView struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Authors       string  `json:"authors"`
	Department    string  `json:"department"`
	Year          int     `json:"publication_year,omitempty"`
	CoverImage    string  `json:"cover_image,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	IsAvailable   bool   `json:"is_available"`
	CanReserve    bool   `json:"can_reserve"`
	LocationLabel string `json:"location_label"`
	AddedAgo      string `json:"added_ago,omitempty"`
}

type PaperDetailView struct {
	model.ResearchListing

	AddedAgo string `json:"added_ago,omitempty"`
}

func toCards(papers []model.ResearchListing) []PaperCardView {
	out := make([]PaperCardView, 0, len(papers))
	for _, p := range papers {
		out = append(out, PaperCardView{
			ID:            p.ID,
			Title:         p.Title,
			Authors:       p.Authors,
			Department:    p.Department,
			Year:          p.Year,
			CoverImage:    p.CoverImage,
			AverageRating: p.AverageRating,
			RatingCount:   p.RatingCount,
			IsAvailable:   p.IsAvailable,
			CanReserve:    p.CanReserve,
			LocationLabel: p.LocationLabel,
			AddedAgo:      relTime(p),
		})
	}
	return out
}

func toDetail(p model.ResearchListing) PaperDetailView {
	return PaperDetailView{ResearchListing: p, AddedAgo: relTime(p)}
}

func relTime(p model.ResearchListing) string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(p.CreatedAt)
}
