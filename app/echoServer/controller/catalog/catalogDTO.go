package catalog

import (
	"libtrack/model"

	"github.com/dustin/go-humanize"
)

// BookCardView is the browse-grid presenter: enough to render a card and the
// reserve button, nothing else.
type BookCardView struct {
	BatchKey      string  `json:"batch_registration_key"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	CoverImage    string  `json:"cover_image,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	TotalCopies     int `json:"total_copies"`
	AvailableCopies int `json:"available_copies"`
	BorrowedCopies  int `json:"borrowed_copies"`

	CanReserve    bool   `json:"can_reserve"`
	IsAvailable   bool   `json:"is_available"`
	LocationLabel string `json:"location_label"`
	AddedAgo      string `json:"added_ago,omitempty"`
}

// BookDetailView backs the detail modal: full static fields, the copy list
// and reviews.
type BookDetailView struct {
	model.ReservableBook

	AddedAgo string `json:"added_ago,omitempty"`
}

func toCards(books []model.ReservableBook) []BookCardView {
	out := make([]BookCardView, 0, len(books))
	for _, b := range books {
		out = append(out, BookCardView{
			BatchKey:        b.BatchKey,
			Title:           b.Title,
			Author:          b.Author,
			Genre:           b.Genre,
			CoverImage:      b.CoverImage,
			AverageRating:   b.AverageRating,
			RatingCount:     b.RatingCount,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			BorrowedCopies:  b.BorrowedCopies,
			CanReserve:      b.CanReserve,
			IsAvailable:     b.IsAvailable,
			LocationLabel:   b.LocationLabel,
			AddedAgo:        relTime(b),
		})
	}
	return out
}

func toDetail(b model.ReservableBook) BookDetailView {
	return BookDetailView{ReservableBook: b, AddedAgo: relTime(b)}
}

func relTime(b model.ReservableBook) string {
	if b.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(b.CreatedAt)
}
