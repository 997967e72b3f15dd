package reservation

import (
	"libtrack/model"

	"github.com/dustin/go-humanize"
)

type CreateReservationReq struct {
	BookID          int64 `json:"book_id" validate:"omitempty,gt=0"`
	ResearchPaperID int64 `json:"research_paper_id" validate:"omitempty,gt=0"`
}

type CancelReservationReq struct {
	Confirm bool `json:"confirm"`
}

type UpdateReservationReq struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type RejectReservationReq struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ReservationView is the row presenter: the record plus display-only fields
// the page shows next to it.
type ReservationView struct {
	model.Reservation

	ReservedAgo string `json:"reserved_ago,omitempty"`
	UpdatedAgo  string `json:"updated_ago,omitempty"`
}

func toView(r model.Reservation) ReservationView {
	v := ReservationView{Reservation: r}
	if !r.CreatedAt.IsZero() {
		v.ReservedAgo = humanize.Time(r.CreatedAt)
	}
	if !r.UpdatedAt.IsZero() {
		v.UpdatedAgo = humanize.Time(r.UpdatedAt)
	}
	return v
}

func toViews(rows []model.Reservation) []ReservationView {
	out := make([]ReservationView, 0, len(rows))
	for _, r := range rows {
		out = append(out, toView(r))
	}
	return out
}
