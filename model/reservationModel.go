// model/reservation.go
package model

import (
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus matches case-insensitively. ok is false for values
// outside the closed set; callers keep the raw value for display.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ReservationPending:
		return ReservationPending, true
	case ReservationApproved:
		return ReservationApproved, true
	case ReservationRejected:
		return ReservationRejected, true
	case ReservationCancelled:
		return ReservationCancelled, true
	default:
		return ReservationStatus(s), false
	}
}

type ReservationType string

const (
	TypeBook          ReservationType = "book"
	TypeResearchPaper ReservationType = "research_paper"
)

// Target identifies the resource a reservation points at. The constructors
// are the only way to build a non-zero value, so a target referencing both a
// copy and a paper is unrepresentable.
type Target struct {
	typ ReservationType
	id  int64
}

func BookTarget(copyID int64) Target {
	return Target{typ: TypeBook, id: copyID}
}

func ResearchPaperTarget(paperID int64) Target {
	return Target{typ: TypeResearchPaper, id: paperID}
}

func (t Target) Type() ReservationType { return t.typ }
func (t Target) ID() int64             { return t.id }
func (t Target) IsZero() bool          { return t.typ == "" || t.id <= 0 }

// Reservation is the backend-owned lifecycle record. Exactly one of BookID
// and ResearchPaperID is set, per Type. Position is a display value coerced
// to >= 1 at the boundary, not a computed queue rank.
type Reservation struct {
	ID              int64             `json:"reservation_id"`
	UserID          int64             `json:"user_id"`
	BookID          int64             `json:"book_id,omitempty"`
	ResearchPaperID int64             `json:"research_paper_id,omitempty"`
	Type            ReservationType   `json:"reservation_type"`
	Status          ReservationStatus `json:"status"`
	Reason          string            `json:"reason,omitempty"`
	Position        int               `json:"position"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Target rebuilds the tagged union from the wire fields.
func (r Reservation) Target() Target {
	if r.Type == TypeResearchPaper || (r.BookID == 0 && r.ResearchPaperID != 0) {
		return ResearchPaperTarget(r.ResearchPaperID)
	}
	return BookTarget(r.BookID)
}

const (
	ReservationEntity = "reservation"
)
