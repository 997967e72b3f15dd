// model/book.go
package model

import (
	"strings"
	"time"
)

type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyBorrowed  CopyStatus = "borrowed"
	CopyReserved  CopyStatus = "reserved"
	CopyRemoved   CopyStatus = "removed"
)

// ParseCopyStatus decodes a backend status string once at the boundary.
// Unrecognized values fall back to available.
func ParseCopyStatus(s string) CopyStatus {
	switch CopyStatus(strings.ToLower(strings.TrimSpace(s))) {
	case CopyBorrowed:
		return CopyBorrowed
	case CopyReserved:
		return CopyReserved
	case CopyRemoved:
		return CopyRemoved
	default:
		return CopyAvailable
	}
}

// Copy is one physical instance of a registered title. The backend owns its
// status; this layer only observes it after a reload.
type Copy struct {
	ID         int64      `json:"id"`
	CopyNumber int        `json:"copy_number"`
	QRCode     string     `json:"qr_code,omitempty"`
	Status     CopyStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BookCopyRow is one flat row of the backend's book listing: a copy joined
// with the fields of its registration batch.
type BookCopyRow struct {
	Copy

	BatchKey       string        `json:"batch_registration_key"`
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Genre          string        `json:"genre"`
	Publisher      string        `json:"publisher,omitempty"`
	Edition        string        `json:"edition,omitempty"`
	Year           int           `json:"year,omitempty"`
	Price          float64       `json:"price,omitempty"`
	Donor          string        `json:"donor,omitempty"`
	CoverImage     string        `json:"cover_image,omitempty"`
	Location       ShelfLocation `json:"location"`
	AverageRating  float64       `json:"average_rating"`
	RatingCount    int           `json:"rating_count"`
	Reviews        []Review      `json:"reviews,omitempty"`
	BatchCreatedAt time.Time     `json:"batch_created_at"`
}

// BookGroup aggregates every copy sharing a batch registration key.
// Invariant: TotalCopies == Available + Borrowed + Reserved + Removed.
type BookGroup struct {
	BatchKey      string        `json:"batch_registration_key"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Genre         string        `json:"genre"`
	Publisher     string        `json:"publisher,omitempty"`
	Edition       string        `json:"edition,omitempty"`
	Year          int           `json:"year,omitempty"`
	Price         float64       `json:"price,omitempty"`
	Donor         string        `json:"donor,omitempty"`
	CoverImage    string        `json:"cover_image,omitempty"`
	Location      ShelfLocation `json:"location"`
	AverageRating float64       `json:"average_rating"`
	RatingCount   int           `json:"rating_count"`
	Reviews       []Review      `json:"reviews,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`

	Copies []Copy `json:"copies"`

	TotalCopies     int `json:"total_copies"`
	AvailableCopies int `json:"available_copies"`
	BorrowedCopies  int `json:"borrowed_copies"`
	ReservedCopies  int `json:"reserved_copies"`
	RemovedCopies   int `json:"removed_copies"`
}

// ReservableBook is a group annotated for the browse views. CanReserve means
// every free copy is out on loan, so a reservation queues for a return.
type ReservableBook struct {
	BookGroup

	CanReserve    bool   `json:"can_reserve"`
	IsAvailable   bool   `json:"is_available"`
	LocationLabel string `json:"location_label"`
}

const (
	BookEntity = "book"
)
