package reservationrepo

import (
	"context"

	"libtrack/model"
)

// ListFilter narrows reservation listings. Zero values are no-ops, matching
// the backend's optional query parameters.
type ListFilter struct {
	UserID int64
	Status model.ReservationStatus
}

// Repo wraps the backend's reservation endpoints. Each call issues exactly
// one request; nothing here retries.
type Repo interface {
	List(ctx context.Context, f ListFilter) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error)
	Create(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error)
	Update(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error)
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error
}
