package reservationsvc

import (
	"context"
	"log/slog"

	"libtrack/model"
	reservationrepo "libtrack/repository/reservation"
	"libtrack/repository/upstream"
)

type ListFilter = reservationrepo.ListFilter

type Repo interface {
	List(ctx context.Context, f ListFilter) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error)
	Create(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error)
	Update(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error)
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// StatusBuckets partitions a user's reservations for the status page.
// Reservations with statuses outside the three buckets (cancelled, or
// anything the backend invents later) stay visible in All only.
type StatusBuckets struct {
	Pending  []model.Reservation `json:"pending"`
	Approved []model.Reservation `json:"approved"`
	Rejected []model.Reservation `json:"rejected"`
	All      []model.Reservation `json:"all"`
}

// CreateInput carries the raw caller fields. Exactly one of BookID and
// ResearchPaperID must be set; Create rejects anything else before a
// request leaves this process.
type CreateInput struct {
	UserID          int64
	BookID          int64
	ResearchPaperID int64
}

type Service interface {
	List(ctx context.Context, f ListFilter) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	ByStatus(ctx context.Context, userID int64) (*StatusBuckets, error)
	FindExisting(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error)

	Create(ctx context.Context, in CreateInput) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status, reason string) (*model.Reservation, error)
	Approve(ctx context.Context, id int64) (*model.Reservation, error)
	Reject(ctx context.Context, id int64, reason string) (*model.Reservation, error)
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f ListFilter) ([]model.Reservation, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	if id <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "reservation id is required")
	}
	return s.r.Get(ctx, id)
}

func (s *service) ByStatus(ctx context.Context, userID int64) (*StatusBuckets, error) {
	if userID <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "user id is required")
	}
	all, err := s.r.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	b := &StatusBuckets{All: all}
	for _, r := range all {
		status, ok := model.ParseReservationStatus(string(r.Status))
		if !ok {
			continue
		}
		switch status {
		case model.ReservationPending:
			b.Pending = append(b.Pending, r)
		case model.ReservationApproved:
			b.Approved = append(b.Approved, r)
		case model.ReservationRejected:
			b.Rejected = append(b.Rejected, r)
		}
	}
	return b, nil
}

// FindExisting returns the first non-rejected reservation the user already
// holds on the target, or nil. Duplicate-prevention policy belongs to the
// caller; this is only the lookup.
func (s *service) FindExisting(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error) {
	if userID <= 0 || target.IsZero() {
		return nil, upstream.NewError(upstream.ErrValidation, "user id and target are required")
	}
	all, err := s.r.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.Status == model.ReservationRejected {
			continue
		}
		t := r.Target()
		if t.Type() == target.Type() && t.ID() == target.ID() {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if in.UserID <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "user id is required")
	}
	if in.BookID > 0 && in.ResearchPaperID > 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "reserve either a book or a research paper, not both")
	}
	var target model.Target
	switch {
	case in.BookID > 0:
		target = model.BookTarget(in.BookID)
	case in.ResearchPaperID > 0:
		target = model.ResearchPaperTarget(in.ResearchPaperID)
	default:
		return nil, upstream.NewError(upstream.ErrValidation, "a book or research paper id is required")
	}
	return s.r.Create(ctx, in.UserID, target)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status, reason string) (*model.Reservation, error) {
	if id <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "reservation id is required")
	}
	parsed, ok := model.ParseReservationStatus(status)
	if !ok || parsed == model.ReservationCancelled {
		return nil, upstream.NewError(upstream.ErrValidation, "status must be pending, approved or rejected")
	}
	if parsed == model.ReservationRejected && reason == "" {
		return nil, upstream.NewError(upstream.ErrValidation, "a reason is required to reject a reservation")
	}
	return s.r.Update(ctx, id, parsed, reason)
}

func (s *service) Approve(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.UpdateStatus(ctx, id, string(model.ReservationApproved), "")
}

func (s *service) Reject(ctx context.Context, id int64, reason string) (*model.Reservation, error) {
	return s.UpdateStatus(ctx, id, string(model.ReservationRejected), reason)
}

// Cancel prefers the backend's cancel endpoint, which also restores an
// approved copy to available. If that call fails for any reason it falls
// back to a hard delete: a user-initiated cancel must not be blocked by a
// transient failure of the richer endpoint, even at the cost of the
// copy-restoration side effect.
func (s *service) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	if id <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "reservation id is required")
	}
	res, err := s.r.Cancel(ctx, id)
	if err == nil {
		return res, nil
	}
	slog.Warn("cancel endpoint failed, falling back to delete", "reservation_id", id, "err", err)
	if err := s.r.Delete(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return upstream.NewError(upstream.ErrValidation, "reservation id is required")
	}
	return s.r.Delete(ctx, id)
}
