package reservationsvc_test

import (
	"context"
	"testing"

	"libtrack/model"
	"libtrack/repository/upstream"
	reservationsvc "libtrack/service/reservation"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn       func(ctx context.Context, f reservationsvc.ListFilter) ([]model.Reservation, error)
	getFn        func(ctx context.Context, id int64) (*model.Reservation, error)
	listByUserFn func(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error)
	createFn     func(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error)
	updateFn     func(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error)
	cancelFn     func(ctx context.Context, id int64) (*model.Reservation, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *repoMock) List(ctx context.Context, f reservationsvc.ListFilter) ([]model.Reservation, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) ListByUser(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error) {
	return m.listByUserFn(ctx, userID, status)
}
func (m *repoMock) Create(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error) {
	return m.createFn(ctx, userID, target)
}
func (m *repoMock) Update(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error) {
	return m.updateFn(ctx, id, status, reason)
}
func (m *repoMock) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.cancelFn(ctx, id)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := reservationsvc.New(&repoMock{})
	ctx := context.Background()

	// both identifiers present
	_, err := s.Create(ctx, reservationsvc.CreateInput{UserID: 1, BookID: 5, ResearchPaperID: 9})
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))

	// neither identifier present
	_, err = s.Create(ctx, reservationsvc.CreateInput{UserID: 1})
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))

	// user id missing
	_, err = s.Create(ctx, reservationsvc.CreateInput{BookID: 5})
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error) {
			require.EqualValues(t, 1, userID)
			require.Equal(t, model.TypeBook, target.Type())
			require.EqualValues(t, 5, target.ID())
			return &model.Reservation{ID: 77, UserID: userID, BookID: 5, Type: model.TypeBook, Status: model.ReservationPending, Position: 1}, nil
		},
	}
	s := reservationsvc.New(m)
	res, err := s.Create(context.Background(), reservationsvc.CreateInput{UserID: 1, BookID: 5})
	require.NoError(t, err)
	require.Equal(t, model.ReservationPending, res.Status)
	require.EqualValues(t, 77, res.ID)
}

func TestUpdateStatus_ClosedSet(t *testing.T) {
	updated := 0
	m := &repoMock{
		updateFn: func(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error) {
			updated++
			return &model.Reservation{ID: id, Status: status, Reason: reason}, nil
		},
	}
	s := reservationsvc.New(m)
	ctx := context.Background()

	_, err := s.UpdateStatus(ctx, 3, "waitlisted", "")
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))

	// cancelled is not reachable through a status update
	_, err = s.UpdateStatus(ctx, 3, "cancelled", "")
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))

	// reject without reason
	_, err = s.Reject(ctx, 3, "")
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))
	require.Zero(t, updated, "no request may leave before validation passes")

	res, err := s.Approve(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, model.ReservationApproved, res.Status)

	res, err = s.Reject(ctx, 3, "damaged copy")
	require.NoError(t, err)
	require.Equal(t, model.ReservationRejected, res.Status)
	require.Equal(t, "damaged copy", res.Reason)
}

func TestCancel_FallsBackToDelete(t *testing.T) {
	deleted := int64(0)
	m := &repoMock{
		cancelFn: func(ctx context.Context, id int64) (*model.Reservation, error) {
			return nil, upstream.NewError(upstream.ErrNetwork, "cannot reach library service")
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	s := reservationsvc.New(m)
	res, err := s.Cancel(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, res)
	require.EqualValues(t, 42, deleted)
}

func TestCancel_PrefersCancelEndpoint(t *testing.T) {
	m := &repoMock{
		cancelFn: func(ctx context.Context, id int64) (*model.Reservation, error) {
			return &model.Reservation{ID: id, Status: model.ReservationCancelled}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			t.Fatal("delete must not run when cancel succeeds")
			return nil
		},
	}
	s := reservationsvc.New(m)
	res, err := s.Cancel(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, model.ReservationCancelled, res.Status)
}

func TestByStatus_Buckets(t *testing.T) {
	m := &repoMock{
		listByUserFn: func(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error) {
			return []model.Reservation{
				{ID: 1, Status: "Pending"},
				{ID: 2, Status: "Approved"},
				{ID: 3, Status: "Rejected"},
				{ID: 4, Status: "Pending"},
				{ID: 5, Status: "waitlisted"}, // unrecognized: All only
			}, nil
		},
	}
	s := reservationsvc.New(m)
	b, err := s.ByStatus(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, b.Pending, 2)
	require.Len(t, b.Approved, 1)
	require.Len(t, b.Rejected, 1)
	require.Len(t, b.All, 5)
}

func TestFindExisting_SkipsRejected(t *testing.T) {
	m := &repoMock{
		listByUserFn: func(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error) {
			return []model.Reservation{
				{ID: 1, BookID: 5, Type: model.TypeBook, Status: model.ReservationRejected},
				{ID: 2, BookID: 5, Type: model.TypeBook, Status: model.ReservationPending},
				{ID: 3, ResearchPaperID: 5, Type: model.TypeResearchPaper, Status: model.ReservationPending},
			}, nil
		},
	}
	s := reservationsvc.New(m)

	found, err := s.FindExisting(context.Background(), 1, model.BookTarget(5))
	require.NoError(t, err)
	require.NotNil(t, found)
	require.EqualValues(t, 2, found.ID, "rejected entry is skipped, types must not cross-match")

	found, err = s.FindExisting(context.Background(), 1, model.BookTarget(6))
	require.NoError(t, err)
	require.Nil(t, found)
}
