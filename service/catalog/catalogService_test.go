package catalogsvc_test

import (
	"context"
	"testing"
	"time"

	"libtrack/model"
	"libtrack/repository/upstream"
	catalogsvc "libtrack/service/catalog"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn  func(ctx context.Context) ([]model.BookCopyRow, error)
	batchFn func(ctx context.Context, batchKey string) ([]model.BookCopyRow, error)
	copyFn  func(ctx context.Context, copyID int64) (*model.BookCopyRow, error)
}

func (m *repoMock) ListBooks(ctx context.Context) ([]model.BookCopyRow, error) {
	return m.listFn(ctx)
}
func (m *repoMock) GetBatch(ctx context.Context, batchKey string) ([]model.BookCopyRow, error) {
	return m.batchFn(ctx, batchKey)
}
func (m *repoMock) GetCopy(ctx context.Context, copyID int64) (*model.BookCopyRow, error) {
	return m.copyFn(ctx, copyID)
}

func row(batchKey, title, genre string, copyID int64, status model.CopyStatus, batchAt time.Time) model.BookCopyRow {
	return model.BookCopyRow{
		Copy:           model.Copy{ID: copyID, Status: status, CreatedAt: batchAt},
		BatchKey:       batchKey,
		Title:          title,
		Author:         "Author of " + title,
		Genre:          genre,
		Publisher:      "Pub",
		BatchCreatedAt: batchAt,
	}
}

func TestGroupBooks_CountersAndOrder(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	rows := []model.BookCopyRow{
		row("B-1", "Go Basics", "Programming", 1, model.CopyAvailable, older),
		row("B-2", "Databases", "Programming", 10, model.CopyBorrowed, newer),
		row("B-1", "Go Basics", "Programming", 2, model.CopyBorrowed, older),
		row("B-1", "Go Basics", "Programming", 3, model.CopyReserved, older),
		row("B-2", "Databases", "Programming", 11, model.CopyRemoved, newer),
		row("B-1", "Go Basics", "Programming", 4, model.CopyAvailable, older),
	}

	groups := catalogsvc.GroupBooks(rows)
	require.Len(t, groups, 2)

	// newest batch first
	require.Equal(t, "B-2", groups[0].BatchKey)
	require.Equal(t, "B-1", groups[1].BatchKey)

	// record count preserved
	total := 0
	for _, g := range groups {
		total += g.TotalCopies
	}
	require.Equal(t, len(rows), total)

	// counter invariant per group
	for _, g := range groups {
		require.Equal(t, g.TotalCopies,
			g.AvailableCopies+g.BorrowedCopies+g.ReservedCopies+g.RemovedCopies,
			"counters must sum to total for %s", g.BatchKey)
	}

	b1 := groups[1]
	require.Equal(t, 4, b1.TotalCopies)
	require.Equal(t, 2, b1.AvailableCopies)
	require.Equal(t, 1, b1.BorrowedCopies)
	require.Equal(t, 1, b1.ReservedCopies)
	require.Equal(t, 0, b1.RemovedCopies)
	require.Len(t, b1.Copies, 4)
}

func TestGroupBooks_StableTieBreak(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.BookCopyRow{
		row("K-1", "First Seen", "History", 1, model.CopyAvailable, at),
		row("K-2", "Second Seen", "History", 2, model.CopyAvailable, at),
		row("K-3", "Third Seen", "History", 3, model.CopyAvailable, at),
	}
	groups := catalogsvc.GroupBooks(rows)
	require.Equal(t, []string{"K-1", "K-2", "K-3"},
		[]string{groups[0].BatchKey, groups[1].BatchKey, groups[2].BatchKey})
}

func TestReservable_FiltersAndFlags(t *testing.T) {
	at := time.Now()
	rows := []model.BookCopyRow{
		row("FREE", "Has Free Copy", "Sci", 1, model.CopyAvailable, at),
		row("LOAN", "All On Loan", "Sci", 2, model.CopyBorrowed, at),
		row("GONE", "All Removed", "Sci", 3, model.CopyRemoved, at),
		row("HELD", "All Reserved", "Sci", 4, model.CopyReserved, at),
	}
	out := catalogsvc.Reservable(catalogsvc.GroupBooks(rows))

	require.Len(t, out, 2)
	for _, b := range out {
		require.False(t, b.AvailableCopies == 0 && b.BorrowedCopies == 0)
		switch b.BatchKey {
		case "FREE":
			require.True(t, b.IsAvailable)
			require.False(t, b.CanReserve)
		case "LOAN":
			require.False(t, b.IsAvailable)
			require.True(t, b.CanReserve)
		default:
			t.Fatalf("unexpected group %s", b.BatchKey)
		}
	}
}

func TestReservable_LocationLabel(t *testing.T) {
	at := time.Now()
	r := row("L-1", "Shelved", "Sci", 1, model.CopyAvailable, at)
	r.Location = model.ShelfLocation{Shelf: 2, Row: 5}
	out := catalogsvc.Reservable(catalogsvc.GroupBooks([]model.BookCopyRow{r}))
	require.Len(t, out, 1)
	require.Equal(t, "Shelf 2, Row 5", out[0].LocationLabel)
}

func TestSearch_Filters(t *testing.T) {
	at := time.Now()
	groups := catalogsvc.GroupBooks([]model.BookCopyRow{
		row("A", "The Go Programming Language", "Programming", 1, model.CopyAvailable, at),
		row("B", "Clean Architecture", "Programming", 2, model.CopyBorrowed, at),
		row("C", "A Brief History of Time", "Science", 3, model.CopyAvailable, at),
	})

	// blank filter is a no-op
	require.Len(t, catalogsvc.Search(groups, catalogsvc.SearchFilter{}), 3)

	// query matches title, case-insensitive substring
	out := catalogsvc.Search(groups, catalogsvc.SearchFilter{Query: "go program"})
	require.Len(t, out, 1)
	require.Equal(t, "A", out[0].BatchKey)

	// query matches author too
	out = catalogsvc.Search(groups, catalogsvc.SearchFilter{Query: "author of clean"})
	require.Len(t, out, 1)
	require.Equal(t, "B", out[0].BatchKey)

	// category exact match unless "all"
	require.Len(t, catalogsvc.Search(groups, catalogsvc.SearchFilter{Category: "programming"}), 2)
	require.Len(t, catalogsvc.Search(groups, catalogsvc.SearchFilter{Category: "All"}), 3)
	require.Empty(t, catalogsvc.Search(groups, catalogsvc.SearchFilter{Category: "Prog"}))

	// availableOnly drops all-borrowed groups
	out = catalogsvc.Search(groups, catalogsvc.SearchFilter{Category: "Programming", AvailableOnly: true})
	require.Len(t, out, 1)
	require.Equal(t, "A", out[0].BatchKey)

	// filters are conjunctive
	require.Empty(t, catalogsvc.Search(groups, catalogsvc.SearchFilter{Query: "time", Category: "Programming"}))
}

func TestCategories(t *testing.T) {
	at := time.Now()
	groups := catalogsvc.GroupBooks([]model.BookCopyRow{
		row("A", "One", "Science", 1, model.CopyAvailable, at),
		row("B", "Two", "Programming", 2, model.CopyAvailable, at),
		row("C", "Three", "", 3, model.CopyAvailable, at),
		row("D", "Four", "Science", 4, model.CopyAvailable, at),
	})
	require.Equal(t, []string{"Programming", "Science"}, catalogsvc.Categories(groups))
}

func TestDetail_Validation(t *testing.T) {
	s := catalogsvc.New(&repoMock{})
	_, err := s.Detail(context.Background(), "  ")
	require.Error(t, err)
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))
}

func TestDetail_NotFound(t *testing.T) {
	s := catalogsvc.New(&repoMock{
		batchFn: func(ctx context.Context, batchKey string) ([]model.BookCopyRow, error) {
			return nil, nil
		},
	})
	book, err := s.Detail(context.Background(), "MISSING")
	require.NoError(t, err)
	require.Nil(t, book)
}

func TestBrowse_PassesThroughRepoError(t *testing.T) {
	boom := upstream.NewError(upstream.ErrNetwork, "cannot reach library service")
	s := catalogsvc.New(&repoMock{
		listFn: func(ctx context.Context) ([]model.BookCopyRow, error) { return nil, boom },
	})
	_, err := s.Browse(context.Background(), catalogsvc.SearchFilter{})
	require.Equal(t, upstream.ErrNetwork, upstream.Code(err))
}
