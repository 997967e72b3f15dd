package catalogsvc

import (
	"context"
	"sort"
	"strings"

	"libtrack/model"
	"libtrack/repository/upstream"
)

type Repo interface {
	ListBooks(ctx context.Context) ([]model.BookCopyRow, error)
	GetBatch(ctx context.Context, batchKey string) ([]model.BookCopyRow, error)
	GetCopy(ctx context.Context, copyID int64) (*model.BookCopyRow, error)
}

// SearchFilter is applied conjunctively; blank fields are no-ops.
type SearchFilter struct {
	Query         string
	Category      string
	Author        string
	AvailableOnly bool
}

type Service interface {
	// Browse lists reservable title groups, filtered.
	Browse(ctx context.Context, f SearchFilter) ([]model.ReservableBook, error)

	// Detail loads one title group by its batch registration key.
	Detail(ctx context.Context, batchKey string) (*model.ReservableBook, error)

	// Categories lists the distinct non-blank genres across the catalog.
	Categories(ctx context.Context) ([]string, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Browse(ctx context.Context, f SearchFilter) ([]model.ReservableBook, error) {
	rows, err := s.r.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return Reservable(Search(GroupBooks(rows), f)), nil
}

func (s *service) Detail(ctx context.Context, batchKey string) (*model.ReservableBook, error) {
	if strings.TrimSpace(batchKey) == "" {
		return nil, upstream.NewError(upstream.ErrValidation, "batch registration key is required")
	}
	rows, err := s.r.GetBatch(ctx, batchKey)
	if err != nil {
		return nil, err
	}
	groups := GroupBooks(rows)
	if len(groups) == 0 {
		return nil, nil
	}
	out := annotate(groups[0])
	return &out, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.r.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(GroupBooks(rows)), nil
}

// GroupBooks folds flat per-copy rows into per-title groups in one stable
// left-to-right pass keyed by batch registration key. The first occurrence
// seeds the static fields; every occurrence appends a copy and bumps exactly
// one status counter. Groups come out newest batch first.
func GroupBooks(rows []model.BookCopyRow) []model.BookGroup {
	byKey := make(map[string]int, len(rows))
	groups := make([]model.BookGroup, 0, len(rows))

	for _, row := range rows {
		idx, seen := byKey[row.BatchKey]
		if !seen {
			groups = append(groups, model.BookGroup{
				BatchKey:      row.BatchKey,
				Title:         row.Title,
				Author:        row.Author,
				Genre:         row.Genre,
				Publisher:     row.Publisher,
				Edition:       row.Edition,
				Year:          row.Year,
				Price:         row.Price,
				Donor:         row.Donor,
				CoverImage:    row.CoverImage,
				Location:      row.Location,
				AverageRating: row.AverageRating,
				RatingCount:   row.RatingCount,
				Reviews:       row.Reviews,
				CreatedAt:     row.BatchCreatedAt,
			})
			idx = len(groups) - 1
			byKey[row.BatchKey] = idx
		}
		g := &groups[idx]
		g.Copies = append(g.Copies, row.Copy)
		g.TotalCopies++
		switch row.Copy.Status {
		case model.CopyBorrowed:
			g.BorrowedCopies++
		case model.CopyReserved:
			g.ReservedCopies++
		case model.CopyRemoved:
			g.RemovedCopies++
		default:
			g.AvailableCopies++
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups
}

// Reservable keeps the groups a user can act on: at least one copy free to
// take, or at least one out on loan to queue behind.
func Reservable(groups []model.BookGroup) []model.ReservableBook {
	out := make([]model.ReservableBook, 0, len(groups))
	for _, g := range groups {
		if g.BorrowedCopies == 0 && g.AvailableCopies == 0 {
			continue
		}
		out = append(out, annotate(g))
	}
	return out
}

func annotate(g model.BookGroup) model.ReservableBook {
	return model.ReservableBook{
		BookGroup:     g,
		CanReserve:    g.BorrowedCopies > 0,
		IsAvailable:   g.AvailableCopies > 0,
		LocationLabel: g.Location.Format(),
	}
}

// Search applies all filters conjunctively over already-grouped titles.
func Search(groups []model.BookGroup, f SearchFilter) []model.BookGroup {
	out := make([]model.BookGroup, 0, len(groups))
	for _, g := range groups {
		if matches(g, f) {
			out = append(out, g)
		}
	}
	return out
}

func matches(g model.BookGroup, f SearchFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Author), q) ||
			strings.Contains(strings.ToLower(g.Genre), q) ||
			strings.Contains(strings.ToLower(g.Publisher), q)
		if !hit {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		if !strings.EqualFold(g.Genre, c) {
			return false
		}
	}
	if a := strings.ToLower(strings.TrimSpace(f.Author)); a != "" {
		if !strings.Contains(strings.ToLower(g.Author), a) {
			return false
		}
	}
	if f.AvailableOnly && g.AvailableCopies == 0 {
		return false
	}
	return true
}

// Categories lists distinct non-blank genres, sorted ascending.
func Categories(groups []model.BookGroup) []string {
	seen := make(map[string]bool, len(groups))
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		genre := strings.TrimSpace(g.Genre)
		if genre == "" || seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, genre)
	}
	sort.Strings(out)
	return out
}
