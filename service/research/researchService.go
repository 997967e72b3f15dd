package researchsvc

import (
	"context"
	"strings"

	"libtrack/model"
	"libtrack/repository/upstream"
)

type Repo interface {
	List(ctx context.Context) ([]model.ResearchPaper, error)
	Get(ctx context.Context, id int64) (*model.ResearchPaper, error)
	Authors(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
	ShelfLocations(ctx context.Context) ([]model.ShelfLocation, error)
}

// SearchFilter is applied conjunctively; zero fields are no-ops.
type SearchFilter struct {
	Query         string
	Department    string
	Author        string
	Year          int
	AvailableOnly bool
}

type Service interface {
	Browse(ctx context.Context, f SearchFilter) ([]model.ResearchListing, error)
	Detail(ctx context.Context, id int64) (*model.ResearchListing, error)
	Authors(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
	ShelfLocations(ctx context.Context) ([]model.ShelfLocation, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Browse(ctx context.Context, f SearchFilter) ([]model.ResearchListing, error) {
	papers, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ResearchListing, 0, len(papers))
	for _, p := range papers {
		if matches(p, f) {
			out = append(out, Format(p))
		}
	}
	return out, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.ResearchListing, error) {
	if id <= 0 {
		return nil, upstream.NewError(upstream.ErrValidation, "research paper id is required")
	}
	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	out := Format(*p)
	return &out, nil
}

func (s *service) Authors(ctx context.Context) ([]string, error) { return s.r.Authors(ctx) }

func (s *service) Departments(ctx context.Context) ([]string, error) { return s.r.Departments(ctx) }

func (s *service) ShelfLocations(ctx context.Context) ([]model.ShelfLocation, error) {
	return s.r.ShelfLocations(ctx)
}

// Format annotates a paper for display. Papers are read in place, so they
// surface as available; a reserved status only blocks reserving it again —
// the backend stays the authority on the actual reservation.
func Format(p model.ResearchPaper) model.ResearchListing {
	return model.ResearchListing{
		ResearchPaper: p,
		IsAvailable:   true,
		CanReserve:    p.Status != model.CopyReserved,
		QRImage:       model.InlineQRImage(p.QRCode),
		LocationLabel: p.Location.Format(),
	}
}

func matches(p model.ResearchPaper, f SearchFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Authors), q) ||
			strings.Contains(strings.ToLower(p.Department), q)
		if !hit {
			return false
		}
	}
	if d := strings.TrimSpace(f.Department); d != "" && !strings.EqualFold(d, "all") {
		if !strings.EqualFold(p.Department, d) {
			return false
		}
	}
	if a := strings.ToLower(strings.TrimSpace(f.Author)); a != "" {
		if !strings.Contains(strings.ToLower(p.Authors), a) {
			return false
		}
	}
	if f.Year != 0 && p.Year != f.Year {
		return false
	}
	if f.AvailableOnly && p.Status == model.CopyReserved {
		return false
	}
	return true
}
