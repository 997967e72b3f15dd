package researchrepo

import (
	"context"
	"fmt"

	"libtrack/model"
	"libtrack/repository/upstream"
)

type httpRepo struct {
	c *upstream.Client
}

func NewHTTP(c *upstream.Client) Repo { return &httpRepo{c: c} }

type paperRow struct {
	ID            int64       `json:"research_id"`
	Title         string      `json:"title"`
	Authors       string      `json:"authors"`
	Department    string      `json:"department"`
	Year          int         `json:"publication_year"`
	Abstract      string      `json:"abstract"`
	Price         float64     `json:"price"`
	QRCode        string      `json:"qr_code"`
	CoverImage    string      `json:"cover_image"`
	ShelfNumber   int         `json:"shelf_number"`
	ShelfColumn   int         `json:"shelf_column"`
	ShelfRow      int         `json:"shelf_row"`
	Status        string      `json:"status"`
	AverageRating float64     `json:"average_rating"`
	RatingCount   int         `json:"rating_count"`
	Reviews       []reviewRow `json:"reviews"`
	CreatedAt     string      `json:"created_at"`
}

type reviewRow struct {
	RatingID  int64  `json:"rating_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type locationRow struct {
	ShelfNumber int `json:"shelf_number"`
	ShelfColumn int `json:"shelf_column"`
	ShelfRow    int `json:"shelf_row"`
}

func (r paperRow) toModel() model.ResearchPaper {
	reviews := make([]model.Review, 0, len(r.Reviews))
	for _, rv := range r.Reviews {
		reviews = append(reviews, model.Review{
			ID:        rv.RatingID,
			UserName:  rv.UserName,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: upstream.ParseTime(rv.CreatedAt),
		})
	}
	if len(reviews) == 0 {
		reviews = nil
	}
	return model.ResearchPaper{
		ID:            r.ID,
		Title:         r.Title,
		Authors:       r.Authors,
		Department:    r.Department,
		Year:          r.Year,
		Abstract:      r.Abstract,
		Price:         r.Price,
		QRCode:        r.QRCode,
		CoverImage:    r.CoverImage,
		Location:      model.ShelfLocation{Shelf: r.ShelfNumber, Column: r.ShelfColumn, Row: r.ShelfRow},
		Status:        model.ParseCopyStatus(r.Status),
		AverageRating: r.AverageRating,
		RatingCount:   r.RatingCount,
		Reviews:       reviews,
		CreatedAt:     upstream.ParseTime(r.CreatedAt),
	}
}

func (h *httpRepo) List(ctx context.Context) ([]model.ResearchPaper, error) {
	var rows []paperRow
	if err := h.c.Get(ctx, "/api/research-papers", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.ResearchPaper, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (h *httpRepo) Get(ctx context.Context, id int64) (*model.ResearchPaper, error) {
	var row paperRow
	if err := h.c.Get(ctx, fmt.Sprintf("/api/research-papers/%d", id), nil, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (h *httpRepo) Authors(ctx context.Context) ([]string, error) {
	var out []string
	if err := h.c.Get(ctx, "/api/research-papers/authors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpRepo) Departments(ctx context.Context) ([]string, error) {
	var out []string
	if err := h.c.Get(ctx, "/api/research-papers/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpRepo) ShelfLocations(ctx context.Context) ([]model.ShelfLocation, error) {
	var rows []locationRow
	if err := h.c.Get(ctx, "/api/research-papers/shelf-locations", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.ShelfLocation, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ShelfLocation{Shelf: r.ShelfNumber, Column: r.ShelfColumn, Row: r.ShelfRow})
	}
	return out, nil
}
