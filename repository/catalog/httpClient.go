package catalogrepo

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

// bookRow mirrors the backend's loose per-copy shape before normalization.
type bookRow struct {
	BookID         int64       `json:"book_id"`
	CopyNumber     int         `json:"copy_number"`
	QRCode         string      `json:"qr_code"`
	Status         string      `json:"status"`
	CreatedAt      string      `json:"created_at"`
	BatchKey       string      `json:"batch_registration_key"`
	Title          string      `json:"title"`
	Author         string      `json:"author"`
	Genre          string      `json:"genre"`
	Publisher      string      `json:"publisher"`
	Edition        string      `json:"edition"`
	Year           int         `json:"year"`
	Price          float64     `json:"price"`
	Donor          string      `json:"donor"`
	CoverImage     string      `json:"cover_image"`
	ShelfNumber    int         `json:"shelf_number"`
	ShelfColumn    int         `json:"shelf_column"`
	ShelfRow       int         `json:"shelf_row"`
	AverageRating  float64     `json:"average_rating"`
	RatingCount    int         `json:"rating_count"`
	Reviews        []reviewRow `json:"reviews"`
	BatchCreatedAt string      `json:"batch_created_at"`
}

type reviewRow struct {
	RatingID  int64  `json:"rating_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func (r bookRow) toModel() model.BookCopyRow {
	out := model.BookCopyRow{
		Copy: model.Copy{
			ID:         r.BookID,
			CopyNumber: r.CopyNumber,
			QRCode:     r.QRCode,
			Status:     model.ParseCopyStatus(r.Status),
			CreatedAt:  upstream.ParseTime(r.CreatedAt),
		},
		BatchKey:       r.BatchKey,
		Title:          r.Title,
		Author:         r.Author,
		Genre:          r.Genre,
		Publisher:      r.Publisher,
		Edition:        r.Edition,
		Year:           r.Year,
		Price:          r.Price,
		Donor:          r.Donor,
		CoverImage:     r.CoverImage,
		Location:       model.ShelfLocation{Shelf: r.ShelfNumber, Column: r.ShelfColumn, Row: r.ShelfRow},
		AverageRating:  r.AverageRating,
		RatingCount:    r.RatingCount,
		Reviews:        toReviews(r.Reviews),
		BatchCreatedAt: upstream.ParseTime(r.BatchCreatedAt),
	}
	if out.BatchCreatedAt.IsZero() {
		out.BatchCreatedAt = out.Copy.CreatedAt
	}
	return out
}

func toReviews(rows []reviewRow) []model.Review {
	if len(rows) == 0 {
		return nil
	}
	out := make([]model.Review, 0, len(rows))
	for _, rv := range rows {
		out = append(out, model.Review{
			ID:        rv.RatingID,
			UserName:  rv.UserName,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: upstream.ParseTime(rv.CreatedAt),
		})
	}
	return out
}

func (h *httpRepo) ListBooks(ctx context.Context) ([]model.BookCopyRow, error) {
	var rows []bookRow
	if err := h.c.Get(ctx, "/api/books", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.BookCopyRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (h *httpRepo) GetBatch(ctx context.Context, batchKey string) ([]model.BookCopyRow, error) {
	var rows []bookRow
	if err := h.c.Get(ctx, "/api/books/"+batchKey, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.BookCopyRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (h *httpRepo) GetCopy(ctx context.Context, copyID int64) (*model.BookCopyRow, error) {
	var row bookRow
	if err := h.c.Get(ctx, fmt.Sprintf("/api/books/book/%d", copyID), nil, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}
