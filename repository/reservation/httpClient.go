package reservationrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"libtrack/model"
	"libtrack/repository/upstream"
)

type httpRepo struct {
	c *upstream.Client
}

func NewHTTP(c *upstream.Client) Repo { return &httpRepo{c: c} }

type reservationRow struct {
	ID              int64           `json:"reservation_id"`
	UserID          int64           `json:"user_id"`
	BookID          int64           `json:"book_id"`
	ResearchPaperID int64           `json:"research_paper_id"`
	Type            string          `json:"reservation_type"`
	Status          string          `json:"status"`
	Reason          string          `json:"reason"`
	Position        json.RawMessage `json:"position"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// coercePosition forces position into a positive integer for display. The
// backend is loose here: the field may be missing, a number, a numeric
// string, or garbage. Anything unusable becomes 1.
func coercePosition(raw json.RawMessage) int {
	s := strings.TrimSpace(strings.Trim(string(raw), `"`))
	if s == "" || s == "null" {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 {
		return int(f)
	}
	return 1
}

func (r reservationRow) toModel() model.Reservation {
	status, ok := model.ParseReservationStatus(r.Status)
	if !ok {
		// keep the raw value so unfiltered listings still show it
		status = model.ReservationStatus(r.Status)
	}
	typ := model.ReservationType(r.Type)
	if typ != model.TypeBook && typ != model.TypeResearchPaper {
		if r.ResearchPaperID != 0 {
			typ = model.TypeResearchPaper
		} else {
			typ = model.TypeBook
		}
	}
	return model.Reservation{
		ID:              r.ID,
		UserID:          r.UserID,
		BookID:          r.BookID,
		ResearchPaperID: r.ResearchPaperID,
		Type:            typ,
		Status:          status,
		Reason:          r.Reason,
		Position:        coercePosition(r.Position),
		CreatedAt:       upstream.ParseTime(r.CreatedAt),
		UpdatedAt:       upstream.ParseTime(r.UpdatedAt),
	}
}

func toModels(rows []reservationRow) []model.Reservation {
	out := make([]model.Reservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out
}

func (h *httpRepo) List(ctx context.Context, f ListFilter) ([]model.Reservation, error) {
	q := url.Values{}
	if f.UserID > 0 {
		q.Set("user_id", strconv.FormatInt(f.UserID, 10))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	var rows []reservationRow
	if err := h.c.Get(ctx, "/api/reservations", q, &rows); err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (h *httpRepo) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	var row reservationRow
	if err := h.c.Get(ctx, fmt.Sprintf("/api/reservations/%d", id), nil, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (h *httpRepo) ListByUser(ctx context.Context, userID int64, status model.ReservationStatus) ([]model.Reservation, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var rows []reservationRow
	if err := h.c.Get(ctx, fmt.Sprintf("/api/reservations/user/%d", userID), q, &rows); err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (h *httpRepo) Create(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error) {
	body := map[string]any{"user_id": userID}
	switch target.Type() {
	case model.TypeResearchPaper:
		body["research_paper_id"] = target.ID()
	default:
		body["book_id"] = target.ID()
	}
	var row reservationRow
	if err := h.c.Post(ctx, "/api/reservations", body, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (h *httpRepo) Update(ctx context.Context, id int64, status model.ReservationStatus, reason string) (*model.Reservation, error) {
	body := map[string]any{"status": string(status)}
	if reason != "" {
		body["reason"] = reason
	}
	var row reservationRow
	if err := h.c.Put(ctx, fmt.Sprintf("/api/reservations/%d", id), body, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (h *httpRepo) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	var row reservationRow
	if err := h.c.Post(ctx, fmt.Sprintf("/api/reservations/%d/cancel", id), nil, &row); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (h *httpRepo) Delete(ctx context.Context, id int64) error {
	return h.c.Delete(ctx, fmt.Sprintf("/api/reservations/%d", id), nil)
}
