package statussvc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libtrack/model"
	catalogrepo "libtrack/repository/catalog"
	reservationrepo "libtrack/repository/reservation"
	researchrepo "libtrack/repository/research"
	"libtrack/repository/upstream"
	catalogsvc "libtrack/service/catalog"
	reservationsvc "libtrack/service/reservation"
	researchsvc "libtrack/service/research"
	statussvc "libtrack/service/status"

	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal in-memory stand-in for the library service,
// speaking its response envelope.
type fakeBackend struct {
	books        []map[string]any
	reservations []map[string]any
	nextID       int64
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	ok := func(w http.ResponseWriter, data any) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}

	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) {
		ok(w, b.books)
	})
	mux.HandleFunc("GET /api/research-papers", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []any{})
	})
	mux.HandleFunc("GET /api/research-papers/departments", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []string{})
	})
	mux.HandleFunc("GET /api/reservations/user/", func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimPrefix(r.URL.Path, "/api/reservations/user/")
		var mine []map[string]any
		for _, res := range b.reservations {
			if fmt.Sprint(res["user_id"]) == uid {
				mine = append(mine, res)
			}
		}
		ok(w, mine)
	})
	mux.HandleFunc("POST /api/reservations", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.nextID++
		res := map[string]any{
			"reservation_id": b.nextID,
			"user_id":        body["user_id"],
			"status":         "Pending",
			"position":       1,
		}
		if id, found := body["book_id"]; found {
			res["book_id"] = id
			res["reservation_type"] = "book"
		}
		if id, found := body["research_paper_id"]; found {
			res["research_paper_id"] = id
			res["reservation_type"] = "research_paper"
		}
		b.reservations = append(b.reservations, res)
		ok(w, res)
	})
	return mux
}

func TestReserveBookEndToEnd(t *testing.T) {
	backend := &fakeBackend{
		books: []map[string]any{
			{
				"book_id": 5, "copy_number": 1, "status": "borrowed",
				"batch_registration_key": "B-2025-001", "title": "The Go Programming Language",
				"author": "Donovan", "genre": "Programming",
				"batch_created_at": "2025-05-01T00:00:00Z", "created_at": "2025-05-01T00:00:00Z",
			},
			{
				"book_id": 6, "copy_number": 2, "status": "available",
				"batch_registration_key": "B-2025-001", "title": "The Go Programming Language",
				"author": "Donovan", "genre": "Programming",
				"batch_created_at": "2025-05-01T00:00:00Z", "created_at": "2025-05-01T00:00:00Z",
			},
		},
	}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := upstream.New(srv.URL, srv.Client(), log)
	cs := catalogsvc.New(catalogrepo.NewHTTP(client))
	rs := researchsvc.New(researchrepo.NewHTTP(client))
	vs := reservationsvc.New(reservationrepo.NewHTTP(client))
	svc := statussvc.New(cs, rs, vs, 6)

	page := svc.PageFor(7)
	require.NoError(t, page.Load(context.Background()))

	v := page.View(statussvc.Query{})
	require.Equal(t, 1, v.Books.Total)
	require.True(t, v.Books.Items[0].CanReserve)
	require.True(t, v.Books.Items[0].IsAvailable)
	require.Equal(t, 0, v.Reservations.Total)

	created, err := page.Reserve(context.Background(), reservationsvc.CreateInput{BookID: 5})
	require.NoError(t, err)
	require.Equal(t, model.ReservationPending, created.Status)

	// the page reloaded: the user now sees one pending entry for that copy
	v = page.View(statussvc.Query{Bucket: "pending"})
	require.Equal(t, 1, v.Reservations.Total)
	require.EqualValues(t, 5, v.Reservations.Items[0].BookID)
	require.Equal(t, 1, v.Reservations.Items[0].Position)

	// a second attempt on the same copy is blocked before any request
	_, err = page.Reserve(context.Background(), reservationsvc.CreateInput{BookID: 5})
	require.Equal(t, upstream.ErrValidation, upstream.Code(err))
}
