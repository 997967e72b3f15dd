package statussvc

import (
	"context"
	"log/slog"
	"sync"

	"libtrack/model"
	"libtrack/repository/upstream"
	catalogsvc "libtrack/service/catalog"
	reservationsvc "libtrack/service/reservation"
	researchsvc "libtrack/service/research"
)

// load state of a user's reservation-status page

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

type Catalog interface {
	Browse(ctx context.Context, f catalogsvc.SearchFilter) ([]model.ReservableBook, error)
}

type Research interface {
	Browse(ctx context.Context, f researchsvc.SearchFilter) ([]model.ResearchListing, error)
	Departments(ctx context.Context) ([]string, error)
}

type Reservations interface {
	ByStatus(ctx context.Context, userID int64) (*reservationsvc.StatusBuckets, error)
	FindExisting(ctx context.Context, userID int64, target model.Target) (*model.Reservation, error)
	Create(ctx context.Context, in reservationsvc.CreateInput) (*model.Reservation, error)
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)
}

type Service interface {
	// PageFor hands back the user's page, created idle on first use.
	PageFor(userID int64) *Page
}

type service struct {
	mu       sync.Mutex
	pages    map[int64]*Page
	cat      Catalog
	res      Research
	rsv      Reservations
	pageSize int
}

func New(cat Catalog, res Research, rsv Reservations, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &service{
		pages:    make(map[int64]*Page),
		cat:      cat,
		res:      res,
		rsv:      rsv,
		pageSize: pageSize,
	}
}

func (s *service) PageFor(userID int64) *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[userID]
	if !ok {
		p = &Page{
			userID:   userID,
			pageSize: s.pageSize,
			cat:      s.cat,
			res:      s.res,
			rsv:      s.rsv,
			state:    StateIdle,
		}
		s.pages[userID] = p
	}
	return p
}

// Page holds one user's loaded status view. Lifecycle is
// idle -> loading -> {ready, error}, re-entering loading on every reload
// trigger: first view, post-mutation refresh, manual retry.
type Page struct {
	mu       sync.Mutex
	userID   int64
	pageSize int

	cat Catalog
	res Research
	rsv Reservations

	state   State
	loadErr error

	books       []model.ReservableBook
	researches  []model.ResearchListing
	buckets     reservationsvc.StatusBuckets
	categories  []string
	departments []string

	last Query
}

func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load fetches all four data sets concurrently. Books, researches and
// reservations are primary: any failure puts the page in error with a retry
// affordance. Departments are secondary and degrade to an empty list.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	p.state = StateLoading
	p.loadErr = nil
	p.mu.Unlock()

	var (
		wg sync.WaitGroup

		books      []model.ReservableBook
		researches []model.ResearchListing
		buckets    *reservationsvc.StatusBuckets
		deps       []string

		bookErr, resErr, rsvErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		books, bookErr = p.cat.Browse(ctx, catalogsvc.SearchFilter{})
	}()
	go func() {
		defer wg.Done()
		researches, resErr = p.res.Browse(ctx, researchsvc.SearchFilter{})
	}()
	go func() {
		defer wg.Done()
		buckets, rsvErr = p.rsv.ByStatus(ctx, p.userID)
	}()
	go func() {
		defer wg.Done()
		var err error
		if deps, err = p.res.Departments(ctx); err != nil {
			slog.Warn("departments load failed, degrading to empty list", "err", err)
			deps = nil
		}
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, err := range []error{bookErr, resErr, rsvErr} {
		if err != nil {
			p.state = StateError
			p.loadErr = err
			return err
		}
	}

	p.books = books
	p.researches = researches
	p.buckets = *buckets
	p.departments = deps
	p.categories = bookCategories(books)
	p.state = StateReady
	return nil
}

// Reserve creates a reservation for the session user and then reloads the
// affected catalog and the reservation list, so counters and positions
// reflect the mutation.
func (p *Page) Reserve(ctx context.Context, in reservationsvc.CreateInput) (*model.Reservation, error) {
	in.UserID = p.userID

	var target model.Target
	switch {
	case in.BookID > 0 && in.ResearchPaperID > 0:
		// leave it to the writer's validation
	case in.BookID > 0:
		target = model.BookTarget(in.BookID)
	case in.ResearchPaperID > 0:
		target = model.ResearchPaperTarget(in.ResearchPaperID)
	}
	if !target.IsZero() {
		existing, err := p.rsv.FindExisting(ctx, p.userID, target)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, upstream.NewError(upstream.ErrValidation, "you already have an active reservation for this item")
		}
	}

	created, err := p.rsv.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.ResearchPaperID > 0 {
		p.refreshResearches(ctx)
	} else {
		p.refreshBooks(ctx)
	}
	p.refreshReservations(ctx)
	return created, nil
}

// Cancel requires explicit confirmation. On success it reloads reservations
// and both catalogs: cancelling an approved book reservation can restore a
// copy to available, which changes catalog counts.
func (p *Page) Cancel(ctx context.Context, reservationID int64, confirmed bool) error {
	if !confirmed {
		return upstream.NewError(upstream.ErrValidation, "cancellation requires confirmation")
	}
	if _, err := p.rsv.Cancel(ctx, reservationID); err != nil {
		return err
	}
	p.refreshReservations(ctx)
	p.refreshBooks(ctx)
	p.refreshResearches(ctx)
	return nil
}

func (p *Page) refreshBooks(ctx context.Context) {
	books, err := p.cat.Browse(ctx, catalogsvc.SearchFilter{})
	if err != nil {
		slog.Warn("book refresh failed, keeping previous view", "user_id", p.userID, "err", err)
		return
	}
	p.mu.Lock()
	p.books = books
	p.categories = bookCategories(books)
	p.mu.Unlock()
}

func (p *Page) refreshResearches(ctx context.Context) {
	researches, err := p.res.Browse(ctx, researchsvc.SearchFilter{})
	if err != nil {
		slog.Warn("research refresh failed, keeping previous view", "user_id", p.userID, "err", err)
		return
	}
	p.mu.Lock()
	p.researches = researches
	p.mu.Unlock()
}

func (p *Page) refreshReservations(ctx context.Context) {
	buckets, err := p.rsv.ByStatus(ctx, p.userID)
	if err != nil {
		slog.Warn("reservation refresh failed, keeping previous view", "user_id", p.userID, "err", err)
		return
	}
	p.mu.Lock()
	p.buckets = *buckets
	p.mu.Unlock()
}

func bookCategories(books []model.ReservableBook) []string {
	groups := make([]model.BookGroup, 0, len(books))
	for _, b := range books {
		groups = append(groups, b.BookGroup)
	}
	return catalogsvc.Categories(groups)
}
