package statussvc

import (
	"strings"

	"libtrack/model"
)

// Query selects the derived view of an already-loaded page. Changing any
// filter resets the matching page index to 1.
type Query struct {
	Search     string
	Category   string
	Department string
	Bucket     string

	BookPage        int
	ResearchPage    int
	ReservationPage int
}

func (q Query) filtersEqual(o Query) bool {
	return q.Search == o.Search &&
		q.Category == o.Category &&
		q.Department == o.Department &&
		q.Bucket == o.Bucket
}

type BookPageView struct {
	Items      []model.ReservableBook `json:"items"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"total_pages"`
	Total      int                    `json:"total"`
}

type ResearchPageView struct {
	Items      []model.ResearchListing `json:"items"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"total_pages"`
	Total      int                     `json:"total"`
}

type ReservationPageView struct {
	Bucket     string              `json:"bucket"`
	Items      []model.Reservation `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
}

type View struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`

	Categories  []string `json:"categories"`
	Departments []string `json:"departments"`

	Books        BookPageView        `json:"books"`
	Researches   ResearchPageView    `json:"researches"`
	Reservations ReservationPageView `json:"reservations"`
}

// View recomputes the filtered, paginated presentation from the loaded
// collections. It never refetches.
func (p *Page) View(q Query) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !q.filtersEqual(p.last) {
		q.BookPage, q.ResearchPage, q.ReservationPage = 1, 1, 1
	}
	p.last = q

	v := View{
		State:       p.state,
		Categories:  p.categories,
		Departments: p.departments,
	}
	if p.loadErr != nil {
		v.Error = p.loadErr.Error()
	}

	books := filterBooks(p.books, q.Search, q.Category)
	start, end, pg, pages := pageBounds(len(books), q.BookPage, p.pageSize)
	v.Books = BookPageView{Items: books[start:end], Page: pg, TotalPages: pages, Total: len(books)}

	researches := filterResearches(p.researches, q.Search, q.Department)
	start, end, pg, pages = pageBounds(len(researches), q.ResearchPage, p.pageSize)
	v.Researches = ResearchPageView{Items: researches[start:end], Page: pg, TotalPages: pages, Total: len(researches)}

	bucket, items := pickBucket(p.buckets.Pending, p.buckets.Approved, p.buckets.Rejected, p.buckets.All, q.Bucket)
	start, end, pg, pages = pageBounds(len(items), q.ReservationPage, p.pageSize)
	v.Reservations = ReservationPageView{Bucket: bucket, Items: items[start:end], Page: pg, TotalPages: pages, Total: len(items)}

	return v
}

func filterBooks(books []model.ReservableBook, search, category string) []model.ReservableBook {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)
	out := make([]model.ReservableBook, 0, len(books))
	for _, b := range books {
		if search != "" {
			hit := strings.Contains(strings.ToLower(b.Title), search) ||
				strings.Contains(strings.ToLower(b.Author), search) ||
				strings.Contains(strings.ToLower(b.Genre), search) ||
				strings.Contains(strings.ToLower(b.Publisher), search)
			if !hit {
				continue
			}
		}
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(b.Genre, category) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func filterResearches(papers []model.ResearchListing, search, department string) []model.ResearchListing {
	search = strings.ToLower(strings.TrimSpace(search))
	department = strings.TrimSpace(department)
	out := make([]model.ResearchListing, 0, len(papers))
	for _, p := range papers {
		if search != "" {
			hit := strings.Contains(strings.ToLower(p.Title), search) ||
				strings.Contains(strings.ToLower(p.Authors), search) ||
				strings.Contains(strings.ToLower(p.Department), search)
			if !hit {
				continue
			}
		}
		if department != "" && !strings.EqualFold(department, "all") && !strings.EqualFold(p.Department, department) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func pickBucket(pending, approved, rejected, all []model.Reservation, bucket string) (string, []model.Reservation) {
	switch strings.ToLower(strings.TrimSpace(bucket)) {
	case "pending":
		return "pending", pending
	case "approved":
		return "approved", approved
	case "rejected":
		return "rejected", rejected
	default:
		return "all", all
	}
}

func pageBounds(total, page, size int) (start, end, pg, totalPages int) {
	totalPages = (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	pg = page
	if pg < 1 {
		pg = 1
	}
	if pg > totalPages {
		pg = totalPages
	}
	start = (pg - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return start, end, pg, totalPages
}
