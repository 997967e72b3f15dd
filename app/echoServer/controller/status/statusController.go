package status

import (
	"log/slog"
	"net/http"
	"strconv"

	"libtrack/app/echoServer/apierr"
	"libtrack/app/echoServer/jwtx"
	statussvc "libtrack/service/status"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc statussvc.Service
	Log *slog.Logger
}

func queryFromParams(c echo.Context) statussvc.Query {
	bookPage, _ := strconv.Atoi(c.QueryParam("book_page"))
	researchPage, _ := strconv.Atoi(c.QueryParam("research_page"))
	reservationPage, _ := strconv.Atoi(c.QueryParam("reservation_page"))
	return statussvc.Query{
		Search:          c.QueryParam("q"),
		Category:        c.QueryParam("category"),
		Department:      c.QueryParam("department"),
		Bucket:          c.QueryParam("bucket"),
		BookPage:        bookPage,
		ResearchPage:    researchPage,
		ReservationPage: reservationPage,
	}
}

// GET /v1/status
//
// First hit loads the page; later hits serve derived views of the loaded
// collections. A page stuck in error keeps returning its error plus the
// retry affordance until /v1/status/reload succeeds.
func (h *Controller) Get(c echo.Context) error {
	sess, err := jwtx.SessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page := h.Svc.PageFor(sess.UserID)
	if page.State() == statussvc.StateIdle {
		if err := page.Load(c.Request().Context()); err != nil {
			h.Log.Error("status page load", "user_id", sess.UserID, "err", err)
		}
	}
	return c.JSON(http.StatusOK, page.View(queryFromParams(c)))
}

// POST /v1/status/reload
func (h *Controller) Reload(c echo.Context) error {
	sess, err := jwtx.SessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page := h.Svc.PageFor(sess.UserID)
	if err := page.Load(c.Request().Context()); err != nil {
		return apierr.JSON(c, h.Log, "status page reload", err)
	}
	return c.JSON(http.StatusOK, page.View(queryFromParams(c)))
}
