package research

import (
	"log/slog"
	"net/http"
	"strconv"

	"libtrack/app/echoServer/apierr"
	researchsvc "libtrack/service/research"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc researchsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/research-papers
func (h *Controller) List(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	available, _ := strconv.ParseBool(c.QueryParam("available"))
	f := researchsvc.SearchFilter{
		Query:         c.QueryParam("q"),
		Department:    c.QueryParam("department"),
		Author:        c.QueryParam("author"),
		Year:          year,
		AvailableOnly: available,
	}
	papers, err := h.Svc.Browse(c.Request().Context(), f)
	if err != nil {
		return apierr.JSON(c, h.Log, "research list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toCards(papers)})
}

// GET /v1/research-papers/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	paper, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return apierr.JSON(c, h.Log, "research detail", err)
	}
	if paper == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "research paper not found"})
	}
	return c.JSON(http.StatusOK, toDetail(*paper))
}

// GET /v1/research-papers/authors
func (h *Controller) Authors(c echo.Context) error {
	authors, err := h.Svc.Authors(c.Request().Context())
	if err != nil {
		return apierr.JSON(c, h.Log, "author list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": authors})
}

// GET /v1/research-papers/departments
func (h *Controller) Departments(c echo.Context) error {
	departments, err := h.Svc.Departments(c.Request().Context())
	if err != nil {
		return apierr.JSON(c, h.Log, "department list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": departments})
}

// GET /v1/research-papers/shelf-locations
func (h *Controller) ShelfLocations(c echo.Context) error {
	locations, err := h.Svc.ShelfLocations(c.Request().Context())
	if err != nil {
		return apierr.JSON(c, h.Log, "shelf location list", err)
	}
	labels := make([]string, 0, len(locations))
	for _, l := range locations {
		labels = append(labels, l.Format())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": labels})
}
