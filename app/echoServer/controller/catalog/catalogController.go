package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"libtrack/app/echoServer/apierr"
	catalogsvc "libtrack/service/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	available, _ := strconv.ParseBool(c.QueryParam("available"))
	f := catalogsvc.SearchFilter{
		Query:         c.QueryParam("q"),
		Category:      c.QueryParam("category"),
		Author:        c.QueryParam("author"),
		AvailableOnly: available,
	}
	books, err := h.Svc.Browse(c.Request().Context(), f)
	if err != nil {
		return apierr.JSON(c, h.Log, "book list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toCards(books)})
}

// GET /v1/books/categories
func (h *Controller) Categories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return apierr.JSON(c, h.Log, "category list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cats})
}

// GET /v1/books/:batchKey
func (h *Controller) Detail(c echo.Context) error {
	book, err := h.Svc.Detail(c.Request().Context(), c.Param("batchKey"))
	if err != nil {
		return apierr.JSON(c, h.Log, "book detail", err)
	}
	if book == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	}
	return c.JSON(http.StatusOK, toDetail(*book))
}
