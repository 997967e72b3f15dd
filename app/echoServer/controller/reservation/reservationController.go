package reservation

import (
	"log/slog"
	"net/http"
	"strconv"

	"libtrack/app/echoServer/apierr"
	"libtrack/app/echoServer/jwtx"
	"libtrack/model"
	reservationrepo "libtrack/repository/reservation"
	reservationsvc "libtrack/service/reservation"
	statussvc "libtrack/service/status"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc    reservationsvc.Service
	Status statussvc.Service
	V      *validator.Validate
	Log    *slog.Logger
}

func isLibrarian(c echo.Context) bool {
	role := jwtx.RoleFromContext(c)
	return role == "librarian" || role == "admin"
}

func reservationID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/reservations
//
// Reserving goes through the user's status page so the affected catalog and
// the reservation list are reloaded before the next view.
func (h *Controller) Create(c echo.Context) error {
	sess, err := jwtx.SessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req CreateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	page := h.Status.PageFor(sess.UserID)
	created, err := page.Reserve(c.Request().Context(), reservationsvc.CreateInput{
		UserID:          sess.UserID,
		BookID:          req.BookID,
		ResearchPaperID: req.ResearchPaperID,
	})
	if err != nil {
		return apierr.JSON(c, h.Log, "reservation create", err)
	}
	return c.JSON(http.StatusCreated, toView(*created))
}

// POST /v1/reservations/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	sess, err := jwtx.SessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := reservationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CancelReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	page := h.Status.PageFor(sess.UserID)
	if err := page.Cancel(c.Request().Context(), id, req.Confirm); err != nil {
		return apierr.JSON(c, h.Log, "reservation cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// PUT /v1/reservations/:id  (librarian)
func (h *Controller) Update(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := reservationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	updated, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status, req.Reason)
	if err != nil {
		return apierr.JSON(c, h.Log, "reservation update", err)
	}
	return c.JSON(http.StatusOK, toView(*updated))
}

// POST /v1/reservations/:id/approve  (librarian)
func (h *Controller) Approve(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := reservationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	updated, err := h.Svc.Approve(c.Request().Context(), id)
	if err != nil {
		return apierr.JSON(c, h.Log, "reservation approve", err)
	}
	return c.JSON(http.StatusOK, toView(*updated))
}

// POST /v1/reservations/:id/reject  (librarian)
func (h *Controller) Reject(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := reservationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RejectReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "a rejection reason is required"})
	}
	updated, err := h.Svc.Reject(c.Request().Context(), id, req.Reason)
	if err != nil {
		return apierr.JSON(c, h.Log, "reservation reject", err)
	}
	return c.JSON(http.StatusOK, toView(*updated))
}

// DELETE /v1/reservations/:id  (librarian)
func (h *Controller) Delete(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := reservationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return apierr.JSON(c, h.Log, "reservation delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}

// GET /v1/reservations  (librarian)
func (h *Controller) List(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	userID, _ := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	f := reservationrepo.ListFilter{
		UserID: userID,
		Status: model.ReservationStatus(c.QueryParam("status")),
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		return apierr.JSON(c, h.Log, "reservation list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toViews(rows)})
}

// GET /v1/reservations/my
func (h *Controller) My(c echo.Context) error {
	sess, err := jwtx.SessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	buckets, err := h.Svc.ByStatus(c.Request().Context(), sess.UserID)
	if err != nil {
		return apierr.JSON(c, h.Log, "my reservations", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"pending":  toViews(buckets.Pending),
		"approved": toViews(buckets.Approved),
		"rejected": toViews(buckets.Rejected),
		"all":      toViews(buckets.All),
	})
}
