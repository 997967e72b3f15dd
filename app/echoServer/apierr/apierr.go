package apierr

import (
	"log/slog"
	"net/http"

	"libtrack/repository/upstream"

	"github.com/labstack/echo/v4"
)

// JSON maps the wrapper-layer error taxonomy onto gateway responses.
// Validation problems never left this process, so they are the caller's
// fault; network and protocol failures are the backend's.
func JSON(c echo.Context, log *slog.Logger, op string, err error) error {
	switch upstream.Code(err) {
	case upstream.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case upstream.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case upstream.ErrProtocol:
		log.Error(op, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": err.Error()})
	case upstream.ErrNetwork:
		log.Error(op, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "library service unreachable"})
	default:
		log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
