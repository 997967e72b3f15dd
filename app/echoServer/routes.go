package echoServer

import (
	"net/http"

	catalogctrl "libtrack/app/echoServer/controller/catalog"
	researchctrl "libtrack/app/echoServer/controller/research"
	reservationctrl "libtrack/app/echoServer/controller/reservation"
	statusctrl "libtrack/app/echoServer/controller/status"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Catalog     *catalogctrl.Controller
	Research    *researchctrl.Controller
	Reservation *reservationctrl.Controller
	Status      *statusctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		},
	}))

	// Catalog
	v1.GET("/books", c.Catalog.List)
	v1.GET("/books/categories", c.Catalog.Categories)
	v1.GET("/books/:batchKey", c.Catalog.Detail)

	// Research papers
	v1.GET("/research-papers", c.Research.List)
	v1.GET("/research-papers/authors", c.Research.Authors)
	v1.GET("/research-papers/departments", c.Research.Departments)
	v1.GET("/research-papers/shelf-locations", c.Research.ShelfLocations)
	v1.GET("/research-papers/:id", c.Research.Detail)

	// Reservation status page
	v1.GET("/status", c.Status.Get)
	v1.POST("/status/reload", c.Status.Reload)

	// Reservations
	v1.GET("/reservations", c.Reservation.List)
	v1.GET("/reservations/my", c.Reservation.My)
	v1.POST("/reservations", c.Reservation.Create)
	v1.PUT("/reservations/:id", c.Reservation.Update)
	v1.POST("/reservations/:id/cancel", c.Reservation.Cancel)
	v1.POST("/reservations/:id/approve", c.Reservation.Approve)
	v1.POST("/reservations/:id/reject", c.Reservation.Reject)
	v1.DELETE("/reservations/:id", c.Reservation.Delete)
}
