// Package main lib-track user gateway.
//
// @title           lib-track User Gateway
// @version         1.0
// @description     User-facing layer of the library reservation system: browse books and research papers, place and cancel reservations, follow reservation status.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"log/slog"
	"os"

	"libtrack/app/echoServer"
	catalogctrl "libtrack/app/echoServer/controller/catalog"
	researchctrl "libtrack/app/echoServer/controller/research"
	reservationctrl "libtrack/app/echoServer/controller/reservation"
	statusctrl "libtrack/app/echoServer/controller/status"
	"libtrack/app/echoServer/validation"
	"libtrack/config"
	catalogrepo "libtrack/repository/catalog"
	reservationrepo "libtrack/repository/reservation"
	researchrepo "libtrack/repository/research"
	"libtrack/repository/upstream"
	catalogsvc "libtrack/service/catalog"
	reservationsvc "libtrack/service/reservation"
	researchsvc "libtrack/service/research"
	statussvc "libtrack/service/status"
	"libtrack/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// backend wrapper client
	backend := upstream.New(cfg.BackendBaseURL, httpx.WithTimeout(cfg.RequestTimeout), log)

	// repos
	cr := catalogrepo.NewHTTP(backend)
	rr := researchrepo.NewHTTP(backend)
	vr := reservationrepo.NewHTTP(backend)

	// services
	cs := catalogsvc.New(cr)
	rs := researchsvc.New(rr)
	vs := reservationsvc.New(vr)
	ss := statussvc.New(cs, rs, vs, cfg.StatusPageSize)

	// controllers
	v := validator.New()
	catalogC := &catalogctrl.Controller{Svc: cs, V: v, Log: log}
	researchC := &researchctrl.Controller{Svc: rs, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: vs, Status: ss, V: v, Log: log}
	statusC := &statusctrl.Controller{Svc: ss, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Catalog:     catalogC,
		Research:    researchC,
		Reservation: reservationC,
		Status:      statusC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting gateway", "port", port, "backend", cfg.BackendBaseURL)

	e.Logger.Fatal(e.Start(":" + port))
}
