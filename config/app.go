package config

import "time"

type App struct {
	Port           string        `env:"APP_PORT" default:"8080"`
	BackendBaseURL string        `env:"BACKEND_BASE_URL,required"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"10s"`
	StatusPageSize int           `env:"STATUS_PAGE_SIZE" default:"6"`
	Env            string        `env:"APP_ENV" default:"dev"`
}
