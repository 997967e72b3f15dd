package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := App{
		Port:           getenv("APP_PORT", "8080"),
		BackendBaseURL: must("BACKEND_BASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", "local_dev_secret"),
		RequestTimeout: getduration("REQUEST_TIMEOUT", 10*time.Second),
		StatusPageSize: getint("STATUS_PAGE_SIZE", 6),
		Env:            getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		slog.Warn("invalid int env, using default", "key", k, "value", v)
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration env, using default", "key", k, "value", v)
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
