package httpx

import (
	"net"
	"net/http"
	"time"
)

var defaultTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxConnsPerHost:     100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

var defaultClient = &http.Client{
	Timeout:   10 * time.Second,
	Transport: defaultTransport,
}

func Client() *http.Client { return defaultClient }

// WithTimeout hands out a client sharing the tuned transport but with its
// own overall request deadline.
func WithTimeout(d time.Duration) *http.Client {
	if d <= 0 {
		return defaultClient
	}
	return &http.Client{Timeout: d, Transport: defaultTransport}
}
