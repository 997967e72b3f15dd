package model

import "time"

// Review is read-only from this layer; the backend owns it.
type Review struct {
	ID        int64     `json:"rating_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
