package models

import "time"

// Feedback is a rider-submitted comment with an optional 1..5 rating.
type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
