package models

import "time"

// Notification types emitted by the booking flow and the admin surface.
const (
	NotifBookingConfirmation = "booking_confirmation"
	NotifTicketGenerated     = "ticket_generated"
	NotifWelcome             = "welcome"
	NotifAdminBroadcast      = "admin_broadcast"
)

// Notification targets one user, or everyone when UserID is nil.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	UserID    *int64    `json:"userId"`
	BusID     *int64    `json:"busId"`
	SentBy    *int64    `json:"sentBy"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
