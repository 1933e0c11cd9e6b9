package models

import "time"

// Booking statuses. Terminal states are used, expired and cancelled.
const (
	BookingActive    = "active"
	BookingUsed      = "used"
	BookingExpired   = "expired"
	BookingCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Booking is a paid seat reservation for one dated departure. It is created
// only after the charge has been verified.
type Booking struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	BusID            int64     `json:"busId"`
	SeatNumber       int       `json:"seatNumber"`
	TravelDate       string    `json:"travelDate"` // YYYY-MM-DD
	AmountPaid       int64     `json:"amountPaid"`
	PaymentReference string    `json:"paymentReference"`
	PaymentStatus    string    `json:"paymentStatus"`
	BookingStatus    string    `json:"bookingStatus"`
	QRCodeData       string    `json:"qrCodeData"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BookingDetail is a booking joined with its bus template and route, used to
// build the ticket view.
type BookingDetail struct {
	Booking
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	BusNumber     string `json:"busNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	PassengerName string `json:"passengerName"`
}

// SeatHold is a short-lived reservation taken before the charge is initialized,
// so two riders cannot pay for the same seat at once.
type SeatHold struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	BusID      int64     `json:"busId"`
	SeatNumber int       `json:"seatNumber"`
	TravelDate string    `json:"travelDate"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// SeatMap is the taken/held state of one dated departure within its grid.
type SeatMap struct {
	BusID      int64  `json:"busId"`
	TravelDate string `json:"travelDate"`
	Capacity   int    `json:"capacity"`
	Taken      []int  `json:"taken"`
	Held       []int  `json:"held"`
}
