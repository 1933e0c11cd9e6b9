package models

import "time"

// Ticket is the canonical user-facing projection of a booking. Every field is
// always populated; missing data is substituted with placeholders by the
// projection, never surfaced as an error.
type Ticket struct {
	BookingID        int64     `json:"bookingId"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	TravelDate       string    `json:"travelDate"`
	DepartureTime    string    `json:"departureTime"`
	ArrivalTime      string    `json:"arrivalTime"`
	SeatNumber       int       `json:"seatNumber"`
	AmountPaid       int64     `json:"amountPaid"`
	PaymentReference string    `json:"paymentReference"`
	QRCodeData       string    `json:"qrCodeData"`
	BookingStatus    string    `json:"bookingStatus"`
	ExpiresAt        time.Time `json:"expiresAt"`
	PassengerName    string    `json:"passengerName"`
}
