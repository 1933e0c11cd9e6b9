package services

import (
	"bytes"
	"testing"
	"time"

	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	in := QRPayload{
		UserID:       9,
		UserName:     "Ada Obi",
		Route:        "Main Gate → North Campus",
		Seat:         4,
		Amount:       500,
		Date:         "2026-01-10",
		Time:         "08:00",
		PurchaseTime: "2026-01-07T10:00:00+01:00",
	}

	raw, err := EncodeQRPayload(in)
	require.NoError(t, err)

	out, err := DecodeQRPayload(raw)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeQRPayloadRejectsMissingUser(t *testing.T) {
	_, err := DecodeQRPayload(`{"route":"A → B","seat":4}`)
	require.Error(t, err)

	_, err = DecodeQRPayload(`not json`)
	require.Error(t, err)
}

func TestProjectTicketPrefersJoinedRow(t *testing.T) {
	d := models.BookingDetail{
		Booking: models.Booking{
			ID: 11, SeatNumber: 4, AmountPaid: 500, PaymentReference: "PAY_x",
			BookingStatus: models.BookingActive, TravelDate: "2026-01-10",
		},
		Origin: "Main Gate", Destination: "North Campus",
		DepartureTime: "08:00:00", ArrivalTime: "09:00:00",
		PassengerName: "Ada Obi",
	}
	sel := &SelectionContext{Origin: "Stale", Destination: "Stale", PassengerName: "Stale"}

	ticket := ProjectTicket(d, sel)

	require.Equal(t, "Main Gate", ticket.Origin)
	require.Equal(t, "North Campus", ticket.Destination)
	require.Equal(t, "08:00", ticket.DepartureTime)
	require.Equal(t, "Ada Obi", ticket.PassengerName)
}

func TestProjectTicketFallsBackToSelection(t *testing.T) {
	d := models.BookingDetail{Booking: models.Booking{ID: 11, SeatNumber: 4}}
	sel := &SelectionContext{
		Origin: "Main Gate", Destination: "North Campus",
		TravelDate: "2026-01-10", DepartureTime: "08:00", PassengerName: "Ada Obi",
	}

	ticket := ProjectTicket(d, sel)

	require.Equal(t, "Main Gate", ticket.Origin)
	require.Equal(t, "2026-01-10", ticket.TravelDate)
	require.Equal(t, "08:00", ticket.DepartureTime)
}

func TestProjectTicketPlaceholders(t *testing.T) {
	ticket := ProjectTicket(models.BookingDetail{Booking: models.Booking{ID: 11}}, nil)

	require.Equal(t, "Unknown", ticket.Origin)
	require.Equal(t, "Unknown", ticket.Destination)
	require.Equal(t, "Unknown", ticket.PassengerName)
	require.Equal(t, "N/A", ticket.TravelDate)
	require.Equal(t, "N/A", ticket.DepartureTime)
	require.Equal(t, "N/A", ticket.PaymentReference)
}

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	svc := TicketService{
		Bookings: repositories.BookingRepository{DB: db},
		Now:      func() time.Time { return time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

const scanQR = `{"userId":9,"userName":"Ada Obi","route":"Main Gate → North Campus","seat":4,"amount":500,"date":"2026-01-10","time":"08:00","purchaseTime":"2026-01-07T10:00:00+01:00"}`

func activeBookingRows(qr string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "bus_id", "seat_number",
		"travel_date", "amount_paid", "payment_reference", "payment_status",
		"booking_status", "qr_code_data", "expires_at", "created_at"}).
		AddRow(11, 9, 2, 4, "2026-01-10", 500, "PAY_x", "completed", "active",
			qr, time.Date(2026, 1, 8, 10, 0, 0, 0, time.Local), time.Now())
}

func TestScanValidTicket(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("qr_code_data").WillReturnRows(activeBookingRows(scanQR))
	mock.ExpectExec("UPDATE bookings SET booking_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("LEFT JOIN profiles p").WillReturnRows(detailRows())

	result, err := svc.Scan(scanQR)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("valid = false, reason = %q", result.Reason)
	}
	if result.Ticket.SeatNumber != 4 {
		t.Fatalf("seat = %d, want 4", result.Ticket.SeatNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanReplayIsRejectedWithoutStateChange(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("qr_code_data").WillReturnRows(activeBookingRows(scanQR))
	// The conditional update misses: already used or past expiry.
	mock.ExpectExec("UPDATE bookings SET booking_status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := svc.Scan(scanQR)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if result.Valid {
		t.Fatal("replayed scan must not validate")
	}
	if result.Reason == "" {
		t.Fatal("rejection needs a reason")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanUnreadablePayload(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	result, err := svc.Scan("garbage")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if result.Valid {
		t.Fatal("garbage must not validate")
	}
}

func TestScanUnknownTicket(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("qr_code_data").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := svc.Scan(scanQR)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if result.Valid {
		t.Fatal("unknown ticket must not validate")
	}
}

func TestRenderPDF(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	ticket := models.Ticket{
		BookingID: 11, Origin: "Main Gate", Destination: "North Campus",
		TravelDate: "2026-01-10", DepartureTime: "08:00", ArrivalTime: "09:00",
		SeatNumber: 4, AmountPaid: 500, PaymentReference: "PAY_x",
		QRCodeData: scanQR, PassengerName: "Ada Obi",
		ExpiresAt: time.Date(2026, 1, 8, 10, 0, 0, 0, time.Local),
	}

	pdf, filename, err := svc.RenderPDF(ticket)
	require.NoError(t, err)
	require.Equal(t, "ticket-11.pdf", filename)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
