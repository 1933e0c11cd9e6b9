package services

import (
	"testing"
	"time"

	"campusbus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSweepLapsesBookingsAndHolds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	nowTime := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)

	mock.ExpectExec("UPDATE bookings SET booking_status").
		WithArgs("expired", "active", nowTime).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM seat_holds WHERE expires_at").
		WithArgs(nowTime).
		WillReturnResult(sqlmock.NewResult(0, 2))

	svc := ExpiryService{
		Bookings: repositories.BookingRepository{DB: db},
		Holds:    repositories.SeatHoldRepository{DB: db},
	}
	if err := svc.Sweep(nowTime); err != nil {
		t.Fatalf("sweep error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
