package repositories

import (
	"fmt"
	"testing"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newBookingRepo(t *testing.T) (BookingRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return BookingRepository{DB: db}, mock, func() { db.Close() }
}

func TestInsertMapsLiveSeatDuplicate(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '2-2026-01-10-4-1' for key 'bookings.uniq_live_seat'",
	})

	_, err := repo.Insert(models.Booking{SeatNumber: 4})
	if !domain.IsSeatUnavailable(err) {
		t.Fatalf("err = %v, want seat unavailable", err)
	}
}

func TestInsertMapsReferenceDuplicate(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'PAY_ref' for key 'bookings.uniq_reference'",
	})

	_, err := repo.Insert(models.Booking{PaymentReference: "PAY_ref"})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if domain.IsSeatUnavailable(err) {
		t.Fatal("reference duplicate must not read as seat race")
	}
}

func TestInsertWrapsOtherErrors(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(fmt.Errorf("server gone"))

	_, err := repo.Insert(models.Booking{})
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.IsSeatUnavailable(err) || domain.IsConflict(err) {
		t.Fatalf("err = %v, want plain internal error", err)
	}
}

func TestMarkUsedIsConditional(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	nowTime := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)

	mock.ExpectExec("UPDATE bookings SET booking_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	flipped, err := repo.MarkUsed(11, nowTime)
	if err != nil || !flipped {
		t.Fatalf("flipped=%v err=%v, want true", flipped, err)
	}

	mock.ExpectExec("UPDATE bookings SET booking_status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	flipped, err = repo.MarkUsed(11, nowTime)
	if err != nil || flipped {
		t.Fatalf("flipped=%v err=%v, want false on replay", flipped, err)
	}
}

func TestTakenSeatsOrdered(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectQuery("SELECT seat_number FROM bookings").
		WithArgs(2, "2026-01-10", models.BookingActive, models.BookingUsed, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(3).AddRow(7).AddRow(12))

	seats, err := repo.TakenSeats(2, "2026-01-10", time.Now())
	if err != nil {
		t.Fatalf("taken seats error: %v", err)
	}
	if fmt.Sprint(seats) != "[3 7 12]" {
		t.Fatalf("seats = %v", seats)
	}
}

func TestHasActiveSeatIgnoresLapsedBookings(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	nowTime := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)

	// The expiry predicate keeps the pre-check consistent with the seat map:
	// a lapsed booking awaiting the sweep no longer blocks checkout here.
	mock.ExpectQuery("SELECT id FROM bookings").
		WithArgs(int64(2), "2026-01-10", 4, models.BookingActive, nowTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	taken, err := repo.HasActiveSeat(2, "2026-01-10", 4, nowTime)
	if err != nil {
		t.Fatalf("pre-check error: %v", err)
	}
	if taken {
		t.Fatal("lapsed booking must not read as taken")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelOnlyOwnActiveBooking(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET booking_status").
		WithArgs(models.BookingCancelled, int64(11), int64(9), models.BookingActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(11, 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found when nothing matches", err)
	}
}
