package services

import (
	"fmt"
	"testing"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSeatMapService(t *testing.T) (SeatMapService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := SeatMapService{
		Bookings: repositories.BookingRepository{DB: db},
		Holds:    repositories.SeatHoldRepository{DB: db},
		Buses:    repositories.BusRepository{DB: db},
		Now:      func() time.Time { return time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

func busTemplateRows(capacity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "route_id", "bus_number", "capacity",
		"departure_time", "arrival_time", "days_of_week", "is_active"}).
		AddRow(2, 3, "CAMPUS-1", capacity, "08:00:00", "09:00:00", "1,2,3,4,5", true)
}

func TestSeatMapMergesTakenAndHeld(t *testing.T) {
	svc, mock, done := newSeatMapService(t)
	defer done()

	mock.ExpectQuery("FROM buses WHERE id").WillReturnRows(busTemplateRows(12))
	mock.ExpectQuery("SELECT seat_number FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(3).AddRow(7))
	mock.ExpectQuery("SELECT seat_number FROM seat_holds").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(5))

	m, err := svc.SeatMap(2, "2026-01-10")
	if err != nil {
		t.Fatalf("seat map error: %v", err)
	}
	if m.Capacity != 12 {
		t.Fatalf("capacity = %d, want 12", m.Capacity)
	}
	if fmt.Sprint(m.Taken) != "[3 7]" {
		t.Fatalf("taken = %v, want [3 7]", m.Taken)
	}
	if fmt.Sprint(m.Held) != "[5]" {
		t.Fatalf("held = %v, want [5]", m.Held)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatMapUnknownBus(t *testing.T) {
	svc, mock, done := newSeatMapService(t)
	defer done()

	mock.ExpectQuery("FROM buses WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.SeatMap(99, "2026-01-10")
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSeatMapStoreFailureIsAnError(t *testing.T) {
	svc, mock, done := newSeatMapService(t)
	defer done()

	mock.ExpectQuery("FROM buses WHERE id").WillReturnRows(busTemplateRows(12))
	mock.ExpectQuery("SELECT seat_number FROM bookings").
		WillReturnError(fmt.Errorf("connection reset"))

	// A failed availability read must never present as a fully open bus.
	_, err := svc.SeatMap(2, "2026-01-10")
	if err == nil {
		t.Fatal("expected error, got seat map")
	}
}

func TestSeatMapRejectsBadDate(t *testing.T) {
	svc, _, done := newSeatMapService(t)
	defer done()

	_, err := svc.SeatMap(2, "10/01/2026")
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}
