package repositories

import (
	"database/sql"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

// SeatHoldRepository manages short-lived seat reservations taken before a
// charge is initialized. A hold keeps the seat out of every other rider's
// checkout until it is consumed or lapses.
type SeatHoldRepository struct {
	DB *sql.DB
}

func (r SeatHoldRepository) Create(h models.SeatHold) (models.SeatHold, error) {
	// A lapsed hold on the same seat must not block a new checkout, so it is
	// cleared first; the unique key then arbitrates live contenders.
	_, _ = r.DB.Exec(`DELETE FROM seat_holds
		WHERE bus_id=? AND travel_date=? AND seat_number=? AND expires_at <= ?`,
		h.BusID, h.TravelDate, h.SeatNumber, time.Now())

	res, err := r.DB.Exec(`INSERT INTO seat_holds
		(user_id, bus_id, seat_number, travel_date, amount, reference, expires_at)
		VALUES (?,?,?,?,?,?,?)`,
		h.UserID, h.BusID, h.SeatNumber, h.TravelDate, h.Amount, h.Reference, h.ExpiresAt)
	if err != nil {
		if isDuplicate(err, "uniq_hold_seat") {
			return h, domain.SeatUnavailableError{Seat: h.SeatNumber, Err: err}
		}
		return h, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	h.ID = id
	return h, nil
}

func (r SeatHoldRepository) GetByReference(reference string) (models.SeatHold, error) {
	var h models.SeatHold
	var expires sql.NullTime
	err := r.DB.QueryRow(`SELECT id, user_id, bus_id, seat_number,
			DATE_FORMAT(travel_date, '%Y-%m-%d'), amount, reference, expires_at
		FROM seat_holds WHERE reference=?`, reference).Scan(
		&h.ID, &h.UserID, &h.BusID, &h.SeatNumber,
		&h.TravelDate, &h.Amount, &h.Reference, &expires)
	if err != nil {
		return h, err
	}
	h.ExpiresAt = expires.Time
	return h, nil
}

func (r SeatHoldRepository) DeleteByReference(reference string) error {
	_, err := r.DB.Exec(`DELETE FROM seat_holds WHERE reference=?`, reference)
	return err
}

// HeldSeats lists seats locked by unexpired holds.
func (r SeatHoldRepository) HeldSeats(busID int64, travelDate string, nowTime time.Time) ([]int, error) {
	rows, err := r.DB.Query(`SELECT seat_number FROM seat_holds
		WHERE bus_id=? AND travel_date=? AND expires_at > ?
		ORDER BY seat_number ASC`, busID, travelDate, nowTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return out, err
		}
		out = append(out, seat)
	}
	return out, rows.Err()
}

func (r SeatHoldRepository) DeleteExpired(nowTime time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM seat_holds WHERE expires_at <= ?`, nowTime)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
