package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// BookingRepository wraps DB access for bookings. The uniq_live_seat key is the
// true arbiter for seat races; Insert translates its duplicate-entry error into
// a SeatUnavailableError so the orchestrator can react.
type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, user_id, bus_id, seat_number,
	DATE_FORMAT(travel_date, '%Y-%m-%d'), amount_paid, payment_reference,
	payment_status, booking_status, COALESCE(qr_code_data, ''), expires_at, created_at`

func (r BookingRepository) Insert(b models.Booking) (models.Booking, error) {
	res, err := r.DB.Exec(`INSERT INTO bookings
		(user_id, bus_id, seat_number, travel_date, amount_paid, payment_reference,
		 payment_status, booking_status, qr_code_data, expires_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.BusID, b.SeatNumber, b.TravelDate, b.AmountPaid, b.PaymentReference,
		b.PaymentStatus, b.BookingStatus, b.QRCodeData, b.ExpiresAt)
	if err != nil {
		if isDuplicate(err, "uniq_live_seat") {
			return b, domain.SeatUnavailableError{Seat: b.SeatNumber, Err: err}
		}
		if isDuplicate(err, "uniq_reference") {
			return b, domain.ConflictError{Resource: "booking", Msg: "payment reference already used", Err: err}
		}
		return b, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	b.ID = id
	return b, nil
}

// HasActiveSeat is the advisory pre-check before charging. Lapsed bookings are
// excluded so the answer matches the seat map; until the sweep flips them the
// unique key still holds the row, so such a checkout loses at the insert and
// the insert remains authoritative.
func (r BookingRepository) HasActiveSeat(busID int64, travelDate string, seat int, nowTime time.Time) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM bookings
		WHERE bus_id=? AND travel_date=? AND seat_number=? AND booking_status=? AND expires_at > ? LIMIT 1`,
		busID, travelDate, seat, models.BookingActive, nowTime).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TakenSeats lists seats held by live bookings that have not lapsed yet.
func (r BookingRepository) TakenSeats(busID int64, travelDate string, nowTime time.Time) ([]int, error) {
	rows, err := r.DB.Query(`SELECT seat_number FROM bookings
		WHERE bus_id=? AND travel_date=? AND booking_status IN (?,?) AND expires_at > ?
		ORDER BY seat_number ASC`,
		busID, travelDate, models.BookingActive, models.BookingUsed, nowTime)
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

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=?`, id)
	return scanBooking(row)
}

func (r BookingRepository) FindByUserAndQR(userID int64, qrData string) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings
		WHERE user_id=? AND qr_code_data=? ORDER BY id DESC LIMIT 1`, userID, qrData)
	return scanBooking(row)
}

// GetDetail joins the booking with its template, route and rider for the
// ticket projection.
func (r BookingRepository) GetDetail(id int64) (models.BookingDetail, error) {
	var d models.BookingDetail
	var expires, created sql.NullTime
	err := r.DB.QueryRow(`SELECT b.id, b.user_id, b.bus_id, b.seat_number,
			DATE_FORMAT(b.travel_date, '%Y-%m-%d'), b.amount_paid, b.payment_reference,
			b.payment_status, b.booking_status, COALESCE(b.qr_code_data, ''),
			b.expires_at, b.created_at,
			COALESCE(r.origin, ''), COALESCE(r.destination, ''),
			COALESCE(bs.bus_number, ''), COALESCE(bs.departure_time, ''), COALESCE(bs.arrival_time, ''),
			COALESCE(p.full_name, '')
		FROM bookings b
		LEFT JOIN buses bs ON bs.id = b.bus_id
		LEFT JOIN routes r ON r.id = bs.route_id
		LEFT JOIN profiles p ON p.id = b.user_id
		WHERE b.id=?`, id).Scan(
		&d.ID, &d.UserID, &d.BusID, &d.SeatNumber,
		&d.TravelDate, &d.AmountPaid, &d.PaymentReference,
		&d.PaymentStatus, &d.BookingStatus, &d.QRCodeData,
		&expires, &created,
		&d.Origin, &d.Destination,
		&d.BusNumber, &d.DepartureTime, &d.ArrivalTime,
		&d.PassengerName,
	)
	if err != nil {
		return d, err
	}
	d.ExpiresAt = expires.Time
	d.CreatedAt = created.Time
	return d, nil
}

func (r BookingRepository) ListByUser(userID int64) ([]models.BookingDetail, error) {
	rows, err := r.DB.Query(`SELECT b.id, b.user_id, b.bus_id, b.seat_number,
			DATE_FORMAT(b.travel_date, '%Y-%m-%d'), b.amount_paid, b.payment_reference,
			b.payment_status, b.booking_status, COALESCE(b.qr_code_data, ''),
			b.expires_at, b.created_at,
			COALESCE(r.origin, ''), COALESCE(r.destination, ''),
			COALESCE(bs.bus_number, ''), COALESCE(bs.departure_time, ''), COALESCE(bs.arrival_time, ''),
			''
		FROM bookings b
		LEFT JOIN buses bs ON bs.id = b.bus_id
		LEFT JOIN routes r ON r.id = bs.route_id
		WHERE b.user_id=?
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		var d models.BookingDetail
		var expires, created sql.NullTime
		var pname string
		if err := rows.Scan(&d.ID, &d.UserID, &d.BusID, &d.SeatNumber,
			&d.TravelDate, &d.AmountPaid, &d.PaymentReference,
			&d.PaymentStatus, &d.BookingStatus, &d.QRCodeData,
			&expires, &created,
			&d.Origin, &d.Destination,
			&d.BusNumber, &d.DepartureTime, &d.ArrivalTime,
			&pname); err != nil {
			return out, err
		}
		d.ExpiresAt = expires.Time
		d.CreatedAt = created.Time
		out = append(out, d)
	}
	return out, rows.Err()
}

// MarkUsed flips an active, unexpired booking to used. The guard lives in the
// WHERE clause so a replayed scan can never re-mark a ticket.
func (r BookingRepository) MarkUsed(id int64, nowTime time.Time) (bool, error) {
	res, err := r.DB.Exec(`UPDATE bookings SET booking_status=?
		WHERE id=? AND booking_status=? AND expires_at > ?`,
		models.BookingUsed, id, models.BookingActive, nowTime)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Cancel moves the rider's own active booking to cancelled.
func (r BookingRepository) Cancel(id, userID int64) error {
	res, err := r.DB.Exec(`UPDATE bookings SET booking_status=?
		WHERE id=? AND user_id=? AND booking_status=?`,
		models.BookingCancelled, id, userID, models.BookingActive)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "active booking"}
	}
	return nil
}

// ExpireLapsed moves active bookings past their expiry to expired.
func (r BookingRepository) ExpireLapsed(nowTime time.Time) (int64, error) {
	res, err := r.DB.Exec(`UPDATE bookings SET booking_status=?
		WHERE booking_status=? AND expires_at <= ?`,
		models.BookingExpired, models.BookingActive, nowTime)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanBooking(row *sql.Row) (models.Booking, error) {
	var b models.Booking
	var expires, created sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.BusID, &b.SeatNumber,
		&b.TravelDate, &b.AmountPaid, &b.PaymentReference,
		&b.PaymentStatus, &b.BookingStatus, &b.QRCodeData,
		&expires, &created)
	if err != nil {
		return b, err
	}
	b.ExpiresAt = expires.Time
	b.CreatedAt = created.Time
	return b, nil
}

// isDuplicate reports whether err is a MySQL duplicate-entry error (1062) on
// the named key. An empty key matches any duplicate.
func isDuplicate(err error, key string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return false
	}
	return key == "" || strings.Contains(me.Message, key)
}
