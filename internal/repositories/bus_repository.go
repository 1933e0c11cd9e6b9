package repositories

import (
	"database/sql"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

// BusRepository stores recurring weekly bus templates, not dated trips.
type BusRepository struct {
	DB *sql.DB
}

const busColumns = `id, route_id, bus_number, capacity, departure_time, arrival_time, days_of_week, is_active`

func (r BusRepository) ListActiveByRoute(routeID int64) ([]models.BusTemplate, error) {
	rows, err := r.DB.Query(`SELECT `+busColumns+` FROM buses
		WHERE route_id=? AND is_active=1 ORDER BY departure_time ASC`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusTemplate{}
	for rows.Next() {
		var b models.BusTemplate
		if err := rows.Scan(&b.ID, &b.RouteID, &b.BusNumber, &b.Capacity,
			&b.DepartureTime, &b.ArrivalTime, &b.DaysOfWeek, &b.IsActive); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) GetByID(id int64) (models.BusTemplate, error) {
	var b models.BusTemplate
	err := r.DB.QueryRow(`SELECT `+busColumns+` FROM buses WHERE id=?`, id).Scan(
		&b.ID, &b.RouteID, &b.BusNumber, &b.Capacity,
		&b.DepartureTime, &b.ArrivalTime, &b.DaysOfWeek, &b.IsActive)
	return b, err
}

func (r BusRepository) Create(b models.BusTemplate) (models.BusTemplate, error) {
	res, err := r.DB.Exec(`INSERT INTO buses
		(route_id, bus_number, capacity, departure_time, arrival_time, days_of_week, is_active)
		VALUES (?,?,?,?,?,?,?)`,
		b.RouteID, b.BusNumber, b.Capacity, b.DepartureTime, b.ArrivalTime, b.DaysOfWeek, b.IsActive)
	if err != nil {
		return b, domain.InternalError{Err: err}
	}
	b.ID, _ = res.LastInsertId()
	return b, nil
}

func (r BusRepository) SetActive(id int64, active bool) error {
	res, err := r.DB.Exec(`UPDATE buses SET is_active=? WHERE id=?`, active, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}
