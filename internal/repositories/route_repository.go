package repositories

import (
	"database/sql"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, origin, destination, price, is_active, created_at, updated_at`

func (r RouteRepository) ListActive() ([]models.Route, error) {
	rows, err := r.DB.Query(`SELECT ` + routeColumns + ` FROM routes WHERE is_active=1 ORDER BY origin ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	row := r.DB.QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id=?`, id)
	return scanRoute(row)
}

func (r RouteRepository) Create(rt models.Route) (models.Route, error) {
	res, err := r.DB.Exec(`INSERT INTO routes (origin, destination, price, is_active) VALUES (?,?,?,?)`,
		rt.Origin, rt.Destination, rt.Price, rt.IsActive)
	if err != nil {
		if isDuplicate(err, "uniq_route") {
			return rt, domain.ConflictError{Resource: "route", Msg: "origin/destination pair already exists", Err: err}
		}
		return rt, domain.InternalError{Err: err}
	}
	rt.ID, _ = res.LastInsertId()
	return rt, nil
}

func (r RouteRepository) UpdatePrice(id, price int64) error {
	res, err := r.DB.Exec(`UPDATE routes SET price=? WHERE id=?`, price, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) SetActive(id int64, active bool) error {
	res, err := r.DB.Exec(`UPDATE routes SET is_active=? WHERE id=?`, active, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

type routeScanner interface {
	Scan(dest ...any) error
}

func scanRoute(s routeScanner) (models.Route, error) {
	var rt models.Route
	var created, updated sql.NullTime
	if err := s.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.Price, &rt.IsActive, &created, &updated); err != nil {
		return rt, err
	}
	rt.CreatedAt = created.Time
	rt.UpdatedAt = updated.Time
	return rt, nil
}
