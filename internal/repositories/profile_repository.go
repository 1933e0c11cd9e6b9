package repositories

import (
	"database/sql"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

const profileColumns = `id, email, full_name, phone, role, is_admin, created_at, updated_at`

func (r ProfileRepository) GetByID(id int64) (models.Profile, error) {
	row := r.DB.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id=?`, id)
	return scanProfile(row)
}

func (r ProfileRepository) GetByEmail(email string) (models.Profile, error) {
	row := r.DB.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE email=?`, email)
	return scanProfile(row)
}

// GetCredentials returns the profile plus its password hash for login checks.
// The hash stays inside the repository/auth path.
func (r ProfileRepository) GetCredentials(email string) (models.Profile, string, error) {
	var p models.Profile
	var hash string
	var created, updated sql.NullTime
	err := r.DB.QueryRow(`SELECT id, email, full_name, phone, role, is_admin, password_hash, created_at, updated_at
		FROM profiles WHERE email=?`, email).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role, &p.IsAdmin, &hash, &created, &updated)
	if err != nil {
		return p, "", err
	}
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return p, hash, nil
}

func (r ProfileRepository) Create(email, passwordHash, fullName, phone string) (models.Profile, error) {
	res, err := r.DB.Exec(`INSERT INTO profiles (email, password_hash, full_name, phone, role, is_admin)
		VALUES (?,?,?,?, 'student', 0)`, email, passwordHash, fullName, phone)
	if err != nil {
		if isDuplicate(err, "uniq_email") {
			return models.Profile{}, domain.ConflictError{Resource: "profile", Msg: "email already registered", Err: err}
		}
		return models.Profile{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r ProfileRepository) Update(id int64, upd models.ProfileUpdate) error {
	sets := ""
	args := []any{}
	if upd.FullName != nil {
		sets += "full_name=?"
		args = append(args, *upd.FullName)
	}
	if upd.Phone != nil {
		if sets != "" {
			sets += ", "
		}
		sets += "phone=?"
		args = append(args, *upd.Phone)
	}
	if sets == "" {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.Exec(`UPDATE profiles SET `+sets+` WHERE id=?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// MySQL reports zero affected rows when the new values equal the stored
		// ones, so only a confirmed missing row is a miss.
		if _, gerr := r.GetByID(id); gerr == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "profile"}
		} else if gerr != nil {
			return domain.InternalError{Err: gerr}
		}
	}
	return nil
}

// Promote grants the admin role. Elevation is an admin-only server operation;
// there is no client-side access code path.
func (r ProfileRepository) Promote(id int64) error {
	res, err := r.DB.Exec(`UPDATE profiles SET is_admin=1, role='admin' WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "profile"}
	}
	return nil
}

func scanProfile(row *sql.Row) (models.Profile, error) {
	var p models.Profile
	var created, updated sql.NullTime
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role, &p.IsAdmin, &created, &updated)
	if err != nil {
		return p, err
	}
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return p, nil
}
