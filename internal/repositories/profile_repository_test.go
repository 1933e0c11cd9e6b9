package repositories

import (
	"testing"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func strPtr(s string) *string { return &s }

func existingProfileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "full_name", "phone", "role",
		"is_admin", "created_at", "updated_at"}).
		AddRow(9, "ada@campus.edu", "Ada Obi", "", "student", false, nil, nil)
}

func TestUpdateNoopEditIsNotAMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := ProfileRepository{DB: db}

	// MySQL reports zero affected rows for a value-identical update; the row
	// exists, so the edit must still read as success.
	mock.ExpectExec("UPDATE profiles SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM profiles WHERE id").
		WillReturnRows(existingProfileRows())

	if err := repo.Update(9, models.ProfileUpdate{FullName: strPtr("Ada Obi")}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := ProfileRepository{DB: db}

	mock.ExpectExec("UPDATE profiles SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM profiles WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err = repo.Update(404, models.ProfileUpdate{FullName: strPtr("Nobody")})
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
