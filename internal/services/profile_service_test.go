package services

import (
	"testing"

	"campusbus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newProfileService(t *testing.T) (ProfileService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ProfileService{
		Repo:     repositories.ProfileRepository{DB: db},
		Notifier: NotificationService{Repo: repositories.NotificationRepository{DB: db}},
	}
	return svc, mock, func() { db.Close() }
}

func TestEnsureProfileReturnsExisting(t *testing.T) {
	svc, mock, done := newProfileService(t)
	defer done()

	mock.ExpectQuery("FROM profiles WHERE email").
		WithArgs("ada@campus.edu").
		WillReturnRows(profileRows())

	p, created, err := svc.EnsureProfile("  ADA@Campus.edu ", "hash", "Ada Obi")
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if created {
		t.Fatal("existing profile must not report created")
	}
	if p.ID != 9 {
		t.Fatalf("id = %d, want 9", p.ID)
	}
}

func TestEnsureProfileRecoversFromConcurrentCreate(t *testing.T) {
	svc, mock, done := newProfileService(t)
	defer done()

	// Not there on first read, but another request wins the insert race.
	mock.ExpectQuery("FROM profiles WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO profiles").WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'ada@campus.edu' for key 'profiles.uniq_email'",
	})
	mock.ExpectQuery("FROM profiles WHERE email").
		WillReturnRows(profileRows())

	p, created, err := svc.EnsureProfile("ada@campus.edu", "hash", "Ada Obi")
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if created {
		t.Fatal("losing the insert race must not report created")
	}
	if p.ID != 9 {
		t.Fatalf("id = %d, want 9", p.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureProfileCreatesAndWelcomes(t *testing.T) {
	svc, mock, done := newProfileService(t)
	defer done()

	mock.ExpectQuery("FROM profiles WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO profiles").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM profiles WHERE id").WillReturnRows(profileRows())
	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(1, 1))

	p, created, err := svc.EnsureProfile("ada@campus.edu", "hash", "Ada Obi")
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if !created {
		t.Fatal("fresh profile must report created")
	}
	if p.Email != "ada@campus.edu" {
		t.Fatalf("email = %q", p.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
