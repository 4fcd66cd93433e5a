package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

var detailCols = []string{
	"id", "user_id", "package_id", "travel_date", "travelers", "status", "total_price", "created_at", "updated_at",
	"name", "type", "name", "email",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBookingRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	travel, _ := models.ParseDate("2026-12-01")
	price, _ := domain.ParseMoney("3000")

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(5), int64(2), "2026-12-01", 3, "pending", "3000.00").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), models.Booking{
		UserID: 5, PackageID: 2, TravelDate: travel, Travelers: 3, Status: models.BookingPending, TotalPrice: price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepoGetDetail(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("FROM bookings b\\s+JOIN packages p ON p.id = b.package_id\\s+JOIN users u ON u.id = b.user_id\\s+WHERE b.id=\\?").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(detailCols).
			AddRow(9, 5, 2, time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local), 3, "pending", "3000.00", now, now,
				"Umrah Gold", "umrah", "Abebe", "abebe@example.com"))

	d, err := BookingRepo{DB: db}.GetDetail(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.PackageName != "Umrah Gold" || d.UserEmail != "abebe@example.com" {
		t.Fatalf("join columns not mapped: %+v", d)
	}
	if d.TotalPrice.String() != "3000.00" || d.TravelDate.String() != "2026-12-01" {
		t.Fatalf("unexpected values: %s %s", d.TotalPrice, d.TravelDate)
	}
}

func TestBookingRepoGetDetailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(404)).WillReturnRows(sqlmock.NewRows(detailCols))

	_, err := BookingRepo{DB: db}.GetDetail(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingRepoListDetailFiltersOwner(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("WHERE b.user_id=\\? ORDER BY b.created_at DESC").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(detailCols).
			AddRow(2, 5, 1, now, 1, "pending", "10.00", now, now, "Tour", "tour", "A", "a@x.io").
			AddRow(1, 5, 1, now, 2, "confirmed", "20.00", now, now, "Tour", "tour", "A", "a@x.io"))

	list, err := BookingRepo{DB: db}.ListDetail(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestBookingRepoUpdateOnlyPresentFields(t *testing.T) {
	db, mock := newMock(t)
	status := models.BookingConfirmed

	mock.ExpectExec("UPDATE bookings SET status=\\?,updated_at=NOW\\(\\) WHERE id=\\?").
		WithArgs("confirmed", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (BookingRepo{DB: db}).Update(context.Background(), 7, models.BookingUpdate{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepoUpdateEmptyIsNoop(t *testing.T) {
	db, mock := newMock(t)
	if err := (BookingRepo{DB: db}).Update(context.Background(), 7, models.BookingUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statement expected: %v", err)
	}
}

func TestBookingRepoDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM bookings WHERE id=\\?").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (BookingRepo{DB: db}).Delete(context.Background(), 3); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingRepoFallsBackToSharedDB(t *testing.T) {
	db, mock := newMock(t)
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() { intconfig.DB = prev })

	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := (BookingRepo{}).Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
