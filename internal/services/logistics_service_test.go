package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

var flightCols = []string{"id", "booking_id", "airline", "flight_number", "departure_airport", "arrival_airport", "departure_time", "arrival_time", "created_at", "updated_at"}

func TestLogisticsWritesRequireAdmin(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}
	ctx := context.Background()

	if _, err := svc.CreateFlight(ctx, domain.OwnerAccess(7), 5, models.Flight{}); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.CreateTransfer(ctx, domain.OwnerAccess(7), 5, models.Transfer{}); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.DeleteHotelStay(ctx, domain.OwnerAccess(7), 1); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	expectMet(t, mock)
}

func TestCreateFlightRequiresBooking(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}

	mock.ExpectQuery("FROM bookings b WHERE b.id=\\?").WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := svc.CreateFlight(context.Background(), domain.AccessFor(1, domain.RoleAdmin), 5, models.Flight{Airline: "Ethiopian"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectMet(t, mock)
}

func TestCreateFlight(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}
	dep := time.Date(2026, 12, 1, 8, 30, 0, 0, time.UTC)
	arr := dep.Add(5 * time.Hour)

	mock.ExpectQuery("FROM bookings b WHERE b.id=\\?").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 7, "confirmed", "10.00"))
	mock.ExpectExec("INSERT INTO flights").
		WithArgs(int64(5), "Ethiopian", "ET302", "ADD", "JED", dep, arr).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM flights WHERE id=\\?").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(flightCols).AddRow(11, 5, "Ethiopian", "ET302", "ADD", "JED", dep, arr, dep, dep))

	got, err := svc.CreateFlight(context.Background(), domain.AccessFor(1, domain.RoleAdmin), 5, models.Flight{
		Airline: "Ethiopian", FlightNumber: "et302", DepartureAirport: "add", ArrivalAirport: "jed",
		DepartureTime: dep, ArrivalTime: arr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 11 || got.BookingID != 5 {
		t.Fatalf("unexpected flight %+v", got)
	}
	expectMet(t, mock)
}

func TestCreateHotelStayRequiresHotel(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}

	mock.ExpectQuery("FROM bookings b WHERE b.id=\\?").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 7, "confirmed", "10.00"))
	mock.ExpectQuery("FROM hotels WHERE id=\\?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "country", "stars", "address", "description", "created_at", "updated_at"}))

	_, err := svc.CreateHotelStay(context.Background(), domain.AccessFor(1, domain.RoleAdmin), 5, models.BookingHotel{HotelID: 3})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectMet(t, mock)
}

func TestUpdateTransferRequiresRow(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}
	vehicle := "bus"

	mock.ExpectQuery("FROM transfers WHERE id=\\?").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "transfer_type", "pickup_location", "dropoff_location", "pickup_time", "vehicle", "created_at", "updated_at"}))

	_, err := svc.UpdateTransfer(context.Background(), domain.AccessFor(1, domain.RoleAdmin), 4, models.TransferUpdate{Vehicle: &vehicle})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteFlightMissingRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM flights WHERE id=\\?").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (LogisticsService{DB: db}).DeleteFlight(context.Background(), domain.AccessFor(1, domain.RoleAdmin), 4); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectMet(t, mock)
}

func TestListFlightsFollowsBookingAccess(t *testing.T) {
	db, mock := newMock(t)
	svc := LogisticsService{DB: db}

	mock.ExpectQuery("FROM bookings b WHERE b.id=\\?").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 7, "confirmed", "10.00"))
	if _, err := svc.ListFlights(context.Background(), domain.OwnerAccess(8), 5); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	mock.ExpectQuery("FROM bookings b WHERE b.id=\\?").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 7, "confirmed", "10.00"))
	mock.ExpectQuery("FROM flights WHERE booking_id=\\?").WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(flightCols))
	list, err := svc.ListFlights(context.Background(), domain.OwnerAccess(7), 5)
	if err != nil || len(list) != 0 {
		t.Fatalf("unexpected result %v %+v", err, list)
	}
	expectMet(t, mock)
}
