package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type mockLogistics struct {
	mock.Mock
	LogisticsService
}

func (m *mockLogistics) CreateFlight(ctx context.Context, a domain.Access, bookingID int64, f models.Flight) (models.Flight, error) {
	args := m.Called(ctx, a, bookingID, f)
	return args.Get(0).(models.Flight), args.Error(1)
}

func (m *mockLogistics) DeleteFlight(ctx context.Context, a domain.Access, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

func (m *mockLogistics) CreateHotelStay(ctx context.Context, a domain.Access, bookingID int64, bh models.BookingHotel) (models.BookingHotel, error) {
	args := m.Called(ctx, a, bookingID, bh)
	return args.Get(0).(models.BookingHotel), args.Error(1)
}

func (m *mockLogistics) UpdateTransfer(ctx context.Context, a domain.Access, id int64, upd models.TransferUpdate) (models.Transfer, error) {
	args := m.Called(ctx, a, id, upd)
	return args.Get(0).(models.Transfer), args.Error(1)
}

var isAdmin = mock.MatchedBy(func(a domain.Access) bool { return a.IsAdmin() })

func TestCreateFlightParsesTimes(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.POST("/bookings/:id/flights", LogisticsHandler{Logistics: svc}.CreateFlight)

	dep := time.Date(2026, 12, 1, 8, 30, 0, 0, time.UTC)
	svc.On("CreateFlight", mock.Anything, isAdmin, int64(5), mock.MatchedBy(func(f models.Flight) bool {
		return f.FlightNumber == "ET302" && f.DepartureTime.Equal(dep)
	})).Return(models.Flight{ID: 9, BookingID: 5, FlightNumber: "ET302"}, nil)

	w := serve(r, http.MethodPost, "/bookings/5/flights", jsonBody(map[string]string{
		"airline":           "Ethiopian",
		"flight_number":     "ET302",
		"departure_airport": "ADD",
		"arrival_airport":   "JED",
		"departure_time":    "2026-12-01T08:30:00Z",
		"arrival_time":      "2026-12-01T11:00:00Z",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	bodyContains(t, w, `"flight_number":"ET302"`)
	svc.AssertExpectations(t)
}

func TestCreateFlightRejectsBadTime(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.POST("/bookings/:id/flights", LogisticsHandler{Logistics: svc}.CreateFlight)

	w := serve(r, http.MethodPost, "/bookings/5/flights", jsonBody(map[string]string{
		"airline":           "Ethiopian",
		"flight_number":     "ET302",
		"departure_airport": "ADD",
		"arrival_airport":   "JED",
		"departure_time":    "tomorrow",
		"arrival_time":      "2026-12-01T11:00:00Z",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bodyContains(t, w, "departure_time")
	svc.AssertNotCalled(t, "CreateFlight", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFlightMissingFields(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.POST("/bookings/:id/flights", LogisticsHandler{Logistics: svc}.CreateFlight)

	w := serve(r, http.MethodPost, "/bookings/5/flights", jsonBody(map[string]string{"airline": "Ethiopian"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bodyContains(t, w, `"field":"flight_number"`)
}

func TestCreateHotelStayMapsMissingHotel(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.POST("/bookings/:id/hotel-stays", LogisticsHandler{Logistics: svc}.CreateHotelStay)

	svc.On("CreateHotelStay", mock.Anything, isAdmin, int64(5), mock.Anything).
		Return(models.BookingHotel{}, domain.NotFoundError{Msg: "hotel not found"})

	w := serve(r, http.MethodPost, "/bookings/5/hotel-stays", jsonBody(map[string]any{
		"hotel_id":  3,
		"check_in":  "2026-12-01",
		"check_out": "2026-12-08",
		"rooms":     2,
	}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	bodyContains(t, w, "hotel not found")
}

func TestUpdateTransferPassesOnlySentFields(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.PUT("/transfers/:id", LogisticsHandler{Logistics: svc}.UpdateTransfer)

	svc.On("UpdateTransfer", mock.Anything, isAdmin, int64(4), mock.MatchedBy(func(u models.TransferUpdate) bool {
		return u.Vehicle != nil && *u.Vehicle == "Bus" && u.PickupTime == nil && u.TransferType == nil
	})).Return(models.Transfer{ID: 4, Vehicle: "Bus"}, nil)

	w := serve(r, http.MethodPut, "/transfers/4", jsonBody(map[string]string{"vehicle": "Bus"}))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteFlightForbidden(t *testing.T) {
	svc := new(mockLogistics)
	r := newEngine(asUser(2, domain.RoleUser))
	r.DELETE("/flights/:id", LogisticsHandler{Logistics: svc}.DeleteFlight)

	svc.On("DeleteFlight", mock.Anything, mock.Anything, int64(8)).Return(domain.ForbiddenError{Msg: "admin only"})

	w := serve(r, http.MethodDelete, "/flights/8", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
