package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
)

// LogisticsHandler serves flights, hotel stays and transfers of a booking.
type LogisticsHandler struct {
	Logistics LogisticsService
}

type flightRequest struct {
	Airline          string `json:"airline" binding:"required"`
	FlightNumber     string `json:"flight_number" binding:"required"`
	DepartureAirport string `json:"departure_airport" binding:"required"`
	ArrivalAirport   string `json:"arrival_airport" binding:"required"`
	DepartureTime    string `json:"departure_time" binding:"required"`
	ArrivalTime      string `json:"arrival_time" binding:"required"`
}

type flightUpdateRequest struct {
	Airline          *string `json:"airline"`
	FlightNumber     *string `json:"flight_number"`
	DepartureAirport *string `json:"departure_airport"`
	ArrivalAirport   *string `json:"arrival_airport"`
	DepartureTime    *string `json:"departure_time"`
	ArrivalTime      *string `json:"arrival_time"`
}

type hotelStayRequest struct {
	HotelID  int64  `json:"hotel_id" binding:"required,gt=0"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	RoomType string `json:"room_type"`
	Rooms    int    `json:"rooms" binding:"omitempty,min=1"`
}

type hotelStayUpdateRequest struct {
	HotelID  *int64  `json:"hotel_id" binding:"omitempty,gt=0"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	RoomType *string `json:"room_type"`
	Rooms    *int    `json:"rooms" binding:"omitempty,min=1"`
}

type transferRequest struct {
	TransferType    string `json:"transfer_type" binding:"required"`
	PickupLocation  string `json:"pickup_location" binding:"required"`
	DropoffLocation string `json:"dropoff_location" binding:"required"`
	PickupTime      string `json:"pickup_time" binding:"required"`
	Vehicle         string `json:"vehicle"`
}

type transferUpdateRequest struct {
	TransferType    *string `json:"transfer_type"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	PickupTime      *string `json:"pickup_time"`
	Vehicle         *string `json:"vehicle"`
}

// Flights

func (h LogisticsHandler) ListFlights(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.Logistics.ListFlights(c.Request.Context(), middleware.Access(c), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "flights retrieved", list)
}

func (h LogisticsHandler) CreateFlight(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}
	dep, err := parseTimeField("departure_time", req.DepartureTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	arr, err := parseTimeField("arrival_time", req.ArrivalTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.Logistics.CreateFlight(c.Request.Context(), middleware.Access(c), bookingID, models.Flight{
		Airline:          req.Airline,
		FlightNumber:     req.FlightNumber,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    dep,
		ArrivalTime:      arr,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "flight created", f)
}

func (h LogisticsHandler) UpdateFlight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req flightUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	dep, err := optionalTime("departure_time", req.DepartureTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	arr, err := optionalTime("arrival_time", req.ArrivalTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.Logistics.UpdateFlight(c.Request.Context(), middleware.Access(c), id, models.FlightUpdate{
		Airline:          req.Airline,
		FlightNumber:     req.FlightNumber,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    dep,
		ArrivalTime:      arr,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "flight updated", f)
}

func (h LogisticsHandler) DeleteFlight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Logistics.DeleteFlight(c.Request.Context(), middleware.Access(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "flight deleted", nil)
}

// Hotel stays

func (h LogisticsHandler) ListHotelStays(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.Logistics.ListHotelStays(c.Request.Context(), middleware.Access(c), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel stays retrieved", list)
}

func (h LogisticsHandler) CreateHotelStay(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req hotelStayRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := parseDateField("check_in", req.CheckIn)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := parseDateField("check_out", req.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	bh, err := h.Logistics.CreateHotelStay(c.Request.Context(), middleware.Access(c), bookingID, models.BookingHotel{
		HotelID:  req.HotelID,
		CheckIn:  in,
		CheckOut: out,
		RoomType: req.RoomType,
		Rooms:    req.Rooms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "hotel stay created", bh)
}

func (h LogisticsHandler) UpdateHotelStay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req hotelStayUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := optionalDate("check_in", req.CheckIn)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := optionalDate("check_out", req.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	bh, err := h.Logistics.UpdateHotelStay(c.Request.Context(), middleware.Access(c), id, models.BookingHotelUpdate{
		HotelID:  req.HotelID,
		CheckIn:  in,
		CheckOut: out,
		RoomType: req.RoomType,
		Rooms:    req.Rooms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel stay updated", bh)
}

func (h LogisticsHandler) DeleteHotelStay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Logistics.DeleteHotelStay(c.Request.Context(), middleware.Access(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel stay deleted", nil)
}

// Transfers

func (h LogisticsHandler) ListTransfers(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.Logistics.ListTransfers(c.Request.Context(), middleware.Access(c), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "transfers retrieved", list)
}

func (h LogisticsHandler) CreateTransfer(c *gin.Context) {
	bookingID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transferRequest
	if !bindJSON(c, &req) {
		return
	}
	pickup, err := parseTimeField("pickup_time", req.PickupTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	t, err := h.Logistics.CreateTransfer(c.Request.Context(), middleware.Access(c), bookingID, models.Transfer{
		TransferType:    req.TransferType,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      pickup,
		Vehicle:         req.Vehicle,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "transfer created", t)
}

func (h LogisticsHandler) UpdateTransfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transferUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	pickup, err := optionalTime("pickup_time", req.PickupTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	t, err := h.Logistics.UpdateTransfer(c.Request.Context(), middleware.Access(c), id, models.TransferUpdate{
		TransferType:    req.TransferType,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      pickup,
		Vehicle:         req.Vehicle,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "transfer updated", t)
}

func (h LogisticsHandler) DeleteTransfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Logistics.DeleteTransfer(c.Request.Context(), middleware.Access(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "transfer deleted", nil)
}
