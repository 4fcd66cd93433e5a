package models

import "time"

type Flight struct {
	ID               int64     `json:"id"`
	BookingID        int64     `json:"booking_id"`
	Airline          string    `json:"airline"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type FlightUpdate struct {
	Airline          *string
	FlightNumber     *string
	DepartureAirport *string
	ArrivalAirport   *string
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
}

// BookingHotel is a hotel stay attached to a booking.
type BookingHotel struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	HotelID   int64     `json:"hotel_id"`
	HotelName string    `json:"hotel_name,omitempty"`
	CheckIn   Date      `json:"check_in"`
	CheckOut  Date      `json:"check_out"`
	RoomType  string    `json:"room_type"`
	Rooms     int       `json:"rooms"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingHotelUpdate struct {
	HotelID  *int64
	CheckIn  *Date
	CheckOut *Date
	RoomType *string
	Rooms    *int
}

type Transfer struct {
	ID              int64     `json:"id"`
	BookingID       int64     `json:"booking_id"`
	TransferType    string    `json:"transfer_type"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	PickupTime      time.Time `json:"pickup_time"`
	Vehicle         string    `json:"vehicle"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TransferUpdate struct {
	TransferType    *string
	PickupLocation  *string
	DropoffLocation *string
	PickupTime      *time.Time
	Vehicle         *string
}
