package models

import (
	"time"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ValidBookingStatus checks enum membership only; any member may follow any other.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking is the stored row. TotalPrice is fixed at creation.
type Booking struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"user_id"`
	PackageID  int64        `json:"package_id"`
	TravelDate Date         `json:"travel_date"`
	Travelers  int          `json:"travelers"`
	Status     string       `json:"status"`
	TotalPrice domain.Money `json:"total_price"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// BookingDetail is a booking joined with its package and owner.
type BookingDetail struct {
	Booking
	PackageName string     `json:"package_name"`
	PackageType string     `json:"package_type"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	Documents   []Document `json:"documents,omitempty"`
}

// BookingInput is the validated creation request. Contact fields are
// accepted for the confirmation flow but not stored on the booking row.
type BookingInput struct {
	PackageID       int64
	TravelDate      Date
	Travelers       int
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	TravelDate *Date
	Travelers  *int
	Status     *string
}

func (u BookingUpdate) Empty() bool {
	return u.TravelDate == nil && u.Travelers == nil && u.Status == nil
}

// OnlyStatus reports whether the update touches nothing but status.
func (u BookingUpdate) OnlyStatus() bool {
	return u.Status != nil && u.TravelDate == nil && u.Travelers == nil
}
