package models

import (
	"time"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
)

const (
	PackageUmrah  = "umrah"
	PackageHajj   = "hajj"
	PackageTour   = "tour"
	PackageCustom = "custom"
)

func ValidPackageType(t string) bool {
	switch t {
	case PackageUmrah, PackageHajj, PackageTour, PackageCustom:
		return true
	}
	return false
}

// Package is a purchasable travel product; Price is per traveler.
type Package struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Type         string       `json:"type"`
	Price        domain.Money `json:"price"`
	DurationDays int          `json:"duration_days"`
	Destination  string       `json:"destination"`
	ImageURL     string       `json:"image_url"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PackageUpdate supports PATCH-style updates via key presence.
type PackageUpdate struct {
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Type         *string       `json:"type,omitempty"`
	Price        *domain.Money `json:"price,omitempty"`
	DurationDays *int          `json:"duration_days,omitempty"`
	Destination  *string       `json:"destination,omitempty"`
	ImageURL     *string       `json:"image_url,omitempty"`
	IsActive     *bool         `json:"is_active,omitempty"`
}

type PackageFilter struct {
	Type       string
	ActiveOnly bool
}

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Stars       int       `json:"stars"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HotelUpdate struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
	Stars       *int    `json:"stars,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
}
