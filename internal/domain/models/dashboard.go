package models

import "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"

type MonthlyBookings struct {
	Month    string       `json:"month"`
	Bookings int64        `json:"bookings"`
	Revenue  domain.Money `json:"revenue"`
}

type PackagePopularity struct {
	PackageID int64  `json:"package_id"`
	Name      string `json:"name"`
	Bookings  int64  `json:"bookings"`
}

type DashboardStats struct {
	Users            int64               `json:"users"`
	Packages         int64               `json:"packages"`
	BookingsByStatus map[string]int64    `json:"bookings_by_status"`
	TotalBookings    int64               `json:"total_bookings"`
	Revenue          domain.Money        `json:"revenue"`
	BookingsPerMonth []MonthlyBookings   `json:"bookings_per_month"`
	TopPackages      []PackagePopularity `json:"top_packages"`
}
