package repositories

import (
	"context"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

// StatsRepo runs the read-only aggregates behind the admin dashboard.
type StatsRepo struct {
	DB intdb.DBTX
}

func (r StatsRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StatsRepo) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, mapError(err, table)
}

func (r StatsRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users")
}

func (r StatsRepo) CountPackages(ctx context.Context) (int64, error) {
	return r.count(ctx, "packages")
}

func (r StatsRepo) CountBookingsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, mapError(err, "bookings")
	}
	defer rows.Close()

	out := map[string]int64{
		models.BookingPending:   0,
		models.BookingConfirmed: 0,
		models.BookingCancelled: 0,
		models.BookingCompleted: 0,
	}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapError(err, "bookings")
		}
		out[status] = n
	}
	return out, rows.Err()
}

// Revenue sums frozen totals of confirmed and completed bookings.
func (r StatsRepo) Revenue(ctx context.Context) (domain.Money, error) {
	var m domain.Money
	err := r.db().QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_price), 0)
		FROM bookings
		WHERE status IN ('confirmed', 'completed')
	`).Scan(&m)
	return m, mapError(err, "bookings")
}

// BookingsPerMonth covers the last twelve months, oldest first.
func (r StatsRepo) BookingsPerMonth(ctx context.Context) ([]models.MonthlyBookings, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS month,
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN status IN ('confirmed', 'completed') THEN total_price ELSE 0 END), 0)
		FROM bookings
		WHERE created_at >= DATE_SUB(CURDATE(), INTERVAL 12 MONTH)
		GROUP BY month
		ORDER BY month ASC
	`)
	if err != nil {
		return nil, mapError(err, "bookings")
	}
	defer rows.Close()

	out := []models.MonthlyBookings{}
	for rows.Next() {
		var m models.MonthlyBookings
		if err := rows.Scan(&m.Month, &m.Bookings, &m.Revenue); err != nil {
			return nil, mapError(err, "bookings")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r StatsRepo) TopPackages(ctx context.Context, limit int) ([]models.PackagePopularity, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db().QueryContext(ctx, `
		SELECT p.id, p.name, COUNT(b.id) AS bookings
		FROM packages p
		JOIN bookings b ON b.package_id = p.id
		GROUP BY p.id, p.name
		ORDER BY bookings DESC, p.id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, mapError(err, "packages")
	}
	defer rows.Close()

	out := []models.PackagePopularity{}
	for rows.Next() {
		var p models.PackagePopularity
		if err := rows.Scan(&p.PackageID, &p.Name, &p.Bookings); err != nil {
			return nil, mapError(err, "packages")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
