package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type BookingRepo struct {
	DB intdb.DBTX
}

func (r BookingRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `b.id, b.user_id, b.package_id, b.travel_date, b.travelers, b.status, b.total_price, b.created_at, b.updated_at`

const bookingDetailQuery = `
	SELECT ` + bookingColumns + `, p.name, p.type, u.name, u.email
	FROM bookings b
	JOIN packages p ON p.id = b.package_id
	JOIN users u ON u.id = b.user_id`

func scanBooking(s scanner) (models.Booking, error) {
	var b models.Booking
	err := s.Scan(&b.ID, &b.UserID, &b.PackageID, &b.TravelDate, &b.Travelers, &b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func scanBookingDetail(s scanner) (models.BookingDetail, error) {
	var d models.BookingDetail
	b := &d.Booking
	err := s.Scan(&b.ID, &b.UserID, &b.PackageID, &b.TravelDate, &b.Travelers, &b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
		&d.PackageName, &d.PackageType, &d.UserName, &d.UserEmail)
	return d, err
}

// Create inserts the booking row; TotalPrice must already be computed.
func (r BookingRepo) Create(ctx context.Context, b models.Booking) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO bookings (user_id, package_id, travel_date, travelers, status, total_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.UserID, b.PackageID, b.TravelDate, b.Travelers, b.Status, b.TotalPrice)
	if err != nil {
		return 0, mapError(err, "booking")
	}
	return res.LastInsertId()
}

func (r BookingRepo) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=? LIMIT 1`, id))
	if err != nil {
		return models.Booking{}, mapError(err, "booking")
	}
	return b, nil
}

// GetDetail loads the booking joined with package name/type and user name/email.
func (r BookingRepo) GetDetail(ctx context.Context, id int64) (models.BookingDetail, error) {
	d, err := scanBookingDetail(r.db().QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id=? LIMIT 1`, id))
	if err != nil {
		return models.BookingDetail{}, mapError(err, "booking")
	}
	return d, nil
}

// ListDetail returns bookings newest first; userID 0 means every user.
func (r BookingRepo) ListDetail(ctx context.Context, userID int64) ([]models.BookingDetail, error) {
	query := bookingDetailQuery
	args := []any{}
	if userID > 0 {
		query += ` WHERE b.user_id=?`
		args = append(args, userID)
	}
	query += ` ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "booking")
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, mapError(err, "booking")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update performs PATCH-style updates based on key presence. total_price is never touched.
func (r BookingRepo) Update(ctx context.Context, id int64, upd models.BookingUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.TravelDate != nil {
		sets = append(sets, "travel_date=?")
		args = append(args, *upd.TravelDate)
	}
	if upd.Travelers != nil {
		sets = append(sets, "travelers=?")
		args = append(args, *upd.Travelers)
	}
	if upd.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, *upd.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "booking")
}

// Delete removes the booking; documents, flights, hotel stays and transfers go with it via FK cascade.
func (r BookingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return mapError(err, "booking")
	}
	return affected(res, "booking")
}
