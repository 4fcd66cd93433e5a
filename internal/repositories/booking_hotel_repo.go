package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

// BookingHotelRepo stores hotel stays attached to bookings.
type BookingHotelRepo struct {
	DB intdb.DBTX
}

func (r BookingHotelRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingHotelQuery = `
	SELECT bh.id, bh.booking_id, bh.hotel_id, h.name, bh.check_in, bh.check_out, bh.room_type, bh.rooms, bh.created_at, bh.updated_at
	FROM booking_hotels bh
	JOIN hotels h ON h.id = bh.hotel_id`

func scanBookingHotel(s scanner) (models.BookingHotel, error) {
	var bh models.BookingHotel
	err := s.Scan(&bh.ID, &bh.BookingID, &bh.HotelID, &bh.HotelName, &bh.CheckIn, &bh.CheckOut, &bh.RoomType, &bh.Rooms,
		&bh.CreatedAt, &bh.UpdatedAt)
	return bh, err
}

func (r BookingHotelRepo) Create(ctx context.Context, bh models.BookingHotel) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO booking_hotels (booking_id, hotel_id, check_in, check_out, room_type, rooms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, bh.BookingID, bh.HotelID, bh.CheckIn, bh.CheckOut, bh.RoomType, bh.Rooms)
	if err != nil {
		return 0, mapError(err, "hotel stay")
	}
	return res.LastInsertId()
}

func (r BookingHotelRepo) GetByID(ctx context.Context, id int64) (models.BookingHotel, error) {
	bh, err := scanBookingHotel(r.db().QueryRowContext(ctx, bookingHotelQuery+` WHERE bh.id=? LIMIT 1`, id))
	if err != nil {
		return models.BookingHotel{}, mapError(err, "hotel stay")
	}
	return bh, nil
}

func (r BookingHotelRepo) ListByBooking(ctx context.Context, bookingID int64) ([]models.BookingHotel, error) {
	rows, err := r.db().QueryContext(ctx, bookingHotelQuery+` WHERE bh.booking_id=? ORDER BY bh.check_in ASC, bh.id ASC`, bookingID)
	if err != nil {
		return nil, mapError(err, "hotel stay")
	}
	defer rows.Close()

	out := []models.BookingHotel{}
	for rows.Next() {
		bh, err := scanBookingHotel(rows)
		if err != nil {
			return nil, mapError(err, "hotel stay")
		}
		out = append(out, bh)
	}
	return out, rows.Err()
}

func (r BookingHotelRepo) Update(ctx context.Context, id int64, upd models.BookingHotelUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.HotelID != nil {
		sets = append(sets, "hotel_id=?")
		args = append(args, *upd.HotelID)
	}
	if upd.CheckIn != nil {
		sets = append(sets, "check_in=?")
		args = append(args, *upd.CheckIn)
	}
	if upd.CheckOut != nil {
		sets = append(sets, "check_out=?")
		args = append(args, *upd.CheckOut)
	}
	if upd.RoomType != nil {
		sets = append(sets, "room_type=?")
		args = append(args, *upd.RoomType)
	}
	if upd.Rooms != nil {
		sets = append(sets, "rooms=?")
		args = append(args, *upd.Rooms)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE booking_hotels SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "hotel stay")
}

func (r BookingHotelRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM booking_hotels WHERE id=?`, id)
	if err != nil {
		return mapError(err, "hotel stay")
	}
	return affected(res, "hotel stay")
}
