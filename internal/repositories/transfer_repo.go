package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type TransferRepo struct {
	DB intdb.DBTX
}

func (r TransferRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const transferColumns = `id, booking_id, transfer_type, pickup_location, dropoff_location, pickup_time, vehicle, created_at, updated_at`

func scanTransfer(s scanner) (models.Transfer, error) {
	var t models.Transfer
	err := s.Scan(&t.ID, &t.BookingID, &t.TransferType, &t.PickupLocation, &t.DropoffLocation, &t.PickupTime, &t.Vehicle,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r TransferRepo) Create(ctx context.Context, t models.Transfer) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO transfers (booking_id, transfer_type, pickup_location, dropoff_location, pickup_time, vehicle)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.BookingID, t.TransferType, t.PickupLocation, t.DropoffLocation, t.PickupTime, t.Vehicle)
	if err != nil {
		return 0, mapError(err, "transfer")
	}
	return res.LastInsertId()
}

func (r TransferRepo) GetByID(ctx context.Context, id int64) (models.Transfer, error) {
	t, err := scanTransfer(r.db().QueryRowContext(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Transfer{}, mapError(err, "transfer")
	}
	return t, nil
}

func (r TransferRepo) ListByBooking(ctx context.Context, bookingID int64) ([]models.Transfer, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE booking_id=? ORDER BY pickup_time ASC, id ASC`, bookingID)
	if err != nil {
		return nil, mapError(err, "transfer")
	}
	defer rows.Close()

	out := []models.Transfer{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, mapError(err, "transfer")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TransferRepo) Update(ctx context.Context, id int64, upd models.TransferUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.TransferType != nil {
		sets = append(sets, "transfer_type=?")
		args = append(args, *upd.TransferType)
	}
	if upd.PickupLocation != nil {
		sets = append(sets, "pickup_location=?")
		args = append(args, *upd.PickupLocation)
	}
	if upd.DropoffLocation != nil {
		sets = append(sets, "dropoff_location=?")
		args = append(args, *upd.DropoffLocation)
	}
	if upd.PickupTime != nil {
		sets = append(sets, "pickup_time=?")
		args = append(args, *upd.PickupTime)
	}
	if upd.Vehicle != nil {
		sets = append(sets, "vehicle=?")
		args = append(args, *upd.Vehicle)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE transfers SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "transfer")
}

func (r TransferRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM transfers WHERE id=?`, id)
	if err != nil {
		return mapError(err, "transfer")
	}
	return affected(res, "transfer")
}
