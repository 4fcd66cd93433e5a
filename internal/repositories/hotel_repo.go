package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type HotelRepo struct {
	DB intdb.DBTX
}

func (r HotelRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const hotelColumns = `id, name, city, country, stars, address, COALESCE(description, ''), created_at, updated_at`

func scanHotel(s scanner) (models.Hotel, error) {
	var h models.Hotel
	err := s.Scan(&h.ID, &h.Name, &h.City, &h.Country, &h.Stars, &h.Address, &h.Description, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

func (r HotelRepo) Create(ctx context.Context, h models.Hotel) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO hotels (name, city, country, stars, address, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(h.Name), h.City, h.Country, h.Stars, h.Address, intdb.NullIfEmpty(h.Description))
	if err != nil {
		return 0, mapError(err, "hotel")
	}
	return res.LastInsertId()
}

func (r HotelRepo) GetByID(ctx context.Context, id int64) (models.Hotel, error) {
	h, err := scanHotel(r.db().QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Hotel{}, mapError(err, "hotel")
	}
	return h, nil
}

// List returns hotels, optionally filtered by city.
func (r HotelRepo) List(ctx context.Context, city string) ([]models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels`
	args := []any{}
	if city = strings.TrimSpace(city); city != "" {
		query += ` WHERE city=?`
		args = append(args, city)
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "hotel")
	}
	defer rows.Close()

	out := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, mapError(err, "hotel")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update performs PATCH-style updates based on key presence.
func (r HotelRepo) Update(ctx context.Context, id int64, upd models.HotelUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.City != nil {
		sets = append(sets, "city=?")
		args = append(args, *upd.City)
	}
	if upd.Country != nil {
		sets = append(sets, "country=?")
		args = append(args, *upd.Country)
	}
	if upd.Stars != nil {
		sets = append(sets, "stars=?")
		args = append(args, *upd.Stars)
	}
	if upd.Address != nil {
		sets = append(sets, "address=?")
		args = append(args, *upd.Address)
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *upd.Description)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE hotels SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "hotel")
}

func (r HotelRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM hotels WHERE id=?`, id)
	if err != nil {
		return mapError(err, "hotel")
	}
	return affected(res, "hotel")
}
