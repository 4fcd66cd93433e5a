package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type FlightRepo struct {
	DB intdb.DBTX
}

func (r FlightRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const flightColumns = `id, booking_id, airline, flight_number, departure_airport, arrival_airport, departure_time, arrival_time, created_at, updated_at`

func scanFlight(s scanner) (models.Flight, error) {
	var f models.Flight
	err := s.Scan(&f.ID, &f.BookingID, &f.Airline, &f.FlightNumber, &f.DepartureAirport, &f.ArrivalAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r FlightRepo) Create(ctx context.Context, f models.Flight) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO flights (booking_id, airline, flight_number, departure_airport, arrival_airport, departure_time, arrival_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.BookingID, f.Airline, strings.ToUpper(f.FlightNumber), strings.ToUpper(f.DepartureAirport),
		strings.ToUpper(f.ArrivalAirport), f.DepartureTime, f.ArrivalTime)
	if err != nil {
		return 0, mapError(err, "flight")
	}
	return res.LastInsertId()
}

func (r FlightRepo) GetByID(ctx context.Context, id int64) (models.Flight, error) {
	f, err := scanFlight(r.db().QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Flight{}, mapError(err, "flight")
	}
	return f, nil
}

func (r FlightRepo) ListByBooking(ctx context.Context, bookingID int64) ([]models.Flight, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE booking_id=? ORDER BY departure_time ASC, id ASC`, bookingID)
	if err != nil {
		return nil, mapError(err, "flight")
	}
	defer rows.Close()

	out := []models.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, mapError(err, "flight")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FlightRepo) Update(ctx context.Context, id int64, upd models.FlightUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.Airline != nil {
		sets = append(sets, "airline=?")
		args = append(args, *upd.Airline)
	}
	if upd.FlightNumber != nil {
		sets = append(sets, "flight_number=?")
		args = append(args, strings.ToUpper(*upd.FlightNumber))
	}
	if upd.DepartureAirport != nil {
		sets = append(sets, "departure_airport=?")
		args = append(args, strings.ToUpper(*upd.DepartureAirport))
	}
	if upd.ArrivalAirport != nil {
		sets = append(sets, "arrival_airport=?")
		args = append(args, strings.ToUpper(*upd.ArrivalAirport))
	}
	if upd.DepartureTime != nil {
		sets = append(sets, "departure_time=?")
		args = append(args, *upd.DepartureTime)
	}
	if upd.ArrivalTime != nil {
		sets = append(sets, "arrival_time=?")
		args = append(args, *upd.ArrivalTime)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE flights SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "flight")
}

func (r FlightRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM flights WHERE id=?`, id)
	if err != nil {
		return mapError(err, "flight")
	}
	return affected(res, "flight")
}
