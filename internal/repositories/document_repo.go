package repositories

import (
	"context"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type DocumentRepo struct {
	DB intdb.DBTX
}

func (r DocumentRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const documentColumns = `id, booking_id, file_name, original_name, file_path, file_type, file_size, mime_type, created_at`

func scanDocument(s scanner) (models.Document, error) {
	var d models.Document
	err := s.Scan(&d.ID, &d.BookingID, &d.FileName, &d.OriginalName, &d.FilePath, &d.FileType, &d.FileSize, &d.MimeType, &d.CreatedAt)
	return d, err
}

func (r DocumentRepo) Create(ctx context.Context, d models.Document) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO documents (booking_id, file_name, original_name, file_path, file_type, file_size, mime_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.BookingID, d.FileName, d.OriginalName, d.FilePath, d.FileType, d.FileSize, d.MimeType)
	if err != nil {
		return 0, mapError(err, "document")
	}
	return res.LastInsertId()
}

func (r DocumentRepo) GetByID(ctx context.Context, id int64) (models.Document, error) {
	d, err := scanDocument(r.db().QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Document{}, mapError(err, "document")
	}
	return d, nil
}

// ListByBooking returns the booking's documents, newest first.
func (r DocumentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]models.Document, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE booking_id=? ORDER BY created_at DESC, id DESC`, bookingID)
	if err != nil {
		return nil, mapError(err, "document")
	}
	defer rows.Close()

	out := []models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, mapError(err, "document")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DocumentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM documents WHERE id=?`, id)
	if err != nil {
		return mapError(err, "document")
	}
	return affected(res, "document")
}
