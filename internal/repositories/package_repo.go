package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type PackageRepo struct {
	DB intdb.DBTX
}

func (r PackageRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const packageColumns = `id, name, COALESCE(description, ''), type, price, duration_days, destination, image_url, is_active, created_at, updated_at`

func scanPackage(s scanner) (models.Package, error) {
	var p models.Package
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.Price, &p.DurationDays,
		&p.Destination, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r PackageRepo) Create(ctx context.Context, p models.Package) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO packages (name, description, type, price, duration_days, destination, image_url, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(p.Name), intdb.NullIfEmpty(p.Description), p.Type, p.Price, p.DurationDays,
		p.Destination, p.ImageURL, p.IsActive)
	if err != nil {
		return 0, mapError(err, "package")
	}
	return res.LastInsertId()
}

func (r PackageRepo) GetByID(ctx context.Context, id int64) (models.Package, error) {
	p, err := scanPackage(r.db().QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Package{}, mapError(err, "package")
	}
	return p, nil
}

func (r PackageRepo) List(ctx context.Context, f models.PackageFilter, page domain.Pagination) ([]models.Package, int, error) {
	page = page.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, f.Type)
	}
	if f.ActiveOnly {
		where = append(where, "is_active=1")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM packages WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "package")
	}

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE `+cond+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, page.PageSize, page.Offset())...)
	if err != nil {
		return nil, 0, mapError(err, "package")
	}
	defer rows.Close()

	out := []models.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, 0, mapError(err, "package")
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// Update performs PATCH-style updates based on key presence.
func (r PackageRepo) Update(ctx context.Context, id int64, upd models.PackageUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.Type != nil {
		sets = append(sets, "type=?")
		args = append(args, *upd.Type)
	}
	if upd.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *upd.Price)
	}
	if upd.DurationDays != nil {
		sets = append(sets, "duration_days=?")
		args = append(args, *upd.DurationDays)
	}
	if upd.Destination != nil {
		sets = append(sets, "destination=?")
		args = append(args, *upd.Destination)
	}
	if upd.ImageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, *upd.ImageURL)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := r.db().ExecContext(ctx, `UPDATE packages SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return mapError(err, "package")
}

// Delete fails with a conflict while bookings still reference the package.
func (r PackageRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM packages WHERE id=?`, id)
	if err != nil {
		return mapError(err, "package")
	}
	return affected(res, "package")
}
