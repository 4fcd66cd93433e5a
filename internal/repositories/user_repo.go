package repositories

import (
	"context"
	"strings"

	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type UserRepo struct {
	DB intdb.DBTX
}

func (r UserRepo) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, phone, password_hash, role, created_at, updated_at`

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepo) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES (?, ?, ?, ?, ?)
	`, strings.TrimSpace(u.Name), strings.ToLower(strings.TrimSpace(u.Email)), strings.TrimSpace(u.Phone), u.PasswordHash, u.Role)
	if err != nil {
		return 0, mapError(err, "user")
	}
	return res.LastInsertId()
}

func (r UserRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.User{}, mapError(err, "user")
	}
	return u, nil
}

func (r UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return models.User{}, mapError(err, "user")
	}
	return u, nil
}

// List returns one page of users, newest first, plus the total count.
func (r UserRepo) List(ctx context.Context, page domain.Pagination) ([]models.User, int, error) {
	page = page.Normalize()

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapError(err, "user")
	}

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, mapError(err, "user")
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, mapError(err, "user")
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE users SET role=?, updated_at=NOW() WHERE id=?`, role, id)
	return mapError(err, "user")
}
