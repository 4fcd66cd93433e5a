package services

import (
	"context"
	"database/sql"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
)

const DashboardCacheKey = "dashboard:stats"

func sharedDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// invalidateDashboard drops cached aggregates after a booking mutation.
func invalidateDashboard(ctx context.Context, c *cache.RedisCache) {
	if err := c.Delete(ctx, DashboardCacheKey); err != nil {
		logger.Warn("dashboard cache invalidation failed", "error", err)
	}
}

// loadOwnedBooking fetches a booking and applies the caller's access check.
func loadOwnedBooking(ctx context.Context, db *sql.DB, access domain.Access, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	b, err := repositories.BookingRepo{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if err := access.Check(b.UserID); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}
