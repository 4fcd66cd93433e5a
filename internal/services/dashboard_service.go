package services

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
)

// DashboardService aggregates admin statistics. The queries are independent
// and run concurrently; the combined result is cached for TTL.
type DashboardService struct {
	DB    *sql.DB
	Cache *cache.RedisCache
	TTL   time.Duration
}

func (s DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return cache.GetOrSet(s.Cache, ctx, DashboardCacheKey, ttl, func() (models.DashboardStats, error) {
		return s.collect(ctx)
	})
}

func (s DashboardService) collect(ctx context.Context) (models.DashboardStats, error) {
	repo := repositories.StatsRepo{DB: sharedDB(s.DB)}
	var out models.DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Users, err = repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Packages, err = repo.CountPackages(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.BookingsByStatus, err = repo.CountBookingsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = repo.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.BookingsPerMonth, err = repo.BookingsPerMonth(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TopPackages, err = repo.TopPackages(gctx, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}

	for _, n := range out.BookingsByStatus {
		out.TotalBookings += n
	}
	return out, nil
}
