package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
)

func expectStats(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("COUNT\\(\\*\\) FROM users").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))
	mock.ExpectQuery("COUNT\\(\\*\\) FROM packages").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	mock.ExpectQuery("GROUP BY status").WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
		AddRow("pending", 3).AddRow("confirmed", 2))
	mock.ExpectQuery("SUM\\(total_price\\)").WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("5000.00"))
	mock.ExpectQuery("DATE_FORMAT").WillReturnRows(sqlmock.NewRows([]string{"month", "bookings", "revenue"}).
		AddRow("2026-09", 5, "5000.00"))
	mock.ExpectQuery("GROUP BY p.id").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bookings"}).
		AddRow(2, "Umrah Gold", 5))
}

func newStatsMock(t *testing.T) (*DashboardService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMock(t)
	// the fan-out order is not deterministic
	mock.MatchExpectationsInOrder(false)
	db.SetMaxOpenConns(1)
	return &DashboardService{DB: db}, mock
}

func TestDashboardStats(t *testing.T) {
	svc, mock := newStatsMock(t)
	expectStats(mock)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.Users)
	assert.Equal(t, int64(4), stats.Packages)
	assert.Equal(t, int64(5), stats.TotalBookings)
	assert.Equal(t, int64(0), stats.BookingsByStatus["cancelled"])
	assert.Equal(t, "5000.00", stats.Revenue.String())
	require.Len(t, stats.TopPackages, 1)
	assert.Equal(t, "Umrah Gold", stats.TopPackages[0].Name)
	expectMet(t, mock)
}

func TestDashboardStatsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), cache.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()

	svc, mock := newStatsMock(t)
	svc.Cache = c
	svc.TTL = time.Minute
	expectStats(mock)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists(DashboardCacheKey))

	// served from redis, no further queries expected
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Revenue.String(), second.Revenue.String())
	expectMet(t, mock)

	invalidateDashboard(context.Background(), c)
	assert.False(t, mr.Exists(DashboardCacheKey))
}
