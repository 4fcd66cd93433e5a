package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

type mockCatalog struct {
	mock.Mock
	CatalogService
}

func (m *mockCatalog) ListPackages(ctx context.Context, a domain.Access, f models.PackageFilter, p domain.Pagination) ([]models.Package, domain.Pagination, error) {
	args := m.Called(ctx, a, f, p)
	return args.Get(0).([]models.Package), args.Get(1).(domain.Pagination), args.Error(2)
}

func (m *mockCatalog) CreatePackage(ctx context.Context, p models.Package) (models.Package, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Package), args.Error(1)
}

func (m *mockCatalog) DeletePackage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestListPackagesPaginates(t *testing.T) {
	svc := new(mockCatalog)
	r := newEngine()
	r.GET("/packages", CatalogHandler{Catalog: svc}.ListPackages)

	svc.On("ListPackages", mock.Anything, domain.OwnerAccess(0), models.PackageFilter{Type: "umrah"}, domain.Pagination{Page: 2, PageSize: 5}).
		Return([]models.Package{{ID: 1, Name: "Umrah Gold"}}, domain.Pagination{Page: 2, PageSize: 5, Total: 6}, nil)

	w := serve(r, http.MethodGet, "/packages?type=umrah&page=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := envelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 6, env.Meta.Total)
}

func TestCreatePackageDefaultsActive(t *testing.T) {
	svc := new(mockCatalog)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.POST("/packages", CatalogHandler{Catalog: svc}.CreatePackage)

	svc.On("CreatePackage", mock.Anything, mock.MatchedBy(func(p models.Package) bool {
		return p.IsActive && p.Price.String() == "1500.50" && p.Type == "tour"
	})).Return(models.Package{ID: 3}, nil)

	w := serve(r, http.MethodPost, "/packages", jsonBody(map[string]any{
		"name": "Simien trek", "type": "tour", "price": 1500.5, "duration_days": 4,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestDeleteReferencedPackage(t *testing.T) {
	svc := new(mockCatalog)
	r := newEngine(asUser(1, domain.RoleAdmin))
	r.DELETE("/packages/:id", CatalogHandler{Catalog: svc}.DeletePackage)

	svc.On("DeletePackage", mock.Anything, int64(2)).Return(domain.ConflictError{Resource: "package", Msg: "package has bookings"})
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodDelete, "/packages/2", nil).Code)
}
