package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

// CatalogService serves packages and hotels.
type CatalogService struct {
	DB *sql.DB
}

func (s CatalogService) db() *sql.DB {
	return sharedDB(s.DB)
}

func (s CatalogService) packages() repositories.PackageRepo {
	return repositories.PackageRepo{DB: s.db()}
}

func (s CatalogService) hotels() repositories.HotelRepo {
	return repositories.HotelRepo{DB: s.db()}
}

// ListPackages hides inactive packages unless the caller is an admin.
func (s CatalogService) ListPackages(ctx context.Context, access domain.Access, f models.PackageFilter, page domain.Pagination) ([]models.Package, domain.Pagination, error) {
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	if f.Type != "" && !models.ValidPackageType(f.Type) {
		return nil, page, domain.ValidationError{Field: "type", Msg: "must be one of umrah, hajj, tour, custom"}
	}
	f.ActiveOnly = !access.IsAdmin()

	page = page.Normalize()
	list, total, err := s.packages().List(ctx, f, page)
	if err != nil {
		return nil, page, err
	}
	page.Total = total
	return list, page, nil
}

func (s CatalogService) GetPackage(ctx context.Context, access domain.Access, id int64) (models.Package, error) {
	if err := validID(id, "id"); err != nil {
		return models.Package{}, err
	}
	p, err := s.packages().GetByID(ctx, id)
	if err != nil {
		return models.Package{}, err
	}
	if !p.IsActive && !access.IsAdmin() {
		return models.Package{}, domain.NotFoundError{Resource: "package"}
	}
	return p, nil
}

func validatePackage(p models.Package) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if !models.ValidPackageType(p.Type) {
		return domain.ValidationError{Field: "type", Msg: "must be one of umrah, hajj, tour, custom"}
	}
	if !p.Price.IsPositive() {
		return domain.ValidationError{Field: "price", Msg: "must be greater than 0"}
	}
	if p.DurationDays < 1 {
		return domain.ValidationError{Field: "duration_days", Msg: "must be at least 1"}
	}
	return nil
}

func (s CatalogService) CreatePackage(ctx context.Context, p models.Package) (models.Package, error) {
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	if err := validatePackage(p); err != nil {
		return models.Package{}, err
	}
	id, err := s.packages().Create(ctx, p)
	if err != nil {
		return models.Package{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "catalog", "create_package", "package_id", id)
	return s.packages().GetByID(ctx, id)
}

func (s CatalogService) UpdatePackage(ctx context.Context, id int64, upd models.PackageUpdate) (models.Package, error) {
	if err := validID(id, "id"); err != nil {
		return models.Package{}, err
	}
	current, err := s.packages().GetByID(ctx, id)
	if err != nil {
		return models.Package{}, err
	}

	merged := current
	if upd.Name != nil {
		merged.Name = *upd.Name
	}
	if upd.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*upd.Type))
		upd.Type = &t
		merged.Type = t
	}
	if upd.Price != nil {
		merged.Price = *upd.Price
	}
	if upd.DurationDays != nil {
		merged.DurationDays = *upd.DurationDays
	}
	if err := validatePackage(merged); err != nil {
		return models.Package{}, err
	}

	if err := s.packages().Update(ctx, id, upd); err != nil {
		return models.Package{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "catalog", "update_package", "package_id", id)
	return s.packages().GetByID(ctx, id)
}

// DeletePackage fails with a conflict while bookings reference the package.
func (s CatalogService) DeletePackage(ctx context.Context, id int64) error {
	if err := validID(id, "id"); err != nil {
		return err
	}
	if err := s.packages().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "catalog", "delete_package", "package_id", id)
	return nil
}

func (s CatalogService) ListHotels(ctx context.Context, city string) ([]models.Hotel, error) {
	return s.hotels().List(ctx, city)
}

func (s CatalogService) GetHotel(ctx context.Context, id int64) (models.Hotel, error) {
	if err := validID(id, "id"); err != nil {
		return models.Hotel{}, err
	}
	return s.hotels().GetByID(ctx, id)
}

func validateHotel(h models.Hotel) error {
	if strings.TrimSpace(h.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if h.Stars < 0 || h.Stars > 5 {
		return domain.ValidationError{Field: "stars", Msg: "must be between 0 and 5"}
	}
	return nil
}

func (s CatalogService) CreateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	if err := validateHotel(h); err != nil {
		return models.Hotel{}, err
	}
	id, err := s.hotels().Create(ctx, h)
	if err != nil {
		return models.Hotel{}, err
	}
	return s.hotels().GetByID(ctx, id)
}

func (s CatalogService) UpdateHotel(ctx context.Context, id int64, upd models.HotelUpdate) (models.Hotel, error) {
	if err := validID(id, "id"); err != nil {
		return models.Hotel{}, err
	}
	current, err := s.hotels().GetByID(ctx, id)
	if err != nil {
		return models.Hotel{}, err
	}
	if upd.Name != nil {
		current.Name = *upd.Name
	}
	if upd.Stars != nil {
		current.Stars = *upd.Stars
	}
	if err := validateHotel(current); err != nil {
		return models.Hotel{}, err
	}
	if err := s.hotels().Update(ctx, id, upd); err != nil {
		return models.Hotel{}, err
	}
	return s.hotels().GetByID(ctx, id)
}

func (s CatalogService) DeleteHotel(ctx context.Context, id int64) error {
	if err := validID(id, "id"); err != nil {
		return err
	}
	return s.hotels().Delete(ctx, id)
}
