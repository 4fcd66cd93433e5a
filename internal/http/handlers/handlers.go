// Package handlers adapts HTTP requests onto the service layer.
package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/services"
)

type BookingService interface {
	Create(ctx context.Context, access domain.Access, in models.BookingInput, uploads []models.DocumentUpload) (models.BookingDetail, error)
	Get(ctx context.Context, access domain.Access, id int64) (models.BookingDetail, error)
	List(ctx context.Context, access domain.Access) ([]models.BookingDetail, error)
	Update(ctx context.Context, access domain.Access, id int64, upd models.BookingUpdate) (models.BookingDetail, error)
	Delete(ctx context.Context, access domain.Access, id int64) error
	AttachDocuments(ctx context.Context, access domain.Access, id int64, uploads []models.DocumentUpload) ([]models.Document, error)
}

type DocumentService interface {
	ListForBooking(ctx context.Context, access domain.Access, bookingID int64) ([]models.Document, error)
	Download(ctx context.Context, access domain.Access, id int64) (services.DocumentFile, error)
	Delete(ctx context.Context, access domain.Access, id int64) error
}

type InvoiceService interface {
	GenerateInvoice(ctx context.Context, access domain.Access, bookingID int64) ([]byte, string, error)
}

type LogisticsService interface {
	ListFlights(ctx context.Context, access domain.Access, bookingID int64) ([]models.Flight, error)
	CreateFlight(ctx context.Context, access domain.Access, bookingID int64, f models.Flight) (models.Flight, error)
	UpdateFlight(ctx context.Context, access domain.Access, id int64, upd models.FlightUpdate) (models.Flight, error)
	DeleteFlight(ctx context.Context, access domain.Access, id int64) error

	ListHotelStays(ctx context.Context, access domain.Access, bookingID int64) ([]models.BookingHotel, error)
	CreateHotelStay(ctx context.Context, access domain.Access, bookingID int64, bh models.BookingHotel) (models.BookingHotel, error)
	UpdateHotelStay(ctx context.Context, access domain.Access, id int64, upd models.BookingHotelUpdate) (models.BookingHotel, error)
	DeleteHotelStay(ctx context.Context, access domain.Access, id int64) error

	ListTransfers(ctx context.Context, access domain.Access, bookingID int64) ([]models.Transfer, error)
	CreateTransfer(ctx context.Context, access domain.Access, bookingID int64, t models.Transfer) (models.Transfer, error)
	UpdateTransfer(ctx context.Context, access domain.Access, id int64, upd models.TransferUpdate) (models.Transfer, error)
	DeleteTransfer(ctx context.Context, access domain.Access, id int64) error
}

type CatalogService interface {
	ListPackages(ctx context.Context, access domain.Access, f models.PackageFilter, page domain.Pagination) ([]models.Package, domain.Pagination, error)
	GetPackage(ctx context.Context, access domain.Access, id int64) (models.Package, error)
	CreatePackage(ctx context.Context, p models.Package) (models.Package, error)
	UpdatePackage(ctx context.Context, id int64, upd models.PackageUpdate) (models.Package, error)
	DeletePackage(ctx context.Context, id int64) error

	ListHotels(ctx context.Context, city string) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id int64) (models.Hotel, error)
	CreateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error)
	UpdateHotel(ctx context.Context, id int64, upd models.HotelUpdate) (models.Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (services.AuthResult, error)
	Login(ctx context.Context, email, password string) (services.AuthResult, error)
	Me(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, page domain.Pagination) ([]models.User, domain.Pagination, error)
	UpdateRole(ctx context.Context, id int64, role string) (models.User, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
}

func init() {
	// report json/form names in validation errors instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}
