package services

import (
	"context"
	"database/sql"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

// LogisticsService manages flights, hotel stays and transfers attached to a
// booking. Reads follow booking ownership; writes are admin only.
type LogisticsService struct {
	DB *sql.DB
}

func (s LogisticsService) db() *sql.DB {
	return sharedDB(s.DB)
}

func requireAdmin(access domain.Access) error {
	if !access.IsAdmin() {
		return domain.ForbiddenError{Msg: "admin access required"}
	}
	return nil
}

// bookingExists is the referential check for creating a child row.
func (s LogisticsService) bookingExists(ctx context.Context, bookingID int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	_, err := repositories.BookingRepo{DB: s.db()}.GetByID(ctx, bookingID)
	return err
}

func validID(id int64, field string) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "invalid id"}
	}
	return nil
}

func (s LogisticsService) ListFlights(ctx context.Context, access domain.Access, bookingID int64) ([]models.Flight, error) {
	if _, err := loadOwnedBooking(ctx, s.db(), access, bookingID); err != nil {
		return nil, err
	}
	return repositories.FlightRepo{DB: s.db()}.ListByBooking(ctx, bookingID)
}

func (s LogisticsService) CreateFlight(ctx context.Context, access domain.Access, bookingID int64, f models.Flight) (models.Flight, error) {
	if err := requireAdmin(access); err != nil {
		return models.Flight{}, err
	}
	if err := s.bookingExists(ctx, bookingID); err != nil {
		return models.Flight{}, err
	}
	f.BookingID = bookingID
	repo := repositories.FlightRepo{DB: s.db()}
	id, err := repo.Create(ctx, f)
	if err != nil {
		return models.Flight{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "logistics", "create_flight", "booking_id", bookingID, "flight_id", id)
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) UpdateFlight(ctx context.Context, access domain.Access, id int64, upd models.FlightUpdate) (models.Flight, error) {
	if err := requireAdmin(access); err != nil {
		return models.Flight{}, err
	}
	if err := validID(id, "id"); err != nil {
		return models.Flight{}, err
	}
	repo := repositories.FlightRepo{DB: s.db()}
	if _, err := repo.GetByID(ctx, id); err != nil {
		return models.Flight{}, err
	}
	if err := repo.Update(ctx, id, upd); err != nil {
		return models.Flight{}, err
	}
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) DeleteFlight(ctx context.Context, access domain.Access, id int64) error {
	if err := requireAdmin(access); err != nil {
		return err
	}
	if err := validID(id, "id"); err != nil {
		return err
	}
	return repositories.FlightRepo{DB: s.db()}.Delete(ctx, id)
}

func (s LogisticsService) ListHotelStays(ctx context.Context, access domain.Access, bookingID int64) ([]models.BookingHotel, error) {
	if _, err := loadOwnedBooking(ctx, s.db(), access, bookingID); err != nil {
		return nil, err
	}
	return repositories.BookingHotelRepo{DB: s.db()}.ListByBooking(ctx, bookingID)
}

func (s LogisticsService) CreateHotelStay(ctx context.Context, access domain.Access, bookingID int64, bh models.BookingHotel) (models.BookingHotel, error) {
	if err := requireAdmin(access); err != nil {
		return models.BookingHotel{}, err
	}
	if err := s.bookingExists(ctx, bookingID); err != nil {
		return models.BookingHotel{}, err
	}
	if err := validID(bh.HotelID, "hotel_id"); err != nil {
		return models.BookingHotel{}, err
	}
	if _, err := (repositories.HotelRepo{DB: s.db()}).GetByID(ctx, bh.HotelID); err != nil {
		return models.BookingHotel{}, err
	}
	bh.BookingID = bookingID
	if bh.Rooms <= 0 {
		bh.Rooms = 1
	}
	repo := repositories.BookingHotelRepo{DB: s.db()}
	id, err := repo.Create(ctx, bh)
	if err != nil {
		return models.BookingHotel{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "logistics", "create_hotel_stay", "booking_id", bookingID, "hotel_stay_id", id)
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) UpdateHotelStay(ctx context.Context, access domain.Access, id int64, upd models.BookingHotelUpdate) (models.BookingHotel, error) {
	if err := requireAdmin(access); err != nil {
		return models.BookingHotel{}, err
	}
	if err := validID(id, "id"); err != nil {
		return models.BookingHotel{}, err
	}
	repo := repositories.BookingHotelRepo{DB: s.db()}
	if _, err := repo.GetByID(ctx, id); err != nil {
		return models.BookingHotel{}, err
	}
	if upd.HotelID != nil {
		if _, err := (repositories.HotelRepo{DB: s.db()}).GetByID(ctx, *upd.HotelID); err != nil {
			return models.BookingHotel{}, err
		}
	}
	if err := repo.Update(ctx, id, upd); err != nil {
		return models.BookingHotel{}, err
	}
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) DeleteHotelStay(ctx context.Context, access domain.Access, id int64) error {
	if err := requireAdmin(access); err != nil {
		return err
	}
	if err := validID(id, "id"); err != nil {
		return err
	}
	return repositories.BookingHotelRepo{DB: s.db()}.Delete(ctx, id)
}

func (s LogisticsService) ListTransfers(ctx context.Context, access domain.Access, bookingID int64) ([]models.Transfer, error) {
	if _, err := loadOwnedBooking(ctx, s.db(), access, bookingID); err != nil {
		return nil, err
	}
	return repositories.TransferRepo{DB: s.db()}.ListByBooking(ctx, bookingID)
}

func (s LogisticsService) CreateTransfer(ctx context.Context, access domain.Access, bookingID int64, t models.Transfer) (models.Transfer, error) {
	if err := requireAdmin(access); err != nil {
		return models.Transfer{}, err
	}
	if err := s.bookingExists(ctx, bookingID); err != nil {
		return models.Transfer{}, err
	}
	t.BookingID = bookingID
	repo := repositories.TransferRepo{DB: s.db()}
	id, err := repo.Create(ctx, t)
	if err != nil {
		return models.Transfer{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "logistics", "create_transfer", "booking_id", bookingID, "transfer_id", id)
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) UpdateTransfer(ctx context.Context, access domain.Access, id int64, upd models.TransferUpdate) (models.Transfer, error) {
	if err := requireAdmin(access); err != nil {
		return models.Transfer{}, err
	}
	if err := validID(id, "id"); err != nil {
		return models.Transfer{}, err
	}
	repo := repositories.TransferRepo{DB: s.db()}
	if _, err := repo.GetByID(ctx, id); err != nil {
		return models.Transfer{}, err
	}
	if err := repo.Update(ctx, id, upd); err != nil {
		return models.Transfer{}, err
	}
	return repo.GetByID(ctx, id)
}

func (s LogisticsService) DeleteTransfer(ctx context.Context, access domain.Access, id int64) error {
	if err := requireAdmin(access); err != nil {
		return err
	}
	if err := validID(id, "id"); err != nil {
		return err
	}
	return repositories.TransferRepo{DB: s.db()}.Delete(ctx, id)
}
