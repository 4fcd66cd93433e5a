package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
	intdb "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/metrics"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

type BookingService struct {
	DB      *sql.DB
	Store   storage.Store
	Cache   *cache.RedisCache
	Metrics *metrics.Metrics
}

func (s BookingService) db() *sql.DB {
	return sharedDB(s.DB)
}

func (s BookingService) bookings() repositories.BookingRepo {
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) documents() repositories.DocumentRepo {
	return repositories.DocumentRepo{DB: s.db()}
}

// Create prices and stores a booking together with its uploaded documents.
// The booking row and document rows commit together; staged files are
// removed if anything fails.
func (s BookingService) Create(ctx context.Context, access domain.Access, in models.BookingInput, uploads []models.DocumentUpload) (models.BookingDetail, error) {
	bookingID, pkgType, err := s.create(ctx, access, in, uploads)
	if err != nil {
		s.discard(ctx, uploads)
		return models.BookingDetail{}, err
	}

	s.Metrics.BookingCreated(pkgType)
	for _, up := range uploads {
		s.Metrics.DocumentStored(up.Type)
	}
	invalidateDashboard(ctx, s.Cache)
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "create",
		"booking_id", bookingID, "user_id", access.UserID(), "package_id", in.PackageID,
		"travelers", in.Travelers, "documents", len(uploads))

	return s.detail(ctx, bookingID)
}

func (s BookingService) create(ctx context.Context, access domain.Access, in models.BookingInput, uploads []models.DocumentUpload) (int64, string, error) {
	if access.UserID() <= 0 {
		return 0, "", domain.UnauthorizedError{Msg: "authentication required"}
	}
	if in.PackageID <= 0 {
		return 0, "", domain.ValidationError{Field: "package_id", Msg: "must be a positive integer"}
	}
	if in.Travelers < 1 {
		return 0, "", domain.ValidationError{Field: "travelers", Msg: "must be at least 1"}
	}
	if in.TravelDate.IsZero() {
		return 0, "", domain.ValidationError{Field: "travel_date", Msg: "is required"}
	}
	for _, up := range uploads {
		if !models.ValidDocumentType(up.Type) {
			return 0, "", domain.ValidationError{Field: "file_types", Msg: "unknown document type " + up.Type}
		}
	}

	pkg, err := repositories.PackageRepo{DB: s.db()}.GetByID(ctx, in.PackageID)
	if err != nil {
		if domain.IsNotFound(err) {
			return 0, "", domain.NotFoundError{Resource: "package", Err: err}
		}
		return 0, "", err
	}

	booking := models.Booking{
		UserID:     access.UserID(),
		PackageID:  pkg.ID,
		TravelDate: in.TravelDate,
		Travelers:  in.Travelers,
		Status:     models.BookingPending,
		TotalPrice: pkg.Price.Times(in.Travelers),
	}

	var bookingID int64
	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		id, err := repositories.BookingRepo{DB: tx}.Create(ctx, booking)
		if err != nil {
			return err
		}
		if err := insertDocuments(ctx, tx, id, uploads); err != nil {
			return err
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return 0, "", err
	}
	return bookingID, pkg.Type, nil
}

func insertDocuments(ctx context.Context, tx *sql.Tx, bookingID int64, uploads []models.DocumentUpload) error {
	docs := repositories.DocumentRepo{DB: tx}
	for _, up := range uploads {
		if _, err := docs.Create(ctx, models.Document{
			BookingID:    bookingID,
			FileName:     up.File.FileName,
			OriginalName: up.File.OriginalName,
			FilePath:     up.File.Path,
			FileType:     up.Type,
			FileSize:     up.File.Size,
			MimeType:     up.File.MimeType,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s BookingService) discard(ctx context.Context, uploads []models.DocumentUpload) {
	if s.Store == nil || len(uploads) == 0 {
		return
	}
	files := make([]models.StoredFile, 0, len(uploads))
	for _, up := range uploads {
		files = append(files, up.File)
	}
	storage.RemoveAll(ctx, s.Store, files)
}

func (s BookingService) detail(ctx context.Context, id int64) (models.BookingDetail, error) {
	d, err := s.bookings().GetDetail(ctx, id)
	if err != nil {
		return models.BookingDetail{}, err
	}
	docs, err := s.documents().ListByBooking(ctx, id)
	if err != nil {
		return models.BookingDetail{}, err
	}
	d.Documents = docs
	return d, nil
}

// Get returns the booking when the caller owns it or is an admin.
func (s BookingService) Get(ctx context.Context, access domain.Access, id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	d, err := s.bookings().GetDetail(ctx, id)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if err := access.Check(d.UserID); err != nil {
		return models.BookingDetail{}, err
	}
	docs, err := s.documents().ListByBooking(ctx, id)
	if err != nil {
		return models.BookingDetail{}, err
	}
	d.Documents = docs
	return d, nil
}

// List returns every booking for admins and the caller's own otherwise.
func (s BookingService) List(ctx context.Context, access domain.Access) ([]models.BookingDetail, error) {
	if access.IsAdmin() {
		return s.bookings().ListDetail(ctx, 0)
	}
	if access.UserID() <= 0 {
		return nil, domain.UnauthorizedError{Msg: "authentication required"}
	}
	return s.bookings().ListDetail(ctx, access.UserID())
}

// Update applies a partial update. Admins may change travel date, travelers
// and status (any status to any status). Owners may only cancel. The stored
// total price is never recalculated.
func (s BookingService) Update(ctx context.Context, access domain.Access, id int64, upd models.BookingUpdate) (models.BookingDetail, error) {
	if upd.Empty() {
		return models.BookingDetail{}, domain.ValidationError{Msg: "no fields to update"}
	}
	if upd.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*upd.Status))
		if !models.ValidBookingStatus(st) {
			return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "must be one of pending, confirmed, cancelled, completed"}
		}
		upd.Status = &st
	}
	if upd.Travelers != nil && *upd.Travelers < 1 {
		return models.BookingDetail{}, domain.ValidationError{Field: "travelers", Msg: "must be at least 1"}
	}

	if _, err := loadOwnedBooking(ctx, s.db(), access, id); err != nil {
		return models.BookingDetail{}, err
	}
	if !access.IsAdmin() && !(upd.OnlyStatus() && *upd.Status == models.BookingCancelled) {
		return models.BookingDetail{}, domain.ForbiddenError{Msg: "only admins can change booking details"}
	}

	if err := s.bookings().Update(ctx, id, upd); err != nil {
		return models.BookingDetail{}, err
	}
	invalidateDashboard(ctx, s.Cache)

	kv := []any{"booking_id", id, "user_id", access.UserID()}
	if upd.Status != nil {
		kv = append(kv, "status", *upd.Status)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "update", kv...)

	return s.detail(ctx, id)
}

// Delete removes the booking (children cascade) and then its stored files.
func (s BookingService) Delete(ctx context.Context, access domain.Access, id int64) error {
	if _, err := loadOwnedBooking(ctx, s.db(), access, id); err != nil {
		return err
	}
	docs, err := s.documents().ListByBooking(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings().Delete(ctx, id); err != nil {
		return err
	}

	for _, d := range docs {
		if s.Store == nil {
			break
		}
		if err := s.Store.Remove(ctx, d.FilePath); err != nil {
			logger.Warn("stored document not removed", "document_id", d.ID, "path", d.FilePath, "error", err)
		}
	}
	invalidateDashboard(ctx, s.Cache)
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "delete", "booking_id", id, "documents", len(docs))
	return nil
}

// AttachDocuments adds uploads to an existing booking.
func (s BookingService) AttachDocuments(ctx context.Context, access domain.Access, id int64, uploads []models.DocumentUpload) ([]models.Document, error) {
	docs, err := s.attach(ctx, access, id, uploads)
	if err != nil {
		s.discard(ctx, uploads)
		return nil, err
	}
	for _, up := range uploads {
		s.Metrics.DocumentStored(up.Type)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "attach_documents", "booking_id", id, "documents", len(uploads))
	return docs, nil
}

func (s BookingService) attach(ctx context.Context, access domain.Access, id int64, uploads []models.DocumentUpload) ([]models.Document, error) {
	if len(uploads) == 0 {
		return nil, domain.ValidationError{Field: "files", Msg: "at least one file is required"}
	}
	for _, up := range uploads {
		if !models.ValidDocumentType(up.Type) {
			return nil, domain.ValidationError{Field: "file_types", Msg: "unknown document type " + up.Type}
		}
	}
	if _, err := loadOwnedBooking(ctx, s.db(), access, id); err != nil {
		return nil, err
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		return insertDocuments(ctx, tx, id, uploads)
	})
	if err != nil {
		return nil, err
	}
	return s.documents().ListByBooking(ctx, id)
}
