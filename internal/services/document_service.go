package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

type DocumentService struct {
	DB    *sql.DB
	Store storage.Store
}

// DocumentFile is an open stored document. Callers must close Body.
type DocumentFile struct {
	Document models.Document
	Body     io.ReadCloser
}

func (s DocumentService) db() *sql.DB {
	return sharedDB(s.DB)
}

func (s DocumentService) documents() repositories.DocumentRepo {
	return repositories.DocumentRepo{DB: s.db()}
}

// ListForBooking checks the booking first, then returns its documents newest first.
func (s DocumentService) ListForBooking(ctx context.Context, access domain.Access, bookingID int64) ([]models.Document, error) {
	if _, err := loadOwnedBooking(ctx, s.db(), access, bookingID); err != nil {
		return nil, err
	}
	return s.documents().ListByBooking(ctx, bookingID)
}

func (s DocumentService) load(ctx context.Context, access domain.Access, id int64) (models.Document, error) {
	if id <= 0 {
		return models.Document{}, domain.ValidationError{Field: "documentId", Msg: "invalid document id"}
	}
	doc, err := s.documents().GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Document{}, domain.NotFoundError{Msg: "document not found", Err: err}
		}
		return models.Document{}, err
	}

	b, err := repositories.BookingRepo{DB: s.db()}.GetByID(ctx, doc.BookingID)
	if err != nil {
		return models.Document{}, err
	}
	if err := access.Check(b.UserID); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// Download opens the stored file of a document. A missing database row and a
// missing file on disk are reported as different NotFound errors.
func (s DocumentService) Download(ctx context.Context, access domain.Access, id int64) (DocumentFile, error) {
	doc, err := s.load(ctx, access, id)
	if err != nil {
		return DocumentFile{}, err
	}

	body, _, err := s.Store.Open(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileMissing) || errors.Is(err, storage.ErrInvalidPath) {
			logger.Warn("document file missing", "document_id", doc.ID, "path", doc.FilePath)
			return DocumentFile{}, domain.NotFoundError{Msg: "file not found on server", Err: err}
		}
		return DocumentFile{}, domain.InternalError{Msg: "failed to read document", Err: err}
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "document", "download", "document_id", doc.ID, "booking_id", doc.BookingID)
	return DocumentFile{Document: doc, Body: body}, nil
}

// Delete removes a document row and then its stored file.
func (s DocumentService) Delete(ctx context.Context, access domain.Access, id int64) error {
	doc, err := s.load(ctx, access, id)
	if err != nil {
		return err
	}
	if err := s.documents().Delete(ctx, doc.ID); err != nil {
		return err
	}
	if s.Store != nil {
		if err := s.Store.Remove(ctx, doc.FilePath); err != nil {
			logger.Warn("stored document not removed", "document_id", doc.ID, "path", doc.FilePath, "error", err)
		}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "document", "delete", "document_id", doc.ID, "booking_id", doc.BookingID)
	return nil
}
