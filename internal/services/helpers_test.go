package services

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
)

var (
	packageCols = []string{"id", "name", "description", "type", "price", "duration_days", "destination", "image_url", "is_active", "created_at", "updated_at"}
	bookingCols = []string{"id", "user_id", "package_id", "travel_date", "travelers", "status", "total_price", "created_at", "updated_at"}
	detailCols  = append(append([]string{}, bookingCols...), "package_name", "package_type", "user_name", "user_email")
	docCols     = []string{"id", "booking_id", "file_name", "original_name", "file_path", "file_type", "file_size", "mime_type", "created_at"}
	travelDay   = time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func bookingRow(id, userID int64, status, total string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).AddRow(id, userID, 2, travelDay, 3, status, total, now, now)
}

func detailRow(id, userID int64, status, total string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(detailCols).
		AddRow(id, userID, 2, travelDay, 3, status, total, now, now, "Umrah Gold", "umrah", "Abebe", "abebe@example.com")
}

// fakeStore keeps files in memory and records removals.
type fakeStore struct {
	mu      sync.Mutex
	files   map[string]string
	removed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string]string{}}
}

func (f *fakeStore) Save(_ context.Context, fh *multipart.FileHeader) (models.StoredFile, error) {
	return models.StoredFile{}, nil
}

func (f *fakeStore) Open(_ context.Context, path string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	if !ok {
		return nil, 0, storage.ErrFileMissing
	}
	return io.NopCloser(strings.NewReader(content)), int64(len(content)), nil
}

func (f *fakeStore) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeStore) put(path, content string) {
	f.mu.Lock()
	f.files[path] = content
	f.mu.Unlock()
}

func upload(path, original, fileType string) models.DocumentUpload {
	return models.DocumentUpload{
		File: models.StoredFile{FileName: path, OriginalName: original, Path: path, Size: 100, MimeType: "application/pdf"},
		Type: fileType,
	}
}
