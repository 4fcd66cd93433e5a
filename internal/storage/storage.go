package storage

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

var (
	ErrFileMissing     = errors.New("file not found on server")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidPath     = errors.New("invalid storage path")
)

// Store keeps uploaded documents. Paths handed out are relative to the store.
type Store interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (models.StoredFile, error)
	Open(ctx context.Context, path string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, path string) error
}

// AcceptDocuments allows images and PDF.
func AcceptDocuments(m *mimetype.MIME) bool {
	return strings.HasPrefix(m.String(), "image/") || m.Is("application/pdf")
}

// LocalStore writes files under Root with generated names.
type LocalStore struct {
	Root   string
	Accept func(*mimetype.MIME) bool
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create upload dir %s", root)
	}
	return &LocalStore{Root: root, Accept: AcceptDocuments}, nil
}

func (s *LocalStore) Save(_ context.Context, fh *multipart.FileHeader) (models.StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return models.StoredFile{}, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return models.StoredFile{}, errors.Wrap(err, "detect mime")
	}
	if s.Accept != nil && !s.Accept(mtype) {
		return models.StoredFile{}, errors.Wrapf(ErrUnsupportedType, "%s (%s)", fh.Filename, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return models.StoredFile{}, errors.Wrap(err, "rewind upload")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}
	name := uuid.NewString() + ext

	dst, err := os.OpenFile(filepath.Join(s.Root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return models.StoredFile{}, errors.Wrap(err, "create stored file")
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.Root, name))
		return models.StoredFile{}, errors.Wrap(err, "write stored file")
	}

	return models.StoredFile{
		FileName:     name,
		OriginalName: filepath.Base(fh.Filename),
		Path:         name,
		Size:         written,
		MimeType:     mtype.String(),
	}, nil
}

func (s *LocalStore) Open(_ context.Context, path string) (io.ReadCloser, int64, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrFileMissing
		}
		return nil, 0, errors.Wrap(err, "open stored file")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.Wrap(err, "stat stored file")
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrFileMissing
	}
	return f, info.Size(), nil
}

// Remove deletes path; a file that is already gone is not an error.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove stored file")
	}
	return nil
}

func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return "", ErrInvalidPath
	}
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve storage root")
	}
	full := filepath.Join(root, filepath.Clean(path))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return full, nil
}

// RemoveAll discards staged files after a failed request. Errors are ignored.
func RemoveAll(ctx context.Context, s Store, files []models.StoredFile) {
	for _, f := range files {
		_ = s.Remove(ctx, f.Path)
	}
}
