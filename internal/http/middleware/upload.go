package middleware

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
)

const uploadsKey = "uploads"

// multipartOverhead covers form fields and part headers on top of the files.
const multipartOverhead = 1 << 20

type UploadLimits struct {
	MaxFiles    int
	MaxFileSize int64
}

// maxBody is the largest request body a multipart upload may send; zero
// means no cap.
func (l UploadLimits) maxBody() int64 {
	if l.MaxFiles <= 0 || l.MaxFileSize <= 0 {
		return 0
	}
	return int64(l.MaxFiles)*l.MaxFileSize + multipartOverhead
}

func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

func formValues(form map[string][]string, keys ...string) []string {
	var out []string
	for _, k := range keys {
		out = append(out, form[k]...)
	}
	return out
}

func formFiles(form map[string][]*multipart.FileHeader, keys ...string) []*multipart.FileHeader {
	var out []*multipart.FileHeader
	for _, k := range keys {
		out = append(out, form[k]...)
	}
	return out
}

// pairTypes matches file_types[i] to files[i]. Missing types default to
// "other", surplus types are ignored and unknown values are rejected.
func pairTypes(n int, raw []string) ([]string, error) {
	types := make([]string, n)
	for i := range types {
		t := models.DocOther
		if i < len(raw) {
			if v := strings.ToLower(strings.TrimSpace(raw[i])); v != "" {
				t = v
			}
		}
		if !models.ValidDocumentType(t) {
			return nil, fmt.Errorf("unknown document type %q", t)
		}
		types[i] = t
	}
	return types, nil
}

// Uploads stages the multipart files of a request to store and exposes them,
// paired with their document types, through UploadsFrom. Requests without a
// multipart body pass through with no uploads.
func Uploads(store storage.Store, limits UploadLimits) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		if limit := limits.maxBody(); limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		form, err := c.MultipartForm()
		if err != nil {
			if bodyTooLarge(err) {
				response.Fail(c, http.StatusRequestEntityTooLarge, "request body too large",
					response.FieldError{Field: "files", Message: fmt.Sprintf("at most %d files of %d bytes are allowed", limits.MaxFiles, limits.MaxFileSize)})
				return
			}
			response.Fail(c, http.StatusBadRequest, "invalid multipart form")
			return
		}

		files := formFiles(form.File, "files", "files[]")
		if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
			response.Fail(c, http.StatusBadRequest, "too many files",
				response.FieldError{Field: "files", Message: fmt.Sprintf("at most %d files are allowed", limits.MaxFiles)})
			return
		}
		for _, fh := range files {
			if limits.MaxFileSize > 0 && fh.Size > limits.MaxFileSize {
				response.Fail(c, http.StatusBadRequest, "file too large",
					response.FieldError{Field: "files", Message: fmt.Sprintf("%s exceeds %d bytes", fh.Filename, limits.MaxFileSize)})
				return
			}
		}
		types, err := pairTypes(len(files), formValues(form.Value, "file_types", "file_types[]"))
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "validation failed",
				response.FieldError{Field: "file_types", Message: err.Error()})
			return
		}

		uploads := make([]models.DocumentUpload, 0, len(files))
		for i, fh := range files {
			stored, err := store.Save(c.Request.Context(), fh)
			if err != nil {
				discard(c, store, uploads)
				if errors.Is(err, storage.ErrUnsupportedType) {
					response.Fail(c, http.StatusBadRequest, "unsupported file type",
						response.FieldError{Field: "files", Message: fh.Filename + " must be an image or PDF"})
					return
				}
				logger.Error("upload staging failed", "request_id", GetRequestID(c), "file", fh.Filename, "error", err)
				response.Fail(c, http.StatusInternalServerError, "failed to store uploaded file")
				return
			}
			uploads = append(uploads, models.DocumentUpload{File: stored, Type: types[i]})
		}

		c.Set(uploadsKey, uploads)
		c.Next()
	}
}

// UploadsFrom returns the files staged by Uploads.
func UploadsFrom(c *gin.Context) []models.DocumentUpload {
	if v, ok := c.Get(uploadsKey); ok {
		if ups, ok := v.([]models.DocumentUpload); ok {
			return ups
		}
	}
	return nil
}

// DiscardUploads removes staged files when a request fails before a service
// took ownership of them.
func DiscardUploads(c *gin.Context, store storage.Store) {
	discard(c, store, UploadsFrom(c))
	c.Set(uploadsKey, []models.DocumentUpload(nil))
}

func discard(c *gin.Context, store storage.Store, uploads []models.DocumentUpload) {
	if store == nil || len(uploads) == 0 {
		return
	}
	files := make([]models.StoredFile, 0, len(uploads))
	for _, up := range uploads {
		files = append(files, up.File)
	}
	storage.RemoveAll(c.Request.Context(), store, files)
}
