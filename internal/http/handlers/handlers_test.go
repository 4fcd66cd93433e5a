package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser fakes the authentication middleware.
func asUser(id int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("userRole", role)
		c.Next()
	}
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(mw...)
	return r
}

func serve(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Create(ctx context.Context, a domain.Access, in models.BookingInput, ups []models.DocumentUpload) (models.BookingDetail, error) {
	args := m.Called(ctx, a, in, ups)
	return args.Get(0).(models.BookingDetail), args.Error(1)
}

func (m *mockBookings) Get(ctx context.Context, a domain.Access, id int64) (models.BookingDetail, error) {
	args := m.Called(ctx, a, id)
	return args.Get(0).(models.BookingDetail), args.Error(1)
}

func (m *mockBookings) List(ctx context.Context, a domain.Access) ([]models.BookingDetail, error) {
	args := m.Called(ctx, a)
	return args.Get(0).([]models.BookingDetail), args.Error(1)
}

func (m *mockBookings) Update(ctx context.Context, a domain.Access, id int64, upd models.BookingUpdate) (models.BookingDetail, error) {
	args := m.Called(ctx, a, id, upd)
	return args.Get(0).(models.BookingDetail), args.Error(1)
}

func (m *mockBookings) Delete(ctx context.Context, a domain.Access, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

func (m *mockBookings) AttachDocuments(ctx context.Context, a domain.Access, id int64, ups []models.DocumentUpload) ([]models.Document, error) {
	args := m.Called(ctx, a, id, ups)
	return args.Get(0).([]models.Document), args.Error(1)
}

type mockDocuments struct{ mock.Mock }

func (m *mockDocuments) ListForBooking(ctx context.Context, a domain.Access, id int64) ([]models.Document, error) {
	args := m.Called(ctx, a, id)
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *mockDocuments) Download(ctx context.Context, a domain.Access, id int64) (services.DocumentFile, error) {
	args := m.Called(ctx, a, id)
	return args.Get(0).(services.DocumentFile), args.Error(1)
}

func (m *mockDocuments) Delete(ctx context.Context, a domain.Access, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

type mockInvoices struct{ mock.Mock }

func (m *mockInvoices) GenerateInvoice(ctx context.Context, a domain.Access, id int64) ([]byte, string, error) {
	args := m.Called(ctx, a, id)
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func bodyContains(t *testing.T, w *httptest.ResponseRecorder, s string) {
	t.Helper()
	require.True(t, strings.Contains(w.Body.String(), s), "body %s does not contain %s", w.Body.String(), s)
}
