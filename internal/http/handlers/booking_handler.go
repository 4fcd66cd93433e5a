package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

type BookingHandler struct {
	Bookings  BookingService
	Documents DocumentService
	Invoices  InvoiceService
	// Store receives staged uploads back when a request fails before the
	// booking service owns them.
	Store storage.Store
}

type createBookingRequest struct {
	PackageID       int64  `form:"package_id" json:"package_id" binding:"required,gt=0"`
	TravelDate      string `form:"travel_date" json:"travel_date" binding:"required"`
	Travelers       int    `form:"travelers" json:"travelers" binding:"required,min=1"`
	Name            string `form:"name" json:"name" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Phone           string `form:"phone" json:"phone" binding:"required"`
	SpecialRequests string `form:"special_requests" json:"special_requests"`
}

type updateBookingRequest struct {
	TravelDate *string `json:"travel_date"`
	Travelers  *int    `json:"travelers" binding:"omitempty,min=1"`
	Status     *string `json:"status"`
}

func (h BookingHandler) fail(c *gin.Context, err error) {
	middleware.DiscardUploads(c, h.Store)
	response.Error(c, err)
}

// Create handles POST /bookings (multipart with optional files[] + file_types[]).
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	date, err := parseDateField("travel_date", req.TravelDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	in := models.BookingInput{
		PackageID:       req.PackageID,
		TravelDate:      date,
		Travelers:       req.Travelers,
		Name:            utils.NormalizeSpace(req.Name),
		Email:           utils.TrimOrEmpty(req.Email),
		Phone:           utils.TrimOrEmpty(req.Phone),
		SpecialRequests: utils.TrimOrEmpty(req.SpecialRequests),
	}
	// the service removes staged files itself on failure
	booking, err := h.Bookings.Create(c.Request.Context(), middleware.Access(c), in, middleware.UploadsFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "booking created", booking)
}

func (h BookingHandler) List(c *gin.Context) {
	list, err := h.Bookings.List(c.Request.Context(), middleware.Access(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "bookings retrieved", list)
}

func (h BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), middleware.Access(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "booking retrieved", b)
}

func (h BookingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := optionalDate("travel_date", req.TravelDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.Bookings.Update(c.Request.Context(), middleware.Access(c), id, models.BookingUpdate{
		TravelDate: date,
		Travelers:  req.Travelers,
		Status:     req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "booking updated", b)
}

func (h BookingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), middleware.Access(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "booking deleted", nil)
}

func (h BookingHandler) ListDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docs, err := h.Documents.ListForBooking(c.Request.Context(), middleware.Access(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "documents retrieved", docs)
}

// UploadDocuments attaches more files to an existing booking.
func (h BookingHandler) UploadDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		middleware.DiscardUploads(c, h.Store)
		return
	}
	docs, err := h.Bookings.AttachDocuments(c.Request.Context(), middleware.Access(c), id, middleware.UploadsFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "documents uploaded", docs)
}

// DownloadDocument streams the stored file as an attachment.
func (h BookingHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c, "documentId")
	if !ok {
		return
	}
	f, err := h.Documents.Download(c.Request.Context(), middleware.Access(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Body.Close()

	doc := f.Document
	mime := doc.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, doc.FileSize, mime, f.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, utils.SafeFilename(doc.OriginalName)),
	})
}

func (h BookingHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "documentId")
	if !ok {
		return
	}
	if err := h.Documents.Delete(c.Request.Context(), middleware.Access(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "document deleted", nil)
}

// Invoice renders the booking invoice inline.
func (h BookingHandler) Invoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.Invoices.GenerateInvoice(c.Request.Context(), middleware.Access(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

