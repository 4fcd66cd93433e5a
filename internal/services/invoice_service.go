package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

// InvoiceService renders booking invoices as PDF.
type InvoiceService struct {
	DB       *sql.DB
	Currency string
}

func (s InvoiceService) currency() string {
	if s.Currency != "" {
		return s.Currency
	}
	return "ETB"
}

// GenerateInvoice builds the invoice PDF for a booking visible to access.
func (s InvoiceService) GenerateInvoice(ctx context.Context, access domain.Access, bookingID int64) ([]byte, string, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if err := access.Check(b.UserID); err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "invoice", "generate", "booking_id", bookingID)
	return buildInvoicePDF(b, s.currency())
}

func (s InvoiceService) load(ctx context.Context, id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	return repositories.BookingRepo{DB: sharedDB(s.DB)}.GetDetail(ctx, id)
}

// invoiceLines are the body lines of the invoice. Only the stored total is
// printed; no per-traveler amount is derived from it.
func invoiceLines(b models.BookingDetail, currency string) []string {
	desc := fmt.Sprintf("%s package \"%s\", travel date %s",
		strings.ToUpper(safe(b.PackageType, "-")), safe(b.PackageName, "-"), safe(b.TravelDate.String(), "-"))
	return []string{
		"1) " + desc,
		fmt.Sprintf("Travelers : %d", b.Travelers),
		"Total     : " + utils.FormatMoney(b.TotalPrice, currency),
	}
}

func buildInvoicePDF(b models.BookingDetail, currency string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%06d", b.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Booked on  : "+utils.FormatDate(b.CreatedAt))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status     : "+strings.ToUpper(safe(b.Status, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name   : %s", safe(b.UserName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email  : %s", safe(b.UserEmail, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	lines := invoiceLines(b, currency)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, lines[0], "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, lines[1])
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, lines[2])
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The total was fixed when the booking was made and does not follow later package price changes.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render invoice", Err: err}
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", b.ID, safeFilenamePart(b.UserName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
