package services

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// QRPayload is the serialized identity embedded in a ticket's QR code. The
// field names are part of the scan contract; existing tickets carry them.
type QRPayload struct {
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	Route        string `json:"route"`
	Seat         int    `json:"seat"`
	Amount       int64  `json:"amount"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PurchaseTime string `json:"purchaseTime"`
}

func EncodeQRPayload(p QRPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeQRPayload(data string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return p, err
	}
	if p.UserID <= 0 {
		return p, fmt.Errorf("qr payload missing user id")
	}
	return p, nil
}

// SelectionContext carries the rider's in-memory route/schedule selection. It
// is the second source in the ticket fallback chain, after the joined row.
type SelectionContext struct {
	Origin        string
	Destination   string
	TravelDate    string
	DepartureTime string
	ArrivalTime   string
	PassengerName string
}

// Placeholders used when neither the joined row nor the selection context has
// a value. The projection never errors on missing fields.
const (
	placeholderUnknown = "Unknown"
	placeholderNA      = "N/A"
)

// ProjectTicket resolves one canonical ticket view from the joined booking row
// and the optional selection context. All fallback logic lives here and
// nowhere else.
func ProjectTicket(d models.BookingDetail, sel *SelectionContext) models.Ticket {
	pick := func(fromRow, fromSel, placeholder string) string {
		if s := strings.TrimSpace(fromRow); s != "" {
			return s
		}
		if sel != nil {
			if s := strings.TrimSpace(fromSel); s != "" {
				return s
			}
		}
		return placeholder
	}

	var selOrigin, selDest, selDate, selDep, selArr, selName string
	if sel != nil {
		selOrigin, selDest = sel.Origin, sel.Destination
		selDate = sel.TravelDate
		selDep, selArr = sel.DepartureTime, sel.ArrivalTime
		selName = sel.PassengerName
	}

	return models.Ticket{
		BookingID:        d.ID,
		Origin:           pick(d.Origin, selOrigin, placeholderUnknown),
		Destination:      pick(d.Destination, selDest, placeholderUnknown),
		TravelDate:       pick(d.TravelDate, selDate, placeholderNA),
		DepartureTime:    pick(utils.NormalizeClock(d.DepartureTime), selDep, placeholderNA),
		ArrivalTime:      pick(utils.NormalizeClock(d.ArrivalTime), selArr, placeholderNA),
		SeatNumber:       d.SeatNumber,
		AmountPaid:       d.AmountPaid,
		PaymentReference: pick(d.PaymentReference, "", placeholderNA),
		QRCodeData:       d.QRCodeData,
		BookingStatus:    d.BookingStatus,
		ExpiresAt:        d.ExpiresAt,
		PassengerName:    pick(d.PassengerName, selName, placeholderUnknown),
	}
}

// TicketService reads, validates and renders tickets.
type TicketService struct {
	Bookings  repositories.BookingRepository
	Now       func() time.Time
	RequestID string
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get returns the rider's own ticket for a booking.
func (s TicketService) Get(bookingID, userID int64) (models.Ticket, error) {
	detail, err := s.Bookings.GetDetail(bookingID)
	if err == sql.ErrNoRows {
		return models.Ticket{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if detail.UserID != userID {
		return models.Ticket{}, domain.NotFoundError{Resource: "booking"}
	}
	return ProjectTicket(detail, nil), nil
}

// ScanResult reports the outcome of an admin ticket scan.
type ScanResult struct {
	Valid  bool          `json:"valid"`
	Reason string        `json:"reason,omitempty"`
	Ticket models.Ticket `json:"ticket,omitempty"`
}

// Scan validates scanned QR bytes and, when valid, flips the booking to used.
// The active+unexpired guard lives in the conditional update, so a replayed
// scan of an already-used ticket reads invalid with no state change.
func (s TicketService) Scan(qrData string) (ScanResult, error) {
	payload, err := DecodeQRPayload(qrData)
	if err != nil {
		return ScanResult{Valid: false, Reason: "unreadable ticket"}, nil
	}

	booking, err := s.Bookings.FindByUserAndQR(payload.UserID, qrData)
	if err == sql.ErrNoRows {
		return ScanResult{Valid: false, Reason: "no matching booking"}, nil
	}
	if err != nil {
		return ScanResult{}, domain.InternalError{Err: err}
	}

	flipped, err := s.Bookings.MarkUsed(booking.ID, s.now())
	if err != nil {
		return ScanResult{}, domain.InternalError{Err: err}
	}
	if !flipped {
		utils.LogEvent(s.RequestID, "ticket", "scan_rejected",
			fmt.Sprintf("booking_id=%d status=%s", booking.ID, booking.BookingStatus))
		return ScanResult{Valid: false, Reason: "ticket expired or already used"}, nil
	}

	detail, err := s.Bookings.GetDetail(booking.ID)
	if err != nil {
		detail = models.BookingDetail{Booking: booking}
	}
	utils.LogEvent(s.RequestID, "ticket", "scan_ok", fmt.Sprintf("booking_id=%d", booking.ID))
	return ScanResult{Valid: true, Ticket: ProjectTicket(detail, nil)}, nil
}

// RenderPDF builds a printable one-page ticket with the QR code embedded.
func (s TicketService) RenderPDF(t models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Campus Shuttle E-Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Passenger", t.PassengerName)
	line("Route", t.Origin+" - "+t.Destination)
	line("Date", t.TravelDate)
	line("Departure", t.DepartureTime)
	line("Arrival", t.ArrivalTime)
	line("Seat", fmt.Sprintf("#%d", t.SeatNumber))
	line("Amount", fmt.Sprintf("NGN %d", t.AmountPaid))
	line("Reference", t.PaymentReference)
	line("Valid until", utils.FormatDateTime(t.ExpiresAt))

	if t.QRCodeData != "" {
		png, err := qrcode.Encode(t.QRCodeData, qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("ticket-qr", 48, pdf.GetY()+4, 52, 52, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "could not render ticket", Err: err}
	}
	filename := fmt.Sprintf("ticket-%d.pdf", t.BookingID)
	return buf.Bytes(), filename, nil
}
