package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
	"campusbus/internal/services/payment"
	"campusbus/internal/utils"

	"github.com/google/uuid"
)

const (
	// HoldTTL bounds how long a seat stays locked while the rider completes
	// the hosted checkout.
	HoldTTL = 10 * time.Minute

	// TicketTTL anchors ticket expiry to purchase time, matching the product's
	// current policy. Travel date is recorded alongside, so an expiry anchored
	// to travel time can be enforced later without a data change.
	TicketTTL = 24 * time.Hour
)

// BookingService orchestrates checkout and commit. The seat race has three
// lines of defense: an advisory pre-check before charging, a short-lived seat
// hold while the charge is open, and the store's uniqueness constraint at
// insert time. Losing at the last line after a verified charge triggers a
// refund.
type BookingService struct {
	Bookings  repositories.BookingRepository
	Holds     repositories.SeatHoldRepository
	Buses     repositories.BusRepository
	Routes    repositories.RouteRepository
	Profiles  repositories.ProfileRepository
	Provider  payment.Provider
	Notifier  NotificationService
	Now       func() time.Time
	RequestID string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CheckoutRequest struct {
	BusID      int64  `json:"busId" binding:"required"`
	TravelDate string `json:"travelDate" binding:"required"`
	SeatNumber int    `json:"seatNumber" binding:"required"`
}

type CheckoutResult struct {
	Reference        string    `json:"reference"`
	AuthorizationURL string    `json:"authorizationUrl"`
	Amount           int64     `json:"amount"`
	HoldExpiresAt    time.Time `json:"holdExpiresAt"`
}

// Checkout validates the seat, takes the hold, and opens the hosted checkout.
// No booking exists until Commit verifies the charge.
func (s BookingService) Checkout(ctx context.Context, userID int64, req CheckoutRequest) (CheckoutResult, error) {
	var out CheckoutResult

	if _, err := utils.ParseDate(req.TravelDate); err != nil {
		return out, domain.ValidationError{Field: "travel_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if req.SeatNumber < 1 {
		return out, domain.ValidationError{Field: "seat_number", Msg: "must be at least 1"}
	}

	tpl, err := s.Buses.GetByID(req.BusID)
	if err == sql.ErrNoRows {
		return out, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if req.SeatNumber > tpl.EffectiveCapacity() {
		return out, domain.ValidationError{Field: "seat_number",
			Msg: fmt.Sprintf("bus has %d seats", tpl.EffectiveCapacity())}
	}

	route, err := s.Routes.GetByID(tpl.RouteID)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	// Advisory pre-check: cheap rejection before anything is locked or charged.
	taken, err := s.Bookings.HasActiveSeat(req.BusID, req.TravelDate, req.SeatNumber, s.now())
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if taken {
		return out, domain.SeatUnavailableError{Seat: req.SeatNumber}
	}

	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		return out, domain.NotFoundError{Resource: "profile", Err: err}
	}

	nowTime := s.now()
	reference := "PAY_" + uuid.NewString()
	hold, err := s.Holds.Create(models.SeatHold{
		UserID:     userID,
		BusID:      req.BusID,
		SeatNumber: req.SeatNumber,
		TravelDate: req.TravelDate,
		Amount:     route.Price,
		Reference:  reference,
		ExpiresAt:  nowTime.Add(HoldTTL),
	})
	if err != nil {
		return out, err
	}

	init, err := s.Provider.Initialize(ctx, payment.InitRequest{
		Reference: reference,
		Email:     profile.Email,
		Amount:    route.Price * 100, // kobo
		Metadata: map[string]string{
			"route": route.Origin + " → " + route.Destination,
			"seat":  strconv.Itoa(req.SeatNumber),
			"date":  req.TravelDate,
		},
	})
	if err != nil {
		_ = s.Holds.DeleteByReference(reference)
		return out, domain.PaymentFailedError{Reference: reference, Msg: "could not start checkout", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "checkout",
		fmt.Sprintf("user_id=%d bus_id=%d seat=%d ref=%s", userID, req.BusID, req.SeatNumber, reference))

	return CheckoutResult{
		Reference:        reference,
		AuthorizationURL: init.AuthorizationURL,
		Amount:           route.Price,
		HoldExpiresAt:    hold.ExpiresAt,
	}, nil
}

// Commit verifies the charge for a checkout reference and records the booking.
// The insert is the true arbiter of the seat race: a duplicate there after a
// verified charge refunds the rider and reports the seat as unavailable. A
// lapsed hold does not abort the commit; a verified charge always either
// produces a booking or is refunded.
func (s BookingService) Commit(ctx context.Context, userID int64, reference string) (models.Ticket, error) {
	var ticket models.Ticket
	if reference == "" {
		return ticket, domain.ValidationError{Field: "reference", Msg: "required"}
	}

	hold, err := s.Holds.GetByReference(reference)
	if err == sql.ErrNoRows {
		return ticket, domain.NotFoundError{Resource: "checkout session"}
	}
	if err != nil {
		return ticket, domain.InternalError{Err: err}
	}
	if hold.UserID != userID {
		return ticket, domain.NotFoundError{Resource: "checkout session"}
	}

	nowTime := s.now()
	if !hold.ExpiresAt.After(nowTime) {
		// The lapsed hold no longer shields the seat, but a rider who finished
		// the hosted checkout slowly may still have paid. Verify settles it: a
		// successful charge proceeds to the insert, where uniq_live_seat
		// arbitrates and a loss refunds. Aborting here would strand the charge.
		utils.LogEvent(s.RequestID, "booking", "hold_lapsed", "ref="+reference)
	}

	charge, err := s.Provider.Verify(ctx, reference)
	if err != nil {
		return ticket, domain.PaymentFailedError{Reference: reference, Msg: "could not verify payment", Err: err}
	}

	switch charge.Status {
	case payment.StatusSuccess:
		// proceed
	case payment.StatusAbandoned:
		_ = s.Holds.DeleteByReference(reference)
		return ticket, domain.PaymentCancelledError{Reference: reference}
	default:
		_ = s.Holds.DeleteByReference(reference)
		return ticket, domain.PaymentFailedError{Reference: reference}
	}

	if charge.Amount != hold.Amount*100 {
		s.refund(ctx, reference, charge.Amount)
		_ = s.Holds.DeleteByReference(reference)
		return ticket, domain.PaymentFailedError{Reference: reference, Msg: "charged amount does not match fare"}
	}

	tpl, err := s.Buses.GetByID(hold.BusID)
	if err != nil {
		return ticket, domain.InternalError{Err: err}
	}
	route, err := s.Routes.GetByID(tpl.RouteID)
	if err != nil {
		return ticket, domain.InternalError{Err: err}
	}
	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		return ticket, domain.InternalError{Err: err}
	}

	qrData, err := EncodeQRPayload(QRPayload{
		UserID:       userID,
		UserName:     firstNonEmpty(profile.FullName, profile.Email),
		Route:        route.Origin + " → " + route.Destination,
		Seat:         hold.SeatNumber,
		Amount:       hold.Amount,
		Date:         hold.TravelDate,
		Time:         utils.NormalizeClock(tpl.DepartureTime),
		PurchaseTime: nowTime.Format(time.RFC3339),
	})
	if err != nil {
		return ticket, domain.InternalError{Err: err}
	}

	booking, err := s.Bookings.Insert(models.Booking{
		UserID:           userID,
		BusID:            hold.BusID,
		SeatNumber:       hold.SeatNumber,
		TravelDate:       hold.TravelDate,
		AmountPaid:       hold.Amount,
		PaymentReference: reference,
		PaymentStatus:    models.PaymentCompleted,
		BookingStatus:    models.BookingActive,
		QRCodeData:       qrData,
		ExpiresAt:        nowTime.Add(TicketTTL),
	})
	if err != nil {
		if domain.IsSeatUnavailable(err) {
			// Another booking committed first. The rider already paid, so the
			// charge is reversed before reporting the conflict.
			s.refund(ctx, reference, charge.Amount)
		}
		_ = s.Holds.DeleteByReference(reference)
		return ticket, err
	}

	_ = s.Holds.DeleteByReference(reference)

	// Post-commit side effects are best-effort: the booking is the operation
	// of record and never rolls back on a notification failure.
	if err := s.Notifier.BookingConfirmed(userID, hold.BusID, route.Origin, route.Destination, hold.Amount); err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify_warning", err.Error())
	}
	if err := s.Notifier.TicketGenerated(userID, hold.BusID); err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify_warning", err.Error())
	}

	utils.LogEvent(s.RequestID, "booking", "commit",
		fmt.Sprintf("booking_id=%d user_id=%d seat=%d ref=%s", booking.ID, userID, hold.SeatNumber, reference))

	sel := SelectionContext{
		Origin:        route.Origin,
		Destination:   route.Destination,
		TravelDate:    hold.TravelDate,
		DepartureTime: utils.NormalizeClock(tpl.DepartureTime),
		ArrivalTime:   utils.NormalizeClock(tpl.ArrivalTime),
		PassengerName: profile.FullName,
	}
	detail, err := s.Bookings.GetDetail(booking.ID)
	if err != nil {
		// The booking exists; project from the selection context instead of failing.
		detail = models.BookingDetail{Booking: booking}
	}
	return ProjectTicket(detail, &sel), nil
}

// Cancel moves the rider's active booking to a terminal cancelled state,
// releasing the seat through the generated seat_key column.
func (s BookingService) Cancel(bookingID, userID int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	if err := s.Bookings.Cancel(bookingID, userID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d user_id=%d", bookingID, userID))
	return nil
}

func (s BookingService) refund(ctx context.Context, reference string, amount int64) {
	if err := s.Provider.Refund(ctx, reference, amount); err != nil {
		// A failed refund needs manual reconciliation against the provider
		// dashboard; the reference is logged for that.
		utils.LogEvent(s.RequestID, "booking", "refund_failed",
			fmt.Sprintf("ref=%s amount=%d err=%v", reference, amount, err))
		return
	}
	utils.LogEvent(s.RequestID, "booking", "refund", "ref="+reference)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
