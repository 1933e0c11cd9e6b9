package handlers

import (
	"net/http"
	"strconv"

	"campusbus/internal/domain"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings/checkout
// Takes the seat hold and opens the hosted checkout. No booking exists yet.
func CheckoutBooking(c *gin.Context) {
	var req services.CheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := bookingService(c).Checkout(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type commitRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// POST /api/bookings
// Verifies the charge for a checkout reference and records the booking.
func CommitBooking(c *gin.Context) {
	var req commitRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ticket, err := bookingService(c).Commit(c.Request.Context(), middleware.UserID(c), req.Reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// GET /api/bookings
func ListMyBookings(c *gin.Context) {
	repo := repositories.BookingRepository{DB: db()}
	details, err := repo.ListByUser(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	tickets := make([]any, 0, len(details))
	for _, d := range details {
		tickets = append(tickets, services.ProjectTicket(d, nil))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": tickets})
}

// GET /api/bookings/:id/ticket
func GetTicket(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}

	ticket, err := ticketService(c).Get(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// GET /api/bookings/:id/ticket.pdf
func GetTicketPDF(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}

	svc := ticketService(c)
	ticket, err := svc.Get(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdf, filename, err := svc.RenderPDF(ticket)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := bookingService(c).Cancel(id, middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
