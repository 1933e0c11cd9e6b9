package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"

	"github.com/gin-gonic/gin"
)

type scanRequest struct {
	QRData string `json:"qrData" binding:"required"`
}

// POST /api/admin/scan
// Validates a scanned QR ticket at boarding. An invalid ticket is a 200 with
// valid=false, not an error; the scanner UI renders the reason.
func ScanTicket(c *gin.Context) {
	var req scanRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := ticketService(c).Scan(req.QRData)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type broadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	UserID  *int64 `json:"userId"`
	BusID   *int64 `json:"busId"`
}

// POST /api/admin/notifications
// A nil userId broadcasts to every rider.
func SendNotification(c *gin.Context) {
	var req broadcastRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	n, err := notificationService(c).Broadcast(middleware.UserID(c), req.Title, req.Message, req.UserID, req.BusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

// POST /api/admin/users/:id/promote
func PromoteUser(c *gin.Context) {
	targetID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := profileService(c).Promote(middleware.UserID(c), targetID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user promoted"})
}

type createBusRequest struct {
	RouteID       int64  `json:"routeId" binding:"required"`
	BusNumber     string `json:"busNumber" binding:"required"`
	Capacity      int    `json:"capacity"`
	DepartureTime string `json:"departureTime" binding:"required"`
	ArrivalTime   string `json:"arrivalTime"`
	DaysOfWeek    string `json:"daysOfWeek" binding:"required"`
}

// POST /api/admin/buses
func CreateBus(c *gin.Context) {
	var req createBusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Capacity < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "capacity", Msg: "must not be negative"})
		return
	}
	if len(req.DepartureTime) != 5 || req.DepartureTime[2] != ':' {
		RespondDomainError(c, domain.ValidationError{Field: "departureTime", Msg: "must be HH:MM"})
		return
	}

	routes := repositories.RouteRepository{DB: db()}
	if _, err := routes.GetByID(req.RouteID); err != nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "route"})
		return
	}

	repo := repositories.BusRepository{DB: db()}
	bus, err := repo.Create(models.BusTemplate{
		RouteID:       req.RouteID,
		BusNumber:     strings.TrimSpace(req.BusNumber),
		Capacity:      req.Capacity,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		DaysOfWeek:    req.DaysOfWeek,
		IsActive:      true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

// DELETE /api/admin/buses/:id
func DeactivateBus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}
	repo := repositories.BusRepository{DB: db()}
	if err := repo.SetActive(id, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deactivated"})
}
