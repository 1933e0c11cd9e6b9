package handlers

import (
	"net/http"
	"strconv"

	"campusbus/internal/domain"
	"campusbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/notifications
func ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	out, err := notificationService(c).ListForUser(middleware.UserID(c), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

// GET /api/notifications/unread-count
func UnreadNotificationCount(c *gin.Context) {
	count, err := notificationService(c).UnreadCount(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// POST /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}
	if err := notificationService(c).MarkRead(id, middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
