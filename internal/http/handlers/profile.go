package handlers

import (
	"net/http"

	"campusbus/internal/domain/models"
	"campusbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/profile
func GetProfile(c *gin.Context) {
	profile, err := profileService(c).Get(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// PUT /api/profile
func UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	profile, err := profileService(c).Update(middleware.UserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
