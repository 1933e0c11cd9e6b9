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

type feedbackRequest struct {
	Category string `json:"category"`
	Message  string `json:"message" binding:"required"`
	Rating   int    `json:"rating"`
}

// POST /api/feedback
func SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		RespondDomainError(c, domain.ValidationError{Field: "message", Msg: "required"})
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		RespondDomainError(c, domain.ValidationError{Field: "rating", Msg: "must be between 1 and 5"})
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	repo := repositories.FeedbackRepository{DB: db()}
	fb, err := repo.Create(models.Feedback{
		UserID:   middleware.UserID(c),
		Category: req.Category,
		Message:  req.Message,
		Rating:   req.Rating,
	})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": fb})
}

// GET /api/admin/feedback
func ListFeedback(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	repo := repositories.FeedbackRepository{DB: db()}
	out, err := repo.List(limit)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": out})
}
