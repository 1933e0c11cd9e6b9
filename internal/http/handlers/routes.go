package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/routes
func ListRoutes(c *gin.Context) {
	repo := repositories.RouteRepository{DB: db()}
	routes, err := repo.ListActive()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

type createRouteRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Price       int64  `json:"price" binding:"required"`
}

// POST /api/admin/routes
func CreateRoute(c *gin.Context) {
	var req createRouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Price <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "price", Msg: "must be positive"})
		return
	}
	if strings.EqualFold(req.Origin, req.Destination) {
		RespondDomainError(c, domain.ValidationError{Field: "destination", Msg: "must differ from origin"})
		return
	}

	repo := repositories.RouteRepository{DB: db()}
	route, err := repo.Create(models.Route{
		Origin:      req.Origin,
		Destination: req.Destination,
		Price:       req.Price,
		IsActive:    true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

type updatePriceRequest struct {
	Price int64 `json:"price" binding:"required"`
}

// PUT /api/admin/routes/:id/price
func UpdateRoutePrice(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}
	var req updatePriceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Price <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "price", Msg: "must be positive"})
		return
	}

	repo := repositories.RouteRepository{DB: db()}
	if err := repo.UpdatePrice(id, req.Price); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "price updated"})
}

// DELETE /api/admin/routes/:id
func DeactivateRoute(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}
	repo := repositories.RouteRepository{DB: db()}
	if err := repo.SetActive(id, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deactivated"})
}
