package handlers

import (
	"net/http"
	"strconv"

	"campusbus/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /api/routes/:id/departures
// Expands the route's weekly templates into dated departures for the next
// seven days with live availability.
func GetRouteDepartures(c *gin.Context) {
	routeID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if routeID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}

	departures, err := scheduleService(c).Departures(routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departures": departures})
}
