package handlers

import (
	"net/http"
	"strconv"

	"campusbus/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /api/buses/:id/seats?date=YYYY-MM-DD
func GetSeatMap(c *gin.Context) {
	busID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if busID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return
	}
	date := c.Query("date")
	if date == "" {
		RespondDomainError(c, domain.ValidationError{Field: "date", Msg: "required"})
		return
	}

	seatMap, err := seatMapService(c).SeatMap(busID, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, seatMap)
}
