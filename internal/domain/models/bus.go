package models

import (
	"strconv"
	"strings"
)

// DefaultCapacity applies when a bus template declares no seat count.
const DefaultCapacity = 50

// BusTemplate is a recurring weekly service: it describes every departure of a
// bus on a route, not a single dated trip.
type BusTemplate struct {
	ID            int64  `json:"id"`
	RouteID       int64  `json:"routeId"`
	BusNumber     string `json:"busNumber"`
	Capacity      int    `json:"capacity"`
	DepartureTime string `json:"departureTime"` // HH:MM
	ArrivalTime   string `json:"arrivalTime"`
	DaysOfWeek    string `json:"daysOfWeek"` // comma-separated, 1=Mon .. 7=Sun
	IsActive      bool   `json:"isActive"`
}

// EffectiveCapacity resolves the seat grid size for this template.
func (b BusTemplate) EffectiveCapacity() int {
	if b.Capacity > 0 {
		return b.Capacity
	}
	return DefaultCapacity
}

// RunsOn reports whether the template serves the given ISO weekday (1=Mon..7=Sun).
func (b BusTemplate) RunsOn(weekday int) bool {
	for _, part := range strings.Split(b.DaysOfWeek, ",") {
		if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && d == weekday {
			return true
		}
	}
	return false
}

// ScheduledDeparture is one dated occurrence of a template. It is derived on
// demand for a 7-day horizon and never persisted.
type ScheduledDeparture struct {
	TemplateID     int64  `json:"busId"`
	RouteID        int64  `json:"routeId"`
	BusNumber      string `json:"busNumber"`
	Date           string `json:"date"` // YYYY-MM-DD
	DepartureTime  string `json:"departureTime"`
	ArrivalTime    string `json:"arrivalTime"`
	Capacity       int    `json:"capacity"`
	AvailableSeats int    `json:"availableSeats"`
}
