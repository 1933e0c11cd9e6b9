package services

import (
	"testing"
	"time"

	"campusbus/internal/domain/models"

	"github.com/stretchr/testify/require"
)

// Wednesday 2026-01-07 10:00 local.
func wednesdayMorning() time.Time {
	return time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)
}

func TestExpandTemplatesMondayOnly(t *testing.T) {
	templates := []models.BusTemplate{
		{ID: 1, RouteID: 2, BusNumber: "CAMPUS-1", Capacity: 30,
			DepartureTime: "08:00", ArrivalTime: "09:00", DaysOfWeek: "1", IsActive: true},
	}

	out := ExpandTemplates(templates, wednesdayMorning())

	require.Len(t, out, 1, "a Monday-only bus occurs once in the window starting Wednesday")
	require.Equal(t, "2026-01-12", out[0].Date)
	require.Equal(t, "08:00", out[0].DepartureTime)
	require.Equal(t, int64(1), out[0].TemplateID)
}

func TestExpandTemplatesSuppressesTodaysPastDepartures(t *testing.T) {
	daily := "1,2,3,4,5,6,7"
	templates := []models.BusTemplate{
		{ID: 1, RouteID: 2, DepartureTime: "08:00", DaysOfWeek: daily, IsActive: true},
		{ID: 2, RouteID: 2, DepartureTime: "17:30", DaysOfWeek: daily, IsActive: true},
	}

	out := ExpandTemplates(templates, wednesdayMorning())

	// The 08:00 run is gone for today but present for the next six days; the
	// 17:30 run keeps all seven.
	require.Len(t, out, 13)
	require.Equal(t, "2026-01-07", out[0].Date)
	require.Equal(t, "17:30", out[0].DepartureTime)
}

func TestExpandTemplatesMondayOnlyQueriedOnMonday(t *testing.T) {
	templates := []models.BusTemplate{
		{ID: 1, RouteID: 2, DepartureTime: "08:00", DaysOfWeek: "1", IsActive: true},
	}

	// Before the departure, today's run is the only one in the window; the
	// next Monday falls outside today+6.
	monday := time.Date(2026, 1, 12, 7, 0, 0, 0, time.Local)
	out := ExpandTemplates(templates, monday)
	require.Len(t, out, 1)
	require.Equal(t, "2026-01-12", out[0].Date)

	// After the departure, nothing is left: today's run is suppressed and the
	// next occurrence is beyond the horizon.
	afterDeparture := time.Date(2026, 1, 12, 9, 0, 0, 0, time.Local)
	require.Empty(t, ExpandTemplates(templates, afterDeparture))
}

func TestExpandTemplatesBoundaryAtCurrentClock(t *testing.T) {
	// A departure at exactly the current minute is not bookable anymore.
	nowTime := time.Date(2026, 1, 7, 8, 0, 0, 0, time.Local)
	templates := []models.BusTemplate{
		{ID: 1, DepartureTime: "08:00", DaysOfWeek: "1,2,3,4,5,6,7", IsActive: true},
	}

	out := ExpandTemplates(templates, nowTime)

	require.Len(t, out, 6)
	require.Equal(t, "2026-01-08", out[0].Date)
}

func TestExpandTemplatesSkipsInactive(t *testing.T) {
	templates := []models.BusTemplate{
		{ID: 1, DepartureTime: "08:00", DaysOfWeek: "1,2,3,4,5,6,7", IsActive: false},
	}
	require.Empty(t, ExpandTemplates(templates, wednesdayMorning()))
}

func TestExpandTemplatesOrderedByDateThenTime(t *testing.T) {
	daily := "1,2,3,4,5,6,7"
	templates := []models.BusTemplate{
		{ID: 1, DepartureTime: "16:00", DaysOfWeek: daily, IsActive: true},
		{ID: 2, DepartureTime: "12:00", DaysOfWeek: daily, IsActive: true},
	}

	out := ExpandTemplates(templates, wednesdayMorning())

	require.Len(t, out, 14)
	prevDate, prevTime := "", ""
	for _, d := range out {
		if d.Date == prevDate {
			require.LessOrEqual(t, prevTime, d.DepartureTime)
		} else {
			require.Less(t, prevDate, d.Date)
		}
		prevDate, prevTime = d.Date, d.DepartureTime
	}
}

func TestExpandTemplatesDefaultCapacity(t *testing.T) {
	templates := []models.BusTemplate{
		{ID: 1, DepartureTime: "12:00", DaysOfWeek: "1,2,3,4,5,6,7", IsActive: true},
	}

	out := ExpandTemplates(templates, wednesdayMorning())

	require.NotEmpty(t, out)
	require.Equal(t, models.DefaultCapacity, out[0].Capacity)
	require.Equal(t, models.DefaultCapacity, out[0].AvailableSeats)
}

func TestExpandTemplatesNormalizesSecondsInClock(t *testing.T) {
	templates := []models.BusTemplate{
		{ID: 1, DepartureTime: "12:00:00", ArrivalTime: "13:30:00",
			DaysOfWeek: "1,2,3,4,5,6,7", IsActive: true},
	}

	out := ExpandTemplates(templates, wednesdayMorning())

	require.NotEmpty(t, out)
	require.Equal(t, "12:00", out[0].DepartureTime)
	require.Equal(t, "13:30", out[0].ArrivalTime)
}
