package services

import (
	"sort"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/jinzhu/now"
)

// ScheduleHorizonDays is the window of dated departures generated per request
// (today plus six days). Departures are never persisted; they are recomputed
// on every call.
const ScheduleHorizonDays = 7

// ScheduleService expands a route's weekly bus templates into concrete dated
// departures and fills in live seat availability.
type ScheduleService struct {
	Buses   repositories.BusRepository
	SeatMap SeatMapService
	Now     func() time.Time
}

func (s ScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Departures lists upcoming departures for a route, ordered by date then
// departure time. Availability is derived from the seat map for each exact
// date rather than assumed to be the full capacity.
func (s ScheduleService) Departures(routeID int64) ([]models.ScheduledDeparture, error) {
	if routeID <= 0 {
		return nil, domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}
	templates, err := s.Buses.ListActiveByRoute(routeID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	nowTime := s.now()
	out := ExpandTemplates(templates, nowTime)

	for i := range out {
		seatMap, err := s.SeatMap.SeatMap(out[i].TemplateID, out[i].Date)
		if err != nil {
			return nil, err
		}
		avail := seatMap.Capacity - len(seatMap.Taken) - len(seatMap.Held)
		if avail < 0 {
			avail = 0
		}
		out[i].AvailableSeats = avail
	}
	return out, nil
}

// ExpandTemplates generates dated departures for the horizon starting at
// nowTime. Weekdays use the store's convention, 1=Monday .. 7=Sunday. For
// today, departures at or before the current wall clock are suppressed; the
// comparison is lexical at HH:MM granularity, so malformed time strings pass
// through instead of raising.
func ExpandTemplates(templates []models.BusTemplate, nowTime time.Time) []models.ScheduledDeparture {
	out := []models.ScheduledDeparture{}
	today := now.With(nowTime).BeginningOfDay()
	currentClock := utils.ClockHHMM(nowTime)

	for offset := 0; offset < ScheduleHorizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		weekday := isoWeekday(day)

		for _, tpl := range templates {
			if !tpl.IsActive || !tpl.RunsOn(weekday) {
				continue
			}
			if offset == 0 && utils.NormalizeClock(tpl.DepartureTime) <= currentClock {
				continue
			}
			out = append(out, models.ScheduledDeparture{
				TemplateID:     tpl.ID,
				RouteID:        tpl.RouteID,
				BusNumber:      tpl.BusNumber,
				Date:           utils.FormatDate(day),
				DepartureTime:  utils.NormalizeClock(tpl.DepartureTime),
				ArrivalTime:    utils.NormalizeClock(tpl.ArrivalTime),
				Capacity:       tpl.EffectiveCapacity(),
				AvailableSeats: tpl.EffectiveCapacity(),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].DepartureTime < out[j].DepartureTime
	})
	return out
}

// isoWeekday maps Go's Sunday-as-0 to the store's 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
