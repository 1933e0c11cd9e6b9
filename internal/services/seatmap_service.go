package services

import (
	"database/sql"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"
)

// SeatMapService computes the taken/held seat state for one dated departure.
// A store failure surfaces as an error; it must never read as "no seats taken".
type SeatMapService struct {
	Bookings repositories.BookingRepository
	Holds    repositories.SeatHoldRepository
	Buses    repositories.BusRepository
	Now      func() time.Time
}

func (s SeatMapService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s SeatMapService) SeatMap(busID int64, travelDate string) (models.SeatMap, error) {
	var m models.SeatMap
	if busID <= 0 {
		return m, domain.ValidationError{Field: "bus_id", Msg: "invalid id"}
	}
	if _, err := utils.ParseDate(travelDate); err != nil {
		return m, domain.ValidationError{Field: "travel_date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	tpl, err := s.Buses.GetByID(busID)
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return m, domain.InternalError{Err: err}
	}

	nowTime := s.now()
	taken, err := s.Bookings.TakenSeats(busID, travelDate, nowTime)
	if err != nil {
		return m, domain.InternalError{Msg: "could not load seat availability", Err: err}
	}
	held, err := s.Holds.HeldSeats(busID, travelDate, nowTime)
	if err != nil {
		return m, domain.InternalError{Msg: "could not load seat availability", Err: err}
	}

	return models.SeatMap{
		BusID:      busID,
		TravelDate: travelDate,
		Capacity:   tpl.EffectiveCapacity(),
		Taken:      taken,
		Held:       held,
	}, nil
}
