package services

import (
	"fmt"
	"time"

	"campusbus/internal/repositories"
	"campusbus/internal/utils"
)

// ExpiryService lapses stale state: active bookings past their expiry become
// expired (terminal states are never touched) and dead seat holds are removed.
type ExpiryService struct {
	Bookings repositories.BookingRepository
	Holds    repositories.SeatHoldRepository
}

func (s ExpiryService) Sweep(nowTime time.Time) error {
	expired, err := s.Bookings.ExpireLapsed(nowTime)
	if err != nil {
		return err
	}
	released, err := s.Holds.DeleteExpired(nowTime)
	if err != nil {
		return err
	}
	if expired > 0 || released > 0 {
		utils.LogEvent("", "expiry", "sweep",
			fmt.Sprintf("bookings_expired=%d holds_released=%d", expired, released))
	}
	return nil
}
