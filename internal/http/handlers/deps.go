package handlers

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/services"
	"campusbus/internal/services/payment"

	"github.com/gin-gonic/gin"
)

var paymentProvider payment.Provider

// SetPaymentProvider wires the checkout provider; called once by the router.
func SetPaymentProvider(p payment.Provider) {
	paymentProvider = p
}

func db() *sql.DB {
	return intconfig.DB
}

func bookingService(c *gin.Context) services.BookingService {
	reqID := middleware.GetRequestID(c)
	return services.BookingService{
		Bookings:  repositories.BookingRepository{DB: db()},
		Holds:     repositories.SeatHoldRepository{DB: db()},
		Buses:     repositories.BusRepository{DB: db()},
		Routes:    repositories.RouteRepository{DB: db()},
		Profiles:  repositories.ProfileRepository{DB: db()},
		Provider:  paymentProvider,
		Notifier:  notificationService(c),
		RequestID: reqID,
	}
}

func scheduleService(c *gin.Context) services.ScheduleService {
	return services.ScheduleService{
		Buses:   repositories.BusRepository{DB: db()},
		SeatMap: seatMapService(c),
	}
}

func seatMapService(_ *gin.Context) services.SeatMapService {
	return services.SeatMapService{
		Bookings: repositories.BookingRepository{DB: db()},
		Holds:    repositories.SeatHoldRepository{DB: db()},
		Buses:    repositories.BusRepository{DB: db()},
	}
}

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		Bookings:  repositories.BookingRepository{DB: db()},
		RequestID: middleware.GetRequestID(c),
	}
}

func notificationService(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		Repo:      repositories.NotificationRepository{DB: db()},
		RequestID: middleware.GetRequestID(c),
	}
}

func profileService(c *gin.Context) services.ProfileService {
	return services.ProfileService{
		Repo:      repositories.ProfileRepository{DB: db()},
		Notifier:  notificationService(c),
		RequestID: middleware.GetRequestID(c),
	}
}
