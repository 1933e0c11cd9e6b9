package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "campusbus/internal/config"
	h "campusbus/internal/http/handlers"
	"campusbus/internal/http/middleware"
	"campusbus/internal/services/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)
	h.SetPaymentProvider(payment.NewPaystackClient(env.PaystackSecret, env.PaystackBase))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Public catalog
		api.GET("/routes", h.ListRoutes)
		api.GET("/routes/:id/departures", h.GetRouteDepartures)
		api.GET("/buses/:id/seats", h.GetSeatMap)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Rider surface
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			bookings := authed.Group("/bookings")
			bookings.POST("/checkout", h.CheckoutBooking)
			bookings.POST("", h.CommitBooking)
			bookings.GET("", h.ListMyBookings)
			bookings.GET("/:id/ticket", h.GetTicket)
			bookings.GET("/:id/ticket.pdf", h.GetTicketPDF)
			bookings.POST("/:id/cancel", h.CancelBooking)

			authed.GET("/profile", h.GetProfile)
			authed.PUT("/profile", h.UpdateProfile)

			notifications := authed.Group("/notifications")
			notifications.GET("", h.ListNotifications)
			notifications.GET("/unread-count", h.UnreadNotificationCount)
			notifications.POST("/:id/read", h.MarkNotificationRead)

			authed.POST("/feedback", h.SubmitFeedback)
		}

		// Admin surface
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.POST("/scan", h.ScanTicket)
			admin.POST("/notifications", h.SendNotification)
			admin.POST("/users/:id/promote", h.PromoteUser)

			admin.POST("/routes", h.CreateRoute)
			admin.PUT("/routes/:id/price", h.UpdateRoutePrice)
			admin.DELETE("/routes/:id", h.DeactivateRoute)

			admin.POST("/buses", h.CreateBus)
			admin.DELETE("/buses/:id", h.DeactivateBus)

			admin.GET("/feedback", h.ListFeedback)
		}
	}

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(env.CORSOrigins) > 0 {
		cfg.AllowOrigins = env.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
