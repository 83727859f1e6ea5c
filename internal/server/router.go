package server

import (
	"context"
	"net/http"
	"time"

	"lrbook/internal/config"
	"lrbook/internal/middleware"
	"lrbook/internal/modules/admin"
	"lrbook/internal/modules/auth"
	"lrbook/internal/modules/booking"
	"lrbook/internal/modules/catalog"
	"lrbook/internal/modules/customer"
	"lrbook/internal/modules/feed"
	"lrbook/internal/modules/report"
	"lrbook/internal/pkg/jwt"
	"lrbook/internal/pkg/response"
	"lrbook/internal/repository"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every module onto the given stores. Booking events are
// published to hub.
func NewRouter(cfg *config.Config, repos *repository.Set, hub *feed.Hub) *gin.Engine {
	tokens := jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	authService := auth.NewService(repos.Agents, tokens)
	adminService := admin.NewService(repos.Agents, auth.HashPassword)
	catalogService := catalog.NewService(repos.Cities, repos.Locations)
	customerService := customer.NewService(repos.Customers)
	bookingService := booking.NewService(
		repos.Bookings,
		repos.Locations,
		repos.Cities,
		customerService,
		hub,
		booking.Config{
			DefaultLocation: cfg.Booking.DefaultLocation,
			MaxLRAttempts:   cfg.Booking.LRMaxAttempts,
		},
	)
	reportService := report.NewService(repos.Bookings)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/health", health(repos))

	v1 := r.Group("/api/v1")
	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(tokens, repos.Agents))
	adminGroup := protected.Group("")
	adminGroup.Use(middleware.AdminOnly())

	authHandler.RegisterProtectedRoutes(protected)
	admin.NewHandler(adminService).RegisterRoutes(adminGroup)
	catalog.NewHandler(catalogService).RegisterRoutes(protected, adminGroup)
	customer.NewHandler(customerService).RegisterRoutes(protected, adminGroup)
	booking.NewHandler(bookingService).RegisterRoutes(protected)
	report.NewHandler(reportService).RegisterRoutes(protected)
	feed.NewHandler(hub, cfg.CORS.AllowedOrigins).RegisterRoutes(protected)

	return r
}

func health(repos *repository.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if repos.Ping != nil {
			if err := repos.Ping(ctx); err != nil {
				_ = c.Error(err)
				response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is not reachable")
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
