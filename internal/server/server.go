package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"trainercal/internal/auth"
	"trainercal/internal/availability"
	"trainercal/internal/booking"
	"trainercal/internal/calendardata"
	"trainercal/internal/config"
	"trainercal/internal/events"
)

type Server struct {
	router  *gin.Engine
	http    *http.Server
	db      *sqlx.DB
	config  *config.Config
	changes *calendardata.ChangeStream
}

// New wires the API. Changes are published through publisher and streamed
// to clients from bus, which publisher must deliver to.
func New(db *sqlx.DB, cfg *config.Config, bus *events.Bus, publisher events.Publisher) *Server {
	bookingRepo := booking.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	changes := calendardata.NewChangeStream(bus)

	router := NewRouter(
		cfg,
		booking.NewHandler(booking.NewService(bookingRepo, publisher)),
		availability.NewHandler(availability.NewService(availabilityRepo, publisher)),
		calendardata.NewHandler(calendardata.NewLoader(calendardata.NewRepositorySource(bookingRepo, availabilityRepo))),
		changes,
	)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:      db,
		config:  cfg,
		changes: changes,
	}
}

// NewRouter wires the middleware chain and every route.
func NewRouter(cfg *config.Config, bookingHandler *booking.Handler, availabilityHandler *availability.Handler, calendarHandler *calendardata.Handler, changeStream *calendardata.ChangeStream) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/trainers/:trainerID/calendar", calendarHandler.GetCalendar)
		protected.GET("/trainers/:trainerID/calendar/blocked-dates", calendarHandler.BlockedDates)
		protected.GET("/trainers/:trainerID/calendar/changes", changeStream.Stream)
		protected.POST("/booking-requests/:requestID/status",
			auth.RequireRole(auth.RoleAdmin, auth.RoleTrainer),
			bookingHandler.UpdateStatus,
		)
	}

	trainer := router.Group("/trainers/:trainerID")
	trainer.Use(authMiddleware, auth.RequireTrainerAccess())
	{
		trainer.GET("/booking-requests", bookingHandler.ListRequests)
		trainer.GET("/booking-requests/pending", bookingHandler.ListPending)
		trainer.GET("/events", bookingHandler.ListEvents)
		trainer.GET("/availability", availabilityHandler.List)
		trainer.PUT("/availability", availabilityHandler.Set)
		trainer.PUT("/availability/bulk", availabilityHandler.BulkSet)
		trainer.GET("/blocked-weekdays", availabilityHandler.BlockedWeekdays)
		trainer.PUT("/blocked-weekdays", availabilityHandler.SetBlockedWeekdays)
	}

	return router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.changes.Close()
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}
