package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sharenest/sharenest/docs"
	"github.com/sharenest/sharenest/internal/api/handler"
	"github.com/sharenest/sharenest/internal/api/middleware"
	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/service"
	"github.com/sharenest/sharenest/internal/infrastructure/config"
	mongostore "github.com/sharenest/sharenest/internal/infrastructure/db/mongo"
	redisstore "github.com/sharenest/sharenest/internal/infrastructure/db/redis"
	"github.com/sharenest/sharenest/internal/infrastructure/queue"
	"github.com/sharenest/sharenest/pkg/logger"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the rating recompute dispatcher, which the caller must
// Start before serving traffic.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sharenest"))

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	propertyRepo := mongostore.NewPropertyRepository(db)
	bookingRepo := mongostore.NewBookingRepository(db)
	reviewRepo := mongostore.NewReviewRepository(db)
	favoriteRepo := mongostore.NewFavoriteRepository(db)
	messageRepo := mongostore.NewMessageRepository(db)

	refreshStore := redisstore.NewRefreshTokenStore(rdb)
	ratingCache := redisstore.NewRatingCache(rdb, cfg.Rating.CacheTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, refreshStore, cfg.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, log)
	propertyService := service.NewPropertyService(propertyRepo, userRepo, reviewRepo, ratingCache, log)
	bookingService := service.NewBookingService(bookingRepo, propertyRepo, log)
	ratingService := service.NewRatingService(reviewRepo, ratingCache, log)
	dispatcher := queue.NewDispatcher(cfg.Rating.Workers, ratingService, log)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, dispatcher, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, propertyRepo, log)
	messageService := service.NewMessageService(messageRepo, bookingRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	messageHandler := handler.NewMessageHandler(messageService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	hostOnly := middleware.RBAC(domain.RoleHost, domain.RoleAdmin)
	guestOnly := middleware.RBAC(domain.RoleGuest, domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Users ---
	api.PUT("/users/profile", authHandler.UpdateProfile, authRequired)
	api.GET("/users/favorites", favoriteHandler.List, authRequired)

	// --- Properties ---
	api.GET("/properties", propertyHandler.List)
	api.GET("/properties/:id", propertyHandler.Get)
	api.POST("/properties", propertyHandler.Create, authRequired, hostOnly)
	api.PUT("/properties/:id", propertyHandler.Update, authRequired, hostOnly)
	api.DELETE("/properties/:id", propertyHandler.Delete, authRequired, hostOnly)
	api.GET("/properties/:id/reviews", reviewHandler.ListByProperty)
	api.POST("/properties/:id/favorite", favoriteHandler.Add, authRequired)
	api.DELETE("/properties/:id/favorite", favoriteHandler.Remove, authRequired)

	// --- Bookings ---
	api.POST("/bookings", bookingHandler.Create, authRequired, guestOnly)
	api.GET("/bookings", bookingHandler.List, authRequired)
	api.GET("/bookings/:id", bookingHandler.Get, authRequired)
	api.PUT("/bookings/:id/status", bookingHandler.UpdateStatus, authRequired)
	api.GET("/bookings/:id/messages", messageHandler.ListByBooking, authRequired)

	// --- Reviews ---
	api.POST("/reviews", reviewHandler.Create, authRequired, guestOnly)

	// --- Messages ---
	api.POST("/messages", messageHandler.Send, authRequired)
	api.PUT("/messages/:id/read", messageHandler.MarkRead, authRequired)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, dispatcher
}
