package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/allin1appd-sys/zenchair/internal/auth"
	"github.com/allin1appd-sys/zenchair/internal/booking"
	"github.com/allin1appd-sys/zenchair/internal/catalog"
	"github.com/allin1appd-sys/zenchair/internal/config"
	"github.com/allin1appd-sys/zenchair/internal/events"
	"github.com/allin1appd-sys/zenchair/internal/favorite"
	"github.com/allin1appd-sys/zenchair/internal/review"
	"github.com/allin1appd-sys/zenchair/internal/shop"
	"github.com/allin1appd-sys/zenchair/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	Booking    booking.Service
}

func New(db *sqlx.DB, cfg *config.Config, emitter *events.Emitter) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	shopRepo := shop.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	userRepo := user.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	favoriteRepo := favorite.NewRepository(db)

	shopService := shop.NewService(shopRepo, cfg.DefaultSlotGranularity)
	catalogManager := catalog.NewManager(catalogRepo, shopRepo)
	bookingService := booking.NewService(bookingRepo, shopRepo, catalogRepo, emitter, cfg.BookingHorizonDays)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	reviewService := review.NewService(reviewRepo, shopRepo)

	userHandler := user.NewHandler(userService)
	shopHandler := shop.NewHandler(shopService)
	catalogHandler := catalog.NewHandler(catalogManager)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)
	favoriteHandler := favorite.NewHandler(favoriteRepo, shopRepo)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/shops", shopHandler.ListShops)
		protected.GET("/shops/:shopID", shopHandler.GetShop)
		protected.GET("/shops/:shopID/hours", shopHandler.GetShopHours)
		protected.GET("/shops/:shopID/services", catalogHandler.ListShopServices)
		protected.GET("/shops/:shopID/slots", bookingHandler.ListSlots)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)

		protected.POST("/shops/:shopID/reviews", reviewHandler.CreateReview)
		protected.GET("/shops/:shopID/reviews", reviewHandler.ListReviews)

		protected.GET("/favorites", favoriteHandler.ListFavorites)
		protected.POST("/favorites/:shopID", favoriteHandler.AddFavorite)
		protected.DELETE("/favorites/:shopID", favoriteHandler.RemoveFavorite)
	}

	owner := router.Group("/owner")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleBarber))
	{
		owner.POST("/shops", shopHandler.CreateShop)
		owner.GET("/shops/me", shopHandler.GetMyShop)
		owner.PUT("/shops/:shopID", shopHandler.UpdateShop)
		owner.PUT("/shops/:shopID/hours", shopHandler.ReplaceHours)
		owner.POST("/shops/:shopID/closures", shopHandler.AddClosure)
		owner.DELETE("/shops/:shopID/closures/:date", shopHandler.RemoveClosure)

		owner.POST("/shops/:shopID/services", catalogHandler.CreateService)
		owner.PUT("/services/:serviceID", catalogHandler.UpdateService)
		owner.DELETE("/services/:serviceID", catalogHandler.DeleteService)

		owner.GET("/shops/:shopID/bookings", bookingHandler.ListShopBookings)
		owner.POST("/bookings/:bookingID/confirm", bookingHandler.ConfirmBooking)
		owner.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router:  router,
		db:      db,
		config:  cfg,
		Booking: bookingService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
