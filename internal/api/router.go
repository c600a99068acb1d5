package api

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/inclusions-zone/mailhub-backend/internal/api/handlers"
	"github.com/inclusions-zone/mailhub-backend/internal/api/middleware"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB     *gorm.DB
	Logger *slog.Logger
	Hub    *websocket.Hub

	Ingestion services.IngestionService
	Analysis  services.AnalysisService
	Actions   services.ActionService
	Digest    services.DigestService
	Intake    services.IntakeService

	// Security configuration
	APIKey         string   // API key for authentication (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	RateLimit      int      // Requests per second (0 = use env default)
	RateBurst      int      // Burst size for rate limiter
	EnableAuth     bool     // Enable API key authentication
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Security Middleware (applied in correct order)
	// 1. Recover from panics
	e.Use(middleware.Recover())

	// 2. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 3. CORS - Set environment variable if origins provided in config
	if len(cfg.AllowedOrigins) > 0 {
		os.Setenv("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, ","))
	}
	e.Use(middleware.SecureCORS())

	// 4. Rate limiting - use RateLimiterWithConfig if custom values provided
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(float64(cfg.RateLimit), cfg.RateBurst, cfg.Logger))
	} else {
		e.Use(middleware.RateLimiter(cfg.Logger))
	}

	// 5. Request logging
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	messageRepo := repository.NewMessageRepository(cfg.DB)
	actionRepo := repository.NewActionRepository(cfg.DB)
	contactRepo := repository.NewContactRepository(cfg.DB)
	companyRepo := repository.NewCompanyRepository(cfg.DB)
	dealRepo := repository.NewDealRepository(cfg.DB)
	bookingRepo := repository.NewBookingRepository(cfg.DB)
	vipRepo := repository.NewVIPRepository(cfg.DB)
	newsletterRepo := repository.NewNewsletterRepository(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	emailHandler := handlers.NewEmailHandler(cfg.Ingestion, cfg.Analysis, messageRepo, actionRepo)
	actionHandler := handlers.NewActionHandler(cfg.Actions)
	digestHandler := handlers.NewDigestHandler(cfg.Digest)
	crmHandler := handlers.NewCRMHandler(contactRepo, companyRepo, dealRepo, bookingRepo, vipRepo, newsletterRepo)
	publicHandler := handlers.NewPublicHandler(cfg.Intake)
	statsHandler := handlers.NewStatsHandler(messageRepo, actionRepo, contactRepo, dealRepo, bookingRepo, vipRepo)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// Public intake routes (no auth required, rate limited like everything else)
	public := e.Group("/public")
	public.POST("/newsletter", publicHandler.Newsletter)
	public.POST("/vip", publicHandler.VIP)
	public.POST("/booking", publicHandler.Booking)
	public.POST("/contact", publicHandler.Contact)

	// Dashboard websocket (origin checked by the upgrader)
	if cfg.Hub != nil {
		e.GET("/ws", websocketHandler(cfg.Hub, cfg.Logger))
	}

	// API routes
	api := e.Group("/api")

	// Apply API key authentication if enabled
	// Set API_KEY env var if provided in config
	if cfg.EnableAuth && cfg.APIKey != "" {
		os.Setenv("API_KEY", cfg.APIKey)
	}
	api.Use(middleware.APIKeyAuth(cfg.Logger))

	// Email pipeline routes
	email := api.Group("/email")
	email.POST("/ingest", emailHandler.Ingest)
	email.GET("/connections", emailHandler.Connections)
	email.POST("/analyze", emailHandler.Analyze)
	email.GET("/inbox", emailHandler.Inbox)
	email.GET("/messages/:id", emailHandler.Get)
	email.PATCH("/messages/:id/read", emailHandler.MarkAsRead)
	email.PATCH("/messages/:id/archive", emailHandler.Archive)
	email.DELETE("/messages/:id", emailHandler.Delete)
	email.GET("/actions", actionHandler.List)
	email.POST("/actions/:id", actionHandler.Decide)
	email.POST("/digest", digestHandler.Send)

	// Dashboard stats
	api.GET("/stats", statsHandler.Get)

	// CRM routes
	contacts := api.Group("/contacts")
	contacts.GET("", crmHandler.ListContacts)
	contacts.DELETE("/:id", crmHandler.DeleteContact)

	companies := api.Group("/companies")
	companies.GET("", crmHandler.ListCompanies)
	companies.DELETE("/:id", crmHandler.DeleteCompany)

	deals := api.Group("/deals")
	deals.GET("", crmHandler.ListDeals)
	deals.PATCH("/:id/status", crmHandler.UpdateDealStatus)
	deals.DELETE("/:id", crmHandler.DeleteDeal)

	bookings := api.Group("/bookings")
	bookings.GET("", crmHandler.ListBookings)
	bookings.PATCH("/:id/status", crmHandler.UpdateBookingStatus)
	bookings.DELETE("/:id", crmHandler.DeleteBooking)

	vip := api.Group("/vip")
	vip.GET("", crmHandler.ListVIPs)
	vip.PATCH("/:id/status", crmHandler.UpdateVIPStatus)
	vip.DELETE("/:id", crmHandler.DeleteVIP)

	newsletter := api.Group("/newsletter")
	newsletter.GET("", crmHandler.ListSubscribers)
	newsletter.DELETE("/:id", crmHandler.DeleteSubscriber)

	return e
}

// websocketHandler upgrades the connection and hands it to the hub.
func websocketHandler(hub *websocket.Hub, logger *slog.Logger) echo.HandlerFunc {
	upgrader := websocket.NewSecureUpgrader(logger)
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			if logger != nil {
				logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
			}
			return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
		}

		client := websocket.NewClient(hub, conn, logger)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()

		return nil
	}
}
