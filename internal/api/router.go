package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/parcelhub/shipping-api/docs"
	"github.com/parcelhub/shipping-api/internal/api/handler"
	"github.com/parcelhub/shipping-api/internal/api/middleware"
	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
	"github.com/parcelhub/shipping-api/internal/core/service"
)

// Services bundles the use-case implementations the router exposes. They
// are constructed in main and injected here; the router owns only
// transport wiring.
type Services struct {
	Auth       ports.AuthService
	Cities     ports.CityService
	Pricing    ports.PricingService
	Shipments  ports.ShipmentService
	Subscriber ports.Subscriber
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svcs Services, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("parcelhub"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	cityHandler := handler.NewCityHandler(svcs.Cities)
	quoteHandler := handler.NewQuoteHandler(svcs.Pricing)
	shipmentHandler := handler.NewShipmentHandler(svcs.Shipments)
	streamHandler := handler.NewStreamHandler(svcs.Shipments, svcs.Subscriber, service.TopicForShipment)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/v1/cities", cityHandler.List)

	// --- Authenticated routes ---
	auth := middleware.Auth(jwtSecret)
	v1 := e.Group("/v1", auth)
	v1.POST("/quotes", quoteHandler.Quote)
	v1.POST("/shipments", shipmentHandler.Create)
	v1.GET("/shipments", shipmentHandler.List)
	v1.GET("/shipments/:id", shipmentHandler.Get)
	v1.GET("/shipments/:id/events", streamHandler.Events)
	v1.PATCH("/shipments/:id/state", shipmentHandler.ChangeState, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
