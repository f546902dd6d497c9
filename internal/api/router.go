package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/catalog-api/internal/api/docs"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/core/validate"
)

const bodyLimit = "1M"

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Log      zerolog.Logger
	Auth     ports.AuthService
	Products ports.ProductService
	Tokens   ports.TokenVerifier

	Database handler.DatabaseProvider
	// Redis is nil when the product cache is disabled.
	Redis redis.Cmdable

	PriceRule     validate.PriceRule
	AuthRateLimit float64
	AuthRateBurst int

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "catalog",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Products, d.Log)

	authenticate := middleware.Authenticate(d.Tokens, d.Log)
	adminOnly := middleware.Authorize(domain.RoleAdmin)
	productBody := func(f validate.Fields) (domain.ProductInput, error) {
		return validate.Product(f, validate.ProductOptions{PriceRule: d.PriceRule})
	}

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	var throttle []echo.MiddlewareFunc
	if d.AuthRateLimit > 0 {
		throttle = append(throttle, middleware.RateLimit(d.AuthRateLimit, d.AuthRateBurst))
	}
	auth.POST("/register", authHandler.Register, append(throttle, middleware.Validate(validate.Registration))...)
	auth.POST("/login", authHandler.Login, append(throttle, middleware.Validate(validate.Login))...)
	auth.GET("/users", authHandler.ListUsers)
	auth.GET("/users/:id", authHandler.GetUser)

	// --- Product routes ---
	// Auth runs before body validation on protected routes.
	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authenticate, adminOnly, middleware.Validate(productBody))
	products.PUT("/:id", productHandler.Replace, authenticate, adminOnly, middleware.Validate(productBody))
	products.PATCH("/:id", productHandler.Update, authenticate, adminOnly, middleware.Validate(validate.ProductPatch))
	products.DELETE("/:id", productHandler.Delete, authenticate, adminOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Database, d.Redis).Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}
