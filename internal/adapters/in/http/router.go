package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/newrelic/go-agent/v3/newrelic"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// RouterOptions carries the optional pieces of the router.
type RouterOptions struct {
	Logger *zap.Logger
	// NewRelic is nil when tracing is disabled.
	NewRelic *newrelic.Application
}

// NewRouter builds the echo instance with middleware, the API routes and
// the API documentation.
func NewRouter(ctx context.Context, s *Server, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: requestTimeout}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))
	if opts.NewRelic != nil {
		e.Use(newRelicMiddleware(opts.NewRelic))
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerOpenAPI(e, doc); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, s)
	return e, nil
}

// RegisterHandlers mounts the API routes.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/sequences/lr", s.NextLRNumber)
	api.GET("/sequences/ogpl", s.NextOGPLNumber)

	api.POST("/bookings", s.CreateBooking)
	api.GET("/bookings", s.ListBookings)
	api.GET("/bookings/search", s.SearchBookings)
	api.GET("/bookings/:id", s.GetBooking)
	api.POST("/bookings/:id/cancel", s.CancelBooking)

	api.POST("/ogpls", s.CreateOGPL)
	api.GET("/ogpls/:id", s.GetOGPL)
	api.POST("/ogpls/:id/loading", s.LoadOGPL)
	api.POST("/ogpls/:id/depart", s.DepartOGPL)
	api.POST("/ogpls/:id/unloading", s.UnloadOGPL)
	api.POST("/ogpls/:id/cancel", s.CancelOGPL)
}
