package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"parceltrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var (
	registerDocOnce sync.Once
	registerDocErr  error
)

// NewEcho builds the HTTP router: health check, API docs at /swagger/*, and
// every ServerInterface route behind OpenAPI request validation.
func NewEcho(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := NewRequestValidator()
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)
	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Debug("request", attrs...)
			return nil
		},
	})
}

// registerSwaggerDoc publishes the OpenAPI document to the swag registry
// that echo-swagger serves doc.json from.
func registerSwaggerDoc() error {
	registerDocOnce.Do(func() {
		doc, err := servers.GetSwagger()
		if err != nil {
			registerDocErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			registerDocErr = fmt.Errorf("marshal openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			SwaggerTemplate:  string(raw),
		})
	})
	return registerDocErr
}
