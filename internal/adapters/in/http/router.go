package http

import (
	"net/http"

	logging "dispatch/internal/pkg/logger"
	"dispatch/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRouter builds the echo instance serving the API together with /health, /metrics,
// /openapi.yaml and the Swagger UI under /docs/. Every API request is validated against the embedded document
// before it reaches the server.
func NewRouter(server *Server, logger *zap.Logger, logLevel string) (*echo.Echo, error) {
	router, err := loadRouter()
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(level))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			metrics.RecordHTTPRequest(v.Method, v.RoutePath, v.Status)
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/docs/*", echoSwagger.WrapHandler)

	api := e.Group("", requestValidator(router))
	RegisterHandlers(api, server)

	return e, nil
}

// echoLogLevel maps a zap level onto echo's logger; levels above error silence it.
func echoLogLevel(level zapcore.Level) log.Lvl {
	switch {
	case level <= zapcore.DebugLevel:
		return log.DEBUG
	case level == zapcore.InfoLevel:
		return log.INFO
	case level == zapcore.WarnLevel:
		return log.WARN
	case level == zapcore.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}
