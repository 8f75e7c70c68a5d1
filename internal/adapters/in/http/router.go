package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with every route of the API. Extra
// middlewares run after recovery and request logging.
func NewRouter(
	server *Server,
	metricsHandler http.Handler,
	logger *slog.Logger,
	middlewares ...echo.MiddlewareFunc,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	requestLogger := logger.With("component", "http")
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				requestLogger.WarnContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			requestLogger.DebugContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	}))
	e.Use(middlewares...)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	api := e.Group("/api/v1")
	api.POST("/orders", server.CreateOrder)
	api.GET("/orders", server.GetOrdersByEmail)
	api.GET("/orders/recent", server.GetRecentOrders)
	api.GET("/orders/:id", server.GetOrderDetail)
	api.PUT("/orders/:id/cancel", server.CancelOrder)

	admin := api.Group("/admin")
	admin.GET("/orders", server.GetAllOrders)
	admin.PATCH("/orders/:id/status", server.SetOrderStatus)
	admin.PATCH("/orders/:id/delivery-status", server.SetDeliveryStatus)
	admin.POST("/delivery-passes", server.RunDeliveryPass)

	return e
}
