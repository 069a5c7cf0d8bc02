package echo

import (
	"log/slog"

	echofw "github.com/labstack/echo/v4"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/presentation/echo/handlers"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/presentation/echo/middleware"
)

// NewRouter builds the echo instance with middleware, error handling and
// all routes registered.
func NewRouter(container *use_cases.Container, logger *slog.Logger) *echofw.Echo {
	e := echofw.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	e.Validator = NewRequestValidator()

	ConfigureRoutes(e, container, logger)
	return e
}

func ConfigureRoutes(e *echofw.Echo, container *use_cases.Container, logger *slog.Logger) {
	e.Use(middleware.RequestID)
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Recovery(logger))

	healthHandler := handlers.NewHealthHandler(container)
	e.GET("/health", healthHandler.Live)

	paymentHandler := handlers.NewPaymentHandler(container)
	payment := e.Group("/payment")
	payment.POST("/create-intent", paymentHandler.CreateIntent)
	payment.GET("/create-intent", paymentHandler.DescribeConfig)
	payment.POST("/webhook", paymentHandler.Webhook)
	payment.GET("/health", healthHandler.Payment)
	payment.POST("/retry/:key", paymentHandler.Retry)
	payment.DELETE("/retry/:key", paymentHandler.ClearRetry)

	orderHandler := handlers.NewOrderHandler(container)
	e.POST("/orders", orderHandler.Place)
	e.GET("/orders/:id", orderHandler.Get)
}
