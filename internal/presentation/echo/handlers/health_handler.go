package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
)

type HealthHandler struct {
	checkHealth *use_cases.CheckHealthUseCase
}

func NewHealthHandler(container *use_cases.Container) *HealthHandler {
	return &HealthHandler{checkHealth: container.CheckHealth}
}

// Live answers the liveness probe without touching dependencies.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Payment(c echo.Context) error {
	report := h.checkHealth.Execute(c.Request().Context())
	status := http.StatusOK
	if report.Status == use_cases.HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
