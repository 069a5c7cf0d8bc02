package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/logger"
)

const (
	HeaderRequestID = "X-Request-Id"
	ContextKey      = "request_id"
)

// RequestID reuses the caller's X-Request-Id or assigns a new one, and
// carries it on both the echo context and the request context.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(HeaderRequestID, id)
		c.Set(ContextKey, id)
		c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), id)))
		return next(c)
	}
}

// GetRequestID returns the id assigned by RequestID, if any.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(ContextKey).(string)
	return id
}

func RequestLogger(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Render the error now so the logged status is final.
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			} else if status >= 400 {
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.Int64("bytes", c.Response().Size),
				slog.String("client_ip", c.RealIP()),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			l.LogAttrs(c.Request().Context(), level, "http_request", attrs...)
			return nil
		}
	}
}

func Recovery(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					l.ErrorContext(c.Request().Context(), "panic recovered",
						"panic", fmt.Sprint(r),
						"path", c.Request().URL.Path,
					)
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"error":     "an unexpected error occurred",
						"code":      "INTERNAL_ERROR",
						"requestId": GetRequestID(c),
					})
				}
			}()
			return next(c)
		}
	}
}
