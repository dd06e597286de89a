package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// probePaths are logged once on their first success and on every failure.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestID returns the ID RequestLog assigned to the request, or "".
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// RequestLog logs one line per request and tags it with an ID taken from
// X-Request-ID or generated. The ID is echoed in the response header.
// Server errors log at ERROR and client errors at WARN. Deal queries keep
// their raw query string so a slow fan-out can be matched to its filters.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probed sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(requestIDHeader, id)

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			level := levelFor(status)
			if _, probe := probePaths[req.URL.Path]; probe {
				if status >= http.StatusMultipleChoices {
					level = slog.LevelWarn
				} else if _, again := probed.LoadOrStore(req.URL.Path, true); again {
					return nil
				}
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", id),
			}
			if route := c.Path(); route != "" && route != req.URL.Path {
				attrs = append(attrs, slog.String("route", route))
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}
			log.LogAttrs(req.Context(), level, "request", attrs...)
			return nil
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
