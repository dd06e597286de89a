// Package middleware holds the Echo middleware shared by every API route.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
)

// unobserved routes stay out of the request metrics.
var unobserved = map[string]bool{
	"/metrics":      true,
	"/healthz":      true,
	"/readyz":       true,
	"/docs":         true,
	"/openapi.json": true,
	"/openapi.yaml": true,
}

// Metrics counts and times requests by method, route template and status.
// Requests that match no route share the "unmatched" label so arbitrary
// URLs cannot grow label cardinality.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			if unobserved[route] {
				return next(c)
			}

			start := time.Now()
			if err := next(c); err != nil {
				// The error handler writes the status we label with.
				c.Error(err)
			}

			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   route,
				"status": strconv.Itoa(c.Response().Status),
			}
			metrics.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.With(labels).Inc()
			return nil
		}
	}
}
