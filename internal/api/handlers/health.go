// Package handlers implements HTTP handlers for the deal-aggregator API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
)

// Pinger is anything readiness depends on. store.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeBody is the JSON body of both probes. Checks is omitted on liveness.
type ProbeBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ProbeHandler serves the liveness and readiness probes.
type ProbeHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler creates a ProbeHandler whose readiness covers the
// featured-deal store.
func NewHealthHandler(featured Pinger) *ProbeHandler {
	return &ProbeHandler{deps: map[string]Pinger{"featured_store": featured}}
}

// Healthz always answers ok while the process can serve requests.
func (*ProbeHandler) Healthz(c echo.Context) error {
	metrics.HealthzUp.Set(1)
	return c.JSON(http.StatusOK, ProbeBody{Status: "ok"})
}

// Readyz pings every dependency and answers 503 naming the ones that failed.
func (h *ProbeHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()
	body := ProbeBody{Status: "ready", Checks: make(map[string]string, len(h.deps))}
	code := http.StatusOK

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			body.Checks[name] = err.Error()
			body.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		body.Checks[name] = "ok"
	}

	if code == http.StatusOK {
		metrics.ReadyzUp.Set(1)
	} else {
		metrics.ReadyzUp.Set(0)
	}
	return c.JSON(code, body)
}
