package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type healthStatus struct {
	Database    string `json:"database"`
	Cache       string `json:"cache,omitempty"`
	Application string `json:"application"`
}

// healthCheck reports 500 when the database probe fails; a cache outage only degrades.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{Database: "disconnected", Application: "running"}
	code := http.StatusInternalServerError
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		state := "connected"
		if err := hc.Check(ctx); err != nil {
			state = "disconnected"
			if s.logger != nil {
				s.logger.WithField("dependency", hc.Name()).WithError(err).Warn("health check failed")
			}
		}
		switch hc.Name() {
		case "database":
			status.Database = state
			if state == "connected" {
				code = http.StatusOK
			}
		case "cache":
			status.Cache = state
		}
	}
	return c.JSON(code, map[string]healthStatus{"status": status})
}
