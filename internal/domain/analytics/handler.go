package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
	"github.com/Fadil369/Nphies-pro/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/analytics/dashboard", h.dashboard, auth.RequireScope(auth.ScopeAnalyticsRead))
}

// dashboard serves the aggregation object directly, without the response
// envelope the rest of the API uses.
func (h *Handler) dashboard(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		return respond.Error(c, err)
	}
	d, err := h.svc.Dashboard(c.Request().Context(), f)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func parseFilter(c echo.Context) (Filter, error) {
	var f Filter
	var err error

	if raw := c.QueryParam("from"); raw != "" {
		f.From, err = parseTime(raw, false)
		if err != nil {
			return f, apperr.Validation("invalid from date %q", raw)
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		f.To, err = parseTime(raw, true)
		if err != nil {
			return f, apperr.Validation("invalid to date %q", raw)
		}
	}
	f.Plan = c.QueryParam("plan")
	return f, nil
}

// parseTime accepts RFC 3339 timestamps or bare dates. A bare date used as
// the upper bound covers the whole day.
func parseTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
