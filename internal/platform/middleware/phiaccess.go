package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/audit"
	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
)

// phiResources are the API path segments whose reads return PHI-bearing
// fields. Reads of these resources are audited; mutations are audited by the
// services themselves.
var phiResources = map[string]bool{
	"claims":  true,
	"tenants": true,
}

// PHIAccess writes an audit record for every successful PHI-bearing read
// under /api/v1. The handler runs first so only delivered reads are recorded.
func PHIAccess(recorder *audit.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			req := c.Request()
			if req.Method != http.MethodGet {
				return err
			}
			resource, resourceID := splitAPIPath(req.URL.Path)
			if !phiResources[resource] {
				return err
			}
			if status := c.Response().Status; status < 200 || status >= 300 {
				return err
			}

			ac := auth.AccessFromContext(req.Context())
			meta := map[string]string{"path": req.URL.Path}
			if rid, ok := c.Get("request_id").(string); ok && rid != "" {
				meta["request_id"] = rid
			}
			recorder.Record(req.Context(), "read."+resource, ac.ActorID, resource, resourceID, true, meta)

			return err
		}
	}
}

// splitAPIPath extracts the resource segment and optional id from an
// /api/v1/<resource>[/<id>[/...]] path.
func splitAPIPath(path string) (resource, id string) {
	const prefix = "/api/v1/"
	if !strings.HasPrefix(path, prefix) {
		return "", ""
	}
	segments := strings.Split(strings.TrimPrefix(path, prefix), "/")
	if len(segments) > 0 {
		resource = segments[0]
	}
	if len(segments) > 1 {
		id = segments[1]
	}
	return resource, id
}
