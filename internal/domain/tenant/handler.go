package tenant

import (
	"net/http"

	"github.com/google/uuid"
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
	read := auth.RequireScope(auth.ScopeClaimsRead)
	write := auth.RequireScope(auth.ScopeClaimsWrite)

	api.GET("/tenants", h.list, read)
	api.POST("/tenants", h.create, write)
	api.GET("/tenants/:id", h.get, read)
}

type createTenantRequest struct {
	Name string `json:"name"`
	Plan string `json:"plan"`
}

func (h *Handler) create(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validation("invalid request body"))
	}
	t, err := h.svc.CreateTenant(c.Request().Context(), req.Name, req.Plan)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, t)
}

func (h *Handler) list(c echo.Context) error {
	items, err := h.svc.ListTenants(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	if items == nil {
		items = []*Tenant{}
	}
	return respond.OK(c, http.StatusOK, items)
}

func (h *Handler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid tenant id"))
	}
	detail, err := h.svc.GetTenantDetail(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, detail)
}
