package claim

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
	"github.com/Fadil369/Nphies-pro/pkg/pagination"
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

	api.GET("/claims", h.ListClaims, read)
	api.POST("/claims", h.CreateClaim, write)
	api.GET("/claims/:id", h.GetClaim, read)
	api.PATCH("/claims/:id/status", h.UpdateStatus, write)
	api.GET("/claims/:id/activity", h.ListActivity, read)
	api.POST("/claims/:id/activity", h.AppendNote, write)
	api.POST("/claims/:id/decision", h.RecordDecision, write)
}

// claimDetail decorates a claim with its compliance review flags.
type claimDetail struct {
	*Claim
	ComplianceFlags []string `json:"compliance_flags"`
}

func (h *Handler) CreateClaim(c echo.Context) error {
	var in CreateClaimInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, apperr.Validation("invalid request body"))
	}

	created, err := h.svc.CreateClaim(c.Request().Context(), in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, created)
}

func (h *Handler) GetClaim(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid claim id"))
	}

	cl, err := h.svc.GetClaim(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, claimDetail{Claim: cl, ComplianceFlags: cl.ComplianceFlags()})
}

func (h *Handler) ListClaims(c echo.Context) error {
	var filter ListFilter
	if raw := c.QueryParam("tenantId"); raw != "" {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return respond.Error(c, apperr.Validation("invalid tenantId"))
		}
		filter.TenantID = tid
	}

	claims, err := h.svc.ListClaims(c.Request().Context(), filter)
	if err != nil {
		return respond.Error(c, err)
	}
	if claims == nil {
		claims = []*Claim{}
	}
	return respond.OK(c, http.StatusOK, claims)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid claim id"))
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return respond.Error(c, apperr.Validation("invalid request body"))
	}

	updated, uerr := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if uerr != nil {
		return respond.Error(c, uerr)
	}
	return respond.OK(c, http.StatusOK, updated)
}

func (h *Handler) ListActivity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid claim id"))
	}

	pg := pagination.FromContext(c)
	items, total, lerr := h.svc.ListActivity(c.Request().Context(), id, pg.Limit, pg.Offset)
	if lerr != nil {
		return respond.Error(c, lerr)
	}
	if items == nil {
		items = []*Activity{}
	}
	return respond.OK(c, http.StatusOK, pagination.NewPage(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) AppendNote(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid claim id"))
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return respond.Error(c, apperr.Validation("invalid request body"))
	}

	a, aerr := h.svc.AppendNote(c.Request().Context(), id, body.Message)
	if aerr != nil {
		return respond.Error(c, aerr)
	}
	return respond.OK(c, http.StatusCreated, a)
}

func (h *Handler) RecordDecision(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validation("invalid claim id"))
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return respond.Error(c, apperr.Validation("invalid request body"))
	}

	a, derr := h.svc.RecordDecision(c.Request().Context(), id, body.Message)
	if derr != nil {
		return respond.Error(c, derr)
	}
	return respond.OK(c, http.StatusCreated, a)
}
