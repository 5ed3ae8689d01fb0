package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-report-gateway/internal/dto"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
	"github.com/noah-isme/sma-report-gateway/pkg/response"
)

type lookupService interface {
	ListCompanies(ctx context.Context) ([]database.Row, error)
	GetCompany(ctx context.Context, id string) ([]database.Row, error)
	ListDaysOrders(ctx context.Context, query dto.DaysOrderQuery) ([]database.Row, error)
}

// LookupHandler exposes the read-only company and daysorder endpoints.
type LookupHandler struct {
	service lookupService
}

// NewLookupHandler constructs a lookup handler.
func NewLookupHandler(svc lookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// ListCompanies godoc
// @Summary List companies
// @Tags lookup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /company [get]
func (h *LookupHandler) ListCompanies(c *gin.Context) {
	rows, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// GetCompany godoc
// @Summary Get company rows by COMPANY_ID
// @Tags lookup
// @Produce json
// @Param id path string true "COMPANY_ID"
// @Success 200 {object} response.Envelope
// @Router /company/{id} [get]
func (h *LookupHandler) GetCompany(c *gin.Context) {
	rows, err := h.service.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// ListDaysOrders godoc
// @Summary List daysorder rows for an agent
// @Tags lookup
// @Produce json
// @Param code query string true "AGENT_CODE"
// @Success 200 {object} response.Envelope
// @Router /daysorder [get]
func (h *LookupHandler) ListDaysOrders(c *gin.Context) {
	rows, err := h.service.ListDaysOrders(c.Request.Context(), dto.DaysOrderQuery{AgentCode: c.Query("code")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}
