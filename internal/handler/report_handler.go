package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-report-gateway/internal/dto"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
	"github.com/noah-isme/sma-report-gateway/pkg/response"
)

type reportService interface {
	Create(ctx context.Context, req dto.CreateReportRequest) (*database.Outcome, error)
	List(ctx context.Context) ([]database.Row, error)
	UpdateGrade(ctx context.Context, req dto.UpdateReportGradeRequest) (*database.Outcome, error)
	UpdateSemester(ctx context.Context, req dto.UpdateReportSemesterRequest) (*database.Outcome, error)
	Delete(ctx context.Context, rollID int64) (*database.Outcome, error)
}

// ReportHandler exposes student report CRUD endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Create godoc
// @Summary Inserting Student Report Information
// @Tags report
// @Accept json
// @Produce json
// @Param payload body dto.CreateReportRequest true "Report payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /report [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	outcome, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// List godoc
// @Summary Returns list of all the student reports
// @Tags report
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /report [get]
func (h *ReportHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// UpdateGrade godoc
// @Summary Updating Reports
// @Tags report
// @Accept json
// @Produce json
// @Param payload body dto.UpdateReportGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /report [put]
func (h *ReportHandler) UpdateGrade(c *gin.Context) {
	var req dto.UpdateReportGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	outcome, err := h.service.UpdateGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// UpdateSemester godoc
// @Summary Updating Report Info
// @Tags report
// @Accept json
// @Produce json
// @Param payload body dto.UpdateReportSemesterRequest true "Semester payload"
// @Success 200 {object} response.Envelope
// @Router /reports [patch]
func (h *ReportHandler) UpdateSemester(c *gin.Context) {
	var req dto.UpdateReportSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	outcome, err := h.service.UpdateSemester(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// Delete godoc
// @Summary Deleting a student report
// @Tags report
// @Produce json
// @Param id path int true "ROLLID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	rollID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMalformedRequest.Code, appErrors.ErrMalformedRequest.Status, "id must be an integer"))
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), rollID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrMalformedRequest.Code, appErrors.ErrMalformedRequest.Status, "invalid payload")
}
