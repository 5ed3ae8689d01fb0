package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-report-gateway/internal/dto"
	"github.com/noah-isme/sma-report-gateway/internal/models"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
)

type reportRepository interface {
	Create(ctx context.Context, report models.StudentReport) (*database.Outcome, error)
	List(ctx context.Context) ([]database.Row, error)
	UpdateGrade(ctx context.Context, rollID int64, grade, section string) (*database.Outcome, error)
	UpdateSemester(ctx context.Context, rollID int64, semester, section string) (*database.Outcome, error)
	Delete(ctx context.Context, rollID int64) (*database.Outcome, error)
}

// ReportService validates student report requests before they reach the database.
// Writes succeed whenever the statement executes; a zero AffectedRows outcome means nothing matched.
type ReportService struct {
	repo      reportRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(repo reportRepository, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, validator: validate, logger: logger}
}

// Create inserts a new report row.
func (s *ReportService) Create(ctx context.Context, req dto.CreateReportRequest) (*database.Outcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, malformed(err, "invalid report payload")
	}
	report := models.StudentReport{
		Class:           req.Class,
		Section:         req.Section,
		RollID:          *req.RollID,
		Grade:           req.Grade,
		Semester:        req.Semester,
		ClassesAttended: *req.ClassesAttended,
	}
	return s.repo.Create(ctx, report)
}

// List returns every report row.
func (s *ReportService) List(ctx context.Context) ([]database.Row, error) {
	return s.repo.List(ctx)
}

// UpdateGrade changes grade and section of the rows with the given roll id.
func (s *ReportService) UpdateGrade(ctx context.Context, req dto.UpdateReportGradeRequest) (*database.Outcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, malformed(err, "invalid report payload")
	}
	outcome, err := s.repo.UpdateGrade(ctx, *req.RollID, req.Grade, req.Section)
	if err != nil {
		return nil, err
	}
	s.logNoMatch("update_grade", *req.RollID, outcome)
	return outcome, nil
}

// UpdateSemester changes semester and section of the rows with the given roll id.
func (s *ReportService) UpdateSemester(ctx context.Context, req dto.UpdateReportSemesterRequest) (*database.Outcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, malformed(err, "invalid report payload")
	}
	outcome, err := s.repo.UpdateSemester(ctx, *req.RollID, req.Semester, req.Section)
	if err != nil {
		return nil, err
	}
	s.logNoMatch("update_semester", *req.RollID, outcome)
	return outcome, nil
}

// Delete removes the rows with the given roll id.
func (s *ReportService) Delete(ctx context.Context, rollID int64) (*database.Outcome, error) {
	outcome, err := s.repo.Delete(ctx, rollID)
	if err != nil {
		return nil, err
	}
	s.logNoMatch("delete", rollID, outcome)
	return outcome, nil
}

func (s *ReportService) logNoMatch(op string, rollID int64, outcome *database.Outcome) {
	if outcome != nil && outcome.AffectedRows == 0 {
		s.logger.Info("report statement matched no rows", zap.String("op", op), zap.Int64("roll_id", rollID))
	}
}

func malformed(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrMalformedRequest.Code, appErrors.ErrMalformedRequest.Status, message)
}
