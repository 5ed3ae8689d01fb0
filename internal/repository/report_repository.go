package repository

import (
	"context"

	"github.com/noah-isme/sma-report-gateway/internal/models"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

const (
	insertReportQuery         = `INSERT INTO studentreport (CLASS, SECTION, ROLLID, GRADE, SEMISTER, CLASS_ATTENDED) VALUES (?,?,?,?,?,?)`
	listReportsQuery          = `SELECT * FROM studentreport`
	updateReportGradeQuery    = `UPDATE studentreport SET GRADE = ?, SECTION = ? WHERE ROLLID = ?`
	updateReportSemesterQuery = `UPDATE studentreport SET SEMISTER = ?, SECTION = ? WHERE ROLLID = ?`
	deleteReportQuery         = `DELETE FROM studentreport WHERE ROLLID = ?`
)

// ReportRepository issues statements against the studentreport table.
type ReportRepository struct {
	exec *database.Executor
}

// NewReportRepository constructs a report repository.
func NewReportRepository(exec *database.Executor) *ReportRepository {
	return &ReportRepository{exec: exec}
}

// Create inserts a report row.
func (r *ReportRepository) Create(ctx context.Context, report models.StudentReport) (*database.Outcome, error) {
	return r.exec.Exec(ctx, database.NewQuery("report.create", insertReportQuery,
		report.Class,
		report.Section,
		report.RollID,
		report.Grade,
		report.Semester,
		report.ClassesAttended,
	))
}

// List returns every report row as stored.
func (r *ReportRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.exec.Query(ctx, database.NewQuery("report.list", listReportsQuery))
}

// UpdateGrade sets grade and section on rows matching rollID.
func (r *ReportRepository) UpdateGrade(ctx context.Context, rollID int64, grade, section string) (*database.Outcome, error) {
	return r.exec.Exec(ctx, database.NewQuery("report.update_grade", updateReportGradeQuery, grade, section, rollID))
}

// UpdateSemester sets semester and section on rows matching rollID.
func (r *ReportRepository) UpdateSemester(ctx context.Context, rollID int64, semester, section string) (*database.Outcome, error) {
	return r.exec.Exec(ctx, database.NewQuery("report.update_semester", updateReportSemesterQuery, semester, section, rollID))
}

// Delete removes rows matching rollID.
func (r *ReportRepository) Delete(ctx context.Context, rollID int64) (*database.Outcome, error) {
	return r.exec.Exec(ctx, database.NewQuery("report.delete", deleteReportQuery, rollID))
}
