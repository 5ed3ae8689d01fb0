package dto

// CreateReportRequest captures the POST /report payload.
type CreateReportRequest struct {
	Class           string `json:"CLASS" validate:"required"`
	Section         string `json:"SECTION" validate:"required"`
	RollID          *int64 `json:"ROLLID" validate:"required"`
	Grade           string `json:"GRADE" validate:"required"`
	Semester        string `json:"SEMISTER" validate:"required"`
	ClassesAttended *int64 `json:"CLASS_ATTENDED" validate:"required,gte=0"`
}

// UpdateReportGradeRequest captures the PUT /report payload.
type UpdateReportGradeRequest struct {
	Grade   string `json:"GRADE" validate:"required"`
	Section string `json:"SECTION" validate:"required"`
	RollID  *int64 `json:"ROLLID" validate:"required"`
}

// UpdateReportSemesterRequest captures the PATCH /reports payload.
type UpdateReportSemesterRequest struct {
	Semester string `json:"SEMISTER" validate:"required"`
	Section  string `json:"SECTION" validate:"required"`
	RollID   *int64 `json:"ROLLID" validate:"required"`
}
