package models

// StudentReport is one row of the studentreport table. RollID identifies the
// row for updates and deletes by convention only; the store enforces no uniqueness.
type StudentReport struct {
	Class           string `db:"CLASS" json:"CLASS"`
	Section         string `db:"SECTION" json:"SECTION"`
	RollID          int64  `db:"ROLLID" json:"ROLLID"`
	Grade           string `db:"GRADE" json:"GRADE"`
	Semester        string `db:"SEMISTER" json:"SEMISTER"`
	ClassesAttended int64  `db:"CLASS_ATTENDED" json:"CLASS_ATTENDED"`
}
