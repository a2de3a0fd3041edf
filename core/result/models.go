package result

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Sky-walkerX/Examcell/core"
)

type Result struct {
	ID          int64     `json:"id" yaml:"id"`
	StudentID   string    `json:"studentId" yaml:"studentId"`
	Semester    string    `json:"semester" yaml:"semester"`
	SubjectCode string    `json:"subjectCode" yaml:"subjectCode"`
	SubjectName string    `json:"subjectName" yaml:"subjectName"`
	Marks       float64   `json:"marks" yaml:"marks"`
	Grade       string    `json:"grade" yaml:"grade"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewResult contains information needed to create a new Result.
// The status is derived from the marks by the backend.
type NewResult struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Semester    string  `json:"semester" validate:"required,semester"`
	SubjectCode string  `json:"subjectCode" validate:"required"`
	SubjectName string  `json:"subjectName" validate:"required"`
	Marks       float64 `json:"marks" validate:"min=0,max=100"`
	Grade       string  `json:"grade" validate:"required"`
}

func (nr *NewResult) Clean() {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Semester = core.CleanString(nr.Semester)
	nr.SubjectCode = core.CleanString(nr.SubjectCode)
	nr.SubjectName = core.CleanString(nr.SubjectName)
	nr.Grade = core.CleanString(nr.Grade)
	if nr.SubjectName == "" {
		nr.SubjectName = nr.SubjectCode
	}
}

func (nr *NewResult) Validate(validate *validator.Validate) error {
	nr.Clean()
	return validate.Struct(nr)
}

// UpdateResult defines what information may be provided to modify an existing Result.
type UpdateResult struct {
	Marks float64 `json:"marks" validate:"min=0,max=100"`
	Grade string  `json:"grade" validate:"required"`
}

func (ur *UpdateResult) Validate(validate *validator.Validate) error {
	ur.Grade = core.CleanString(ur.Grade)
	return validate.Struct(ur)
}

// Row is one line of a manual bulk entry; marks are kept as typed by the user.
type Row struct {
	SubjectCode string `json:"subjectCode" yaml:"subjectCode"`
	SubjectName string `json:"subjectName" yaml:"subjectName"`
	Marks       string `json:"marks" yaml:"marks"`
	Grade       string `json:"grade" yaml:"grade"`
}

func (r Row) complete() bool {
	return core.CleanString(r.SubjectCode) != "" && core.CleanString(r.Marks) != "" && core.CleanString(r.Grade) != ""
}

// RowError reports why a Row was not saved.
type RowError struct {
	SubjectCode string `json:"subjectCode" yaml:"subjectCode"`
	Error       string `json:"error" yaml:"error"`
}

// BatchReport summarizes a manual bulk entry.
type BatchReport struct {
	Submitted int        `json:"submitted" yaml:"submitted"`
	Saved     []Result   `json:"saved" yaml:"saved"`
	Errors    []RowError `json:"errors" yaml:"errors"`
}
