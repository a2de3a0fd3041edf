package upload

import (
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sky-walkerX/Examcell/core"
)

// Upload types
const (
	TypeSemesterResults = "semester-results"
)

const DefaultRecentLimit = 5

type Upload struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Type      string    `json:"type" yaml:"type"`
	Records   int       `json:"records" yaml:"records"`
	Status    string    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CSVUpload is the multipart payload of a results CSV upload.
type CSVUpload struct {
	Semester string    `json:"semester" validate:"required,semester"`
	Type     string    `json:"type" validate:"required"`
	Filename string    `json:"file" validate:"required,csvfile"`
	Content  io.Reader `json:"-"`
}

func (cu *CSVUpload) Validate(validate *validator.Validate) error {
	cu.Semester = core.CleanString(cu.Semester)
	cu.Type = core.CleanString(cu.Type, true /* lower */)
	cu.Filename = core.CleanString(cu.Filename)
	if cu.Type == "" {
		cu.Type = TypeSemesterResults
	}
	return validate.Struct(cu)
}

// Response is returned by the backend after processing a CSV upload.
type Response struct {
	Success          bool    `json:"success" yaml:"success"`
	RecordsProcessed *int    `json:"recordsProcessed,omitempty" yaml:"recordsProcessed,omitempty"`
	Message          *string `json:"message,omitempty" yaml:"message,omitempty"`
}
