package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Sky-walkerX/Examcell/core"
)

// Statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Student struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Email        string    `json:"email" yaml:"email"`
	Department   string    `json:"department" yaml:"department"`
	Year         int       `json:"year" yaml:"year"`
	GPA          float64   `json:"gpa" yaml:"gpa"`
	Status       string    `json:"status" yaml:"status"`
	ProfileImage *string   `json:"profileImage" yaml:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

// NewStudent contains information needed to create a new Student.
// GPA and status are set by the backend.
type NewStudent struct {
	ID           string  `json:"id" validate:"required,max=50"`
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Department   string  `json:"department" validate:"required"`
	Year         int     `json:"year" validate:"required,min=1"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

func (ns *NewStudent) Clean() {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Department = core.CleanString(ns.Department)
	ns.ProfileImage = core.CleanStringPtr(ns.ProfileImage)
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Clean()
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched by the backend.
type UpdateStudent struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Department   *string `json:"department,omitempty"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,min=1"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

func (us *UpdateStudent) Clean() {
	us.Name = core.CleanStringPtr(us.Name)
	us.Email = core.CleanStringPtr(us.Email, true /* lower */)
	us.Department = core.CleanStringPtr(us.Department)
	us.Status = core.CleanStringPtr(us.Status)
	us.ProfileImage = core.CleanStringPtr(us.ProfileImage)
}

func (us *UpdateStudent) IsEmpty() bool {
	return us.Name == nil && us.Email == nil && us.Department == nil &&
		us.Year == nil && us.Status == nil && us.ProfileImage == nil
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Clean()
	return validate.Struct(us)
}
