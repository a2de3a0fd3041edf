package subject

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Sky-walkerX/Examcell/core"
)

type Subject struct {
	Code       string    `json:"code" yaml:"code"`
	Name       string    `json:"name" yaml:"name"`
	Department string    `json:"department" yaml:"department"`
	Credits    int       `json:"credits" yaml:"credits"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code       string `json:"code" validate:"required,max=20"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Credits    int    `json:"credits" validate:"min=0"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	ns.Department = core.CleanString(ns.Department)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
// The code itself cannot be changed.
type UpdateSubject struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Department *string `json:"department,omitempty"`
	Credits    *int    `json:"credits,omitempty" validate:"omitempty,min=0"`
}

func (us *UpdateSubject) IsEmpty() bool {
	return us.Name == nil && us.Department == nil && us.Credits == nil
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	us.Name = core.CleanStringPtr(us.Name)
	us.Department = core.CleanStringPtr(us.Department)
	return validate.Struct(us)
}
