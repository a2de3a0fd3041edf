package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	type upload struct {
		Semester string `json:"semester" validate:"required,semester"`
		File     string `json:"file" validate:"required,csvfile"`
	}

	tests := []struct {
		name       string
		in         upload
		wantFields map[string]string
	}{
		{
			name: "valid",
			in:   upload{Semester: "2023-Fall_A", File: "Results.CSV"},
		},
		{
			name: "required",
			in:   upload{},
			wantFields: map[string]string{
				"semester": "this field is required",
				"file":     "this field is required",
			},
		},
		{
			name: "custom tags",
			in:   upload{Semester: "Fall/2024", File: "results.txt"},
			wantFields: map[string]string{
				"semester": "only letters, digits, spaces, underscores and dashes are allowed",
				"file":     "only .csv files can be uploaded",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateValidationErrors(validate.Struct(tt.in), translator)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantFields, vErr.FieldMap())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(errInvalidInput,
		FieldError{Field: "email", Error: "this field is required"},
		FieldError{Field: "year", Error: "year must be 1 or greater"},
	)
	assert.Equal(t, "invalid input: email: this field is required; year: year must be 1 or greater", err.Error())
	assert.Equal(t, "invalid input", NewValidationError(errInvalidInput).Error())

	other := errors.New("boom")
	assert.Equal(t, other, TranslateValidationErrors(other, nil))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanString("  Jane Doe\t"))
	assert.Equal(t, "jane@examcell.test", CleanString(" Jane@Examcell.TEST ", true))
	assert.Nil(t, CleanStringPtr(nil))
	s := " x "
	assert.Equal(t, "x", *CleanStringPtr(&s))
}
