package result

import (
	"context"
	"fmt"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

var (
	// errors
	ErrNoRows           = errors.New("enter subject code, marks and grade for at least one row")
	errMissingStudentID = errors.New("student ID is missing")
	errMissingSemester  = errors.New("semester is missing")
	errInvalidID        = errors.New("result ID must be positive")
)

type (
	Repository interface {
		QueryAllResults(ctx context.Context) ([]Result, error)
		QueryResultsByStudent(ctx context.Context, studentID string) ([]Result, error)
		QueryResultsBySemester(ctx context.Context, semester string) ([]Result, error)
		CreateResult(ctx context.Context, nr NewResult) (Result, error)
		UpdateResult(ctx context.Context, id int64, ur UpdateResult) (Result, error)
		DeleteResult(ctx context.Context, id int64) error
	}

	Service struct {
		repo       Repository
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{repo: repo, validate: validate, translator: translator}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Result, error) {
	results, err := svc.repo.QueryAllResults(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying results")
	}
	return results, nil
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string) ([]Result, error) {
	studentID = core.CleanString(studentID)
	if studentID == "" {
		return nil, core.NewValidationError(errMissingStudentID, core.FieldError{Field: "studentId", Error: errMissingStudentID.Error()})
	}
	return svc.repo.QueryResultsByStudent(ctx, studentID)
}

func (svc *Service) QueryBySemester(ctx context.Context, semester string) ([]Result, error) {
	semester = core.CleanString(semester)
	if semester == "" {
		return nil, core.NewValidationError(errMissingSemester, core.FieldError{Field: "semester", Error: errMissingSemester.Error()})
	}
	return svc.repo.QueryResultsBySemester(ctx, semester)
}

func (svc *Service) Create(ctx context.Context, nr NewResult) (Result, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Result{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.CreateResult(ctx, nr)
}

func (svc *Service) Update(ctx context.Context, id int64, ur UpdateResult) (Result, error) {
	if id <= 0 {
		return Result{}, core.NewValidationError(errInvalidID, core.FieldError{Field: "id", Error: errInvalidID.Error()})
	}
	if err := ur.Validate(svc.validate); err != nil {
		return Result{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.UpdateResult(ctx, id, ur)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return core.NewValidationError(errInvalidID, core.FieldError{Field: "id", Error: errInvalidID.Error()})
	}
	return svc.repo.DeleteResult(ctx, id)
}

// CreateMany creates one Result per complete Row for the given student & semester.
// Rows are submitted one after the other; a failing row does not stop the others.
func (svc *Service) CreateMany(ctx context.Context, studentID, semester string, rows []Row) (BatchReport, error) {
	studentID = core.CleanString(studentID)
	semester = core.CleanString(semester)
	var flds []core.FieldError
	if studentID == "" {
		flds = append(flds, core.FieldError{Field: "studentId", Error: errMissingStudentID.Error()})
	}
	if semester == "" {
		flds = append(flds, core.FieldError{Field: "semester", Error: errMissingSemester.Error()})
	}
	if len(flds) > 0 {
		return BatchReport{}, core.NewValidationError(errors.New("missing student or semester"), flds...)
	}

	complete := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.complete() {
			complete = append(complete, row)
		}
	}
	if len(complete) == 0 {
		return BatchReport{}, ErrNoRows
	}

	report := BatchReport{Submitted: len(complete)}
	for _, row := range complete {
		code := core.CleanString(row.SubjectCode)
		marks, err := strconv.ParseFloat(core.CleanString(row.Marks), 64)
		if err != nil {
			report.Errors = append(report.Errors, RowError{SubjectCode: code, Error: "marks must be a valid number"})
			continue
		}
		if marks < 0 || marks > 100 {
			report.Errors = append(report.Errors, RowError{SubjectCode: code, Error: "marks must be between 0 and 100"})
			continue
		}

		res, err := svc.Create(ctx, NewResult{
			StudentID:   studentID,
			Semester:    semester,
			SubjectCode: code,
			SubjectName: row.SubjectName,
			Marks:       marks,
			Grade:       row.Grade,
		})
		if err != nil {
			report.Errors = append(report.Errors, RowError{SubjectCode: code, Error: err.Error()})
			continue
		}
		report.Saved = append(report.Saved, res)
	}
	return report, nil
}

// Summary returns a one line description of the report.
func (r BatchReport) Summary() string {
	if len(r.Errors) == 0 {
		return fmt.Sprintf("saved %d/%d result(s)", len(r.Saved), r.Submitted)
	}
	return fmt.Sprintf("saved %d/%d result(s); %d error(s), first: %s: %s",
		len(r.Saved), r.Submitted, len(r.Errors), r.Errors[0].SubjectCode, r.Errors[0].Error)
}
