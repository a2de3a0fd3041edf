package student

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

var (
	// errors
	ErrNoChanges = errors.New("no changes detected")
	errMissingID = errors.New("student ID is missing")
)

type (
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
		UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
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

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	id = core.CleanString(id)
	if id == "" {
		return Student{}, core.NewValidationError(errMissingID, core.FieldError{Field: "id", Error: errMissingID.Error()})
	}
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.CreateStudent(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	id = core.CleanString(id)
	if id == "" {
		return Student{}, core.NewValidationError(errMissingID, core.FieldError{Field: "id", Error: errMissingID.Error()})
	}
	if us.IsEmpty() {
		return Student{}, ErrNoChanges
	}
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.UpdateStudent(ctx, id, us)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	id = core.CleanString(id)
	if id == "" {
		return core.NewValidationError(errMissingID, core.FieldError{Field: "id", Error: errMissingID.Error()})
	}
	return svc.repo.DeleteStudent(ctx, id)
}
