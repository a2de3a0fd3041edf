package subject

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

var (
	// errors
	ErrNoChanges   = errors.New("no changes detected")
	errMissingCode = errors.New("subject code is missing")
)

type (
	Repository interface {
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByCode(ctx context.Context, code string) (Subject, error)
		CreateSubject(ctx context.Context, ns NewSubject) (Subject, error)
		UpdateSubject(ctx context.Context, code string, us UpdateSubject) (Subject, error)
		DeleteSubject(ctx context.Context, code string) error
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

func missingCode() error {
	return core.NewValidationError(errMissingCode, core.FieldError{Field: "code", Error: errMissingCode.Error()})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	subjects, err := svc.repo.QueryAllSubjects(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (svc *Service) GetByCode(ctx context.Context, code string) (Subject, error) {
	if code = core.CleanString(code); code == "" {
		return Subject{}, missingCode()
	}
	return svc.repo.GetSubjectByCode(ctx, code)
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Subject{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.CreateSubject(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, code string, us UpdateSubject) (Subject, error) {
	if code = core.CleanString(code); code == "" {
		return Subject{}, missingCode()
	}
	if us.IsEmpty() {
		return Subject{}, ErrNoChanges
	}
	if err := us.Validate(svc.validate); err != nil {
		return Subject{}, core.TranslateValidationErrors(err, svc.translator)
	}
	return svc.repo.UpdateSubject(ctx, code, us)
}

func (svc *Service) Delete(ctx context.Context, code string) error {
	if code = core.CleanString(code); code == "" {
		return missingCode()
	}
	return svc.repo.DeleteSubject(ctx, code)
}
