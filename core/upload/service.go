package upload

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

var errMissingContent = errors.New("file content is missing")

type (
	Repository interface {
		QueryRecentUploads(ctx context.Context, limit int) ([]Upload, error)
		UploadResultsCSV(ctx context.Context, cu CSVUpload) (Response, error)
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

// Recent returns the latest uploads; a non-positive limit falls back to DefaultRecentLimit.
func (svc *Service) Recent(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	uploads, err := svc.repo.QueryRecentUploads(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent uploads")
	}
	return uploads, nil
}

func (svc *Service) UploadCSV(ctx context.Context, cu CSVUpload) (Response, error) {
	if err := cu.Validate(svc.validate); err != nil {
		return Response{}, core.TranslateValidationErrors(err, svc.translator)
	}
	if cu.Content == nil {
		return Response{}, core.NewValidationError(errMissingContent, core.FieldError{Field: "file", Error: errMissingContent.Error()})
	}
	return svc.repo.UploadResultsCSV(ctx, cu)
}
