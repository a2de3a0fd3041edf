package subject

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sky-walkerX/Examcell/core"
)

type repoMock struct {
	Repository
	updated *UpdateSubject
	deleted string
}

func (repo *repoMock) CreateSubject(_ context.Context, ns NewSubject) (Subject, error) {
	return Subject{Code: ns.Code, Name: ns.Name, Department: ns.Department, Credits: ns.Credits}, nil
}

func (repo *repoMock) UpdateSubject(_ context.Context, code string, us UpdateSubject) (Subject, error) {
	repo.updated = &us
	return Subject{Code: code}, nil
}

func (repo *repoMock) DeleteSubject(_ context.Context, code string) error {
	repo.deleted = code
	return nil
}

func newService() (*Service, *repoMock) {
	repo := new(repoMock)
	validate, translator := core.NewValidator()
	return NewService(repo, validate, translator), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, NewSubject{Code: "CS101", Credits: -1})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, map[string]string{
		"name":       "this field is required",
		"department": "this field is required",
		"credits":    "credits must be 0 or greater",
	}, vErr.FieldMap())

	sub, err := svc.Create(ctx, NewSubject{Code: " MA101 ", Name: " Calculus ", Department: "Mathematics", Credits: 3})
	require.NoError(t, err)
	assert.Equal(t, Subject{Code: "MA101", Name: "Calculus", Department: "Mathematics", Credits: 3}, sub)
}

func TestService_Update(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "CS101", UpdateSubject{})
	assert.Equal(t, ErrNoChanges, err)

	_, err = svc.Update(ctx, "", UpdateSubject{})
	assert.IsType(t, &core.ValidationError{}, err)

	credits := 5
	_, err = svc.Update(ctx, "CS101", UpdateSubject{Credits: &credits})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 5, *repo.updated.Credits)
	assert.Nil(t, repo.updated.Name)
}

func TestService_Delete(t *testing.T) {
	svc, repo := newService()
	assert.IsType(t, &core.ValidationError{}, svc.Delete(context.Background(), "  "))
	require.NoError(t, svc.Delete(context.Background(), " CS101 "))
	assert.Equal(t, "CS101", repo.deleted)
}
