package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sky-walkerX/Examcell/core"
)

type repoMock struct {
	limit    int
	uploaded *CSVUpload
}

func (repo *repoMock) QueryRecentUploads(_ context.Context, limit int) ([]Upload, error) {
	repo.limit = limit
	return []Upload{}, nil
}

func (repo *repoMock) UploadResultsCSV(_ context.Context, cu CSVUpload) (Response, error) {
	repo.uploaded = &cu
	return Response{Success: true}, nil
}

func newService() (*Service, *repoMock) {
	repo := new(repoMock)
	validate, translator := core.NewValidator()
	return NewService(repo, validate, translator), repo
}

func TestService_Recent(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{limit: -3, want: DefaultRecentLimit},
		{limit: 0, want: DefaultRecentLimit},
		{limit: 1, want: 1},
		{limit: 20, want: 20},
	}
	for _, tt := range tests {
		svc, repo := newService()
		_, err := svc.Recent(context.Background(), tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, repo.limit)
	}
}

func TestService_UploadCSV(t *testing.T) {
	content := strings.NewReader("studentId,subjectCode,subjectName,marks,grade\n")

	tests := []struct {
		name       string
		cu         CSVUpload
		wantFields map[string]string
	}{
		{
			name: "empty",
			wantFields: map[string]string{
				"semester": "this field is required",
				"file":     "this field is required",
			},
		},
		{
			name:       "not a csv",
			cu:         CSVUpload{Semester: "Fall 2024", Filename: "results.xlsx", Content: content},
			wantFields: map[string]string{"file": "only .csv files can be uploaded"},
		},
		{
			name:       "no content",
			cu:         CSVUpload{Semester: "Fall 2024", Filename: "results.csv"},
			wantFields: map[string]string{"file": "file content is missing"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			_, err := svc.UploadCSV(context.Background(), tt.cu)
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantFields, vErr.FieldMap())
			assert.Nil(t, repo.uploaded)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		svc, repo := newService()
		resp, err := svc.UploadCSV(context.Background(), CSVUpload{Semester: " Fall 2024 ", Filename: "Results.CSV", Content: content})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		require.NotNil(t, repo.uploaded)
		assert.Equal(t, "Fall 2024", repo.uploaded.Semester)
		assert.Equal(t, TypeSemesterResults, repo.uploaded.Type)
	})
}
