package report

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
)

var errDown = errors.New("service unavailable")

type repoMock struct {
	students   []student.Student
	results    []result.Result
	studentErr error
	resultErr  error
	semester   string
}

func (repo *repoMock) GetAdminAnalytics(context.Context) (AnalyticsStats, error) {
	return AnalyticsStats{TotalStudents: len(repo.students)}, repo.studentErr
}

func (repo *repoMock) GetSemesterReportHTML(_ context.Context, semester string) (string, error) {
	repo.semester = semester
	return "<h1>" + semester + "</h1>", nil
}

func (repo *repoMock) QueryAllStudents(context.Context) ([]student.Student, error) {
	return repo.students, repo.studentErr
}

func (repo *repoMock) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	if repo.studentErr != nil {
		return student.Student{}, repo.studentErr
	}
	for _, std := range repo.students {
		if std.ID == id {
			return std, nil
		}
	}
	return student.Student{}, errors.New("Student not found with id: " + id)
}

func (repo *repoMock) CreateStudent(context.Context, student.NewStudent) (student.Student, error) {
	panic("not implemented")
}

func (repo *repoMock) UpdateStudent(context.Context, string, student.UpdateStudent) (student.Student, error) {
	panic("not implemented")
}

func (repo *repoMock) DeleteStudent(context.Context, string) error {
	panic("not implemented")
}

func (repo *repoMock) QueryAllResults(context.Context) ([]result.Result, error) {
	return repo.results, repo.resultErr
}

func (repo *repoMock) QueryResultsByStudent(_ context.Context, id string) ([]result.Result, error) {
	if repo.resultErr != nil {
		return nil, repo.resultErr
	}
	var results []result.Result
	for _, res := range repo.results {
		if res.StudentID == id {
			results = append(results, res)
		}
	}
	return results, nil
}

func (repo *repoMock) QueryResultsBySemester(context.Context, string) ([]result.Result, error) {
	panic("not implemented")
}

func (repo *repoMock) CreateResult(context.Context, result.NewResult) (result.Result, error) {
	panic("not implemented")
}

func (repo *repoMock) UpdateResult(context.Context, int64, result.UpdateResult) (result.Result, error) {
	panic("not implemented")
}

func (repo *repoMock) DeleteResult(context.Context, int64) error {
	panic("not implemented")
}

func newService() (*Service, *repoMock) {
	repo := &repoMock{
		students: []student.Student{
			{ID: "STU001", Name: "Jane Doe"},
			{ID: "STU002", Name: "John Smith"},
		},
		results: []result.Result{
			{ID: 1, StudentID: "STU001", SubjectCode: "CS101", Marks: 85},
			{ID: 2, StudentID: "STU999", SubjectCode: "CS101", Marks: 30},
			{ID: 3, StudentID: "STU001", SubjectCode: "MA101", Marks: 60},
		},
	}
	return NewService(repo, repo, repo), repo
}

func TestService_ResultsBoard(t *testing.T) {
	svc, _ := newService()
	rows, err := svc.ResultsBoard(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.StudentName
	}
	assert.Equal(t, []string{"Jane Doe", "Unknown", "Jane Doe"}, names)
	assert.Equal(t, int64(2), rows[1].ID)

	t.Run("any failure fails the board", func(t *testing.T) {
		svc, repo := newService()
		repo.studentErr = errDown
		_, err := svc.ResultsBoard(context.Background())
		assert.EqualError(t, err, "querying students: service unavailable")
	})

	t.Run("no results", func(t *testing.T) {
		svc, repo := newService()
		repo.results = nil
		rows, err := svc.ResultsBoard(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestService_StudentOverview(t *testing.T) {
	ctx := context.Background()

	svc, _ := newService()
	overview, err := svc.StudentOverview(ctx, "STU001")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", overview.Student.Name)
	assert.Len(t, overview.Results, 2)

	overview, err = svc.StudentOverview(ctx, "STU002")
	require.NoError(t, err)
	assert.NotNil(t, overview.Results)
	assert.Empty(t, overview.Results)

	_, err = svc.StudentOverview(ctx, "STU404")
	assert.EqualError(t, err, "getting student: Student not found with id: STU404")

	svc, repo := newService()
	repo.resultErr = errDown
	_, err = svc.StudentOverview(ctx, "STU001")
	assert.Equal(t, errDown, errors.Cause(err))
}

func TestService_SemesterHTML(t *testing.T) {
	svc, repo := newService()

	_, err := svc.SemesterHTML(context.Background(), "  ")
	assert.IsType(t, &core.ValidationError{}, err)
	assert.Empty(t, repo.semester)

	html, err := svc.SemesterHTML(context.Background(), " Fall 2024 ")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Fall 2024</h1>", html)
	assert.Equal(t, "Fall 2024", repo.semester)
}

func TestService_Analytics(t *testing.T) {
	svc, repo := newService()
	stats, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)

	repo.studentErr = errDown
	_, err = svc.Analytics(context.Background())
	assert.EqualError(t, err, "getting analytics: service unavailable")
}
