package report

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
)

var errMissingSemester = errors.New("semester is missing")

type (
	Repository interface {
		GetAdminAnalytics(ctx context.Context) (AnalyticsStats, error)
		GetSemesterReportHTML(ctx context.Context, semester string) (string, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
		results  result.Repository
	}
)

func NewService(repo Repository, students student.Repository, results result.Repository) *Service {
	return &Service{repo: repo, students: students, results: results}
}

func (svc *Service) Analytics(ctx context.Context) (AnalyticsStats, error) {
	stats, err := svc.repo.GetAdminAnalytics(ctx)
	if err != nil {
		return AnalyticsStats{}, errors.Wrap(err, "getting analytics")
	}
	return stats, nil
}

// SemesterHTML returns the HTML report of a semester, untouched.
func (svc *Service) SemesterHTML(ctx context.Context, semester string) (string, error) {
	if semester = core.CleanString(semester); semester == "" {
		return "", core.NewValidationError(errMissingSemester, core.FieldError{Field: "semester", Error: errMissingSemester.Error()})
	}
	return svc.repo.GetSemesterReportHTML(ctx, semester)
}

// StudentOverview fetches a Student and their Results concurrently.
func (svc *Service) StudentOverview(ctx context.Context, studentID string) (StudentOverview, error) {
	var overview StudentOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		std, err := svc.students.GetStudentByID(gctx, studentID)
		if err != nil {
			return errors.Wrap(err, "getting student")
		}
		overview.Student = std
		return nil
	})
	g.Go(func() error {
		results, err := svc.results.QueryResultsByStudent(gctx, studentID)
		if err != nil {
			return errors.Wrap(err, "querying student results")
		}
		overview.Results = results
		return nil
	})
	if err := g.Wait(); err != nil {
		return StudentOverview{}, err
	}
	if overview.Results == nil {
		overview.Results = []result.Result{}
	}
	return overview, nil
}

// ResultsBoard fetches all Results and Students concurrently and joins them on the student ID.
func (svc *Service) ResultsBoard(ctx context.Context) ([]BoardRow, error) {
	var (
		results  []result.Result
		students []student.Student
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		results, err = svc.results.QueryAllResults(gctx)
		return errors.Wrap(err, "querying results")
	})
	g.Go(func() (err error) {
		students, err = svc.students.QueryAllStudents(gctx)
		return errors.Wrap(err, "querying students")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(students))
	for _, std := range students {
		names[std.ID] = std.Name
	}
	rows := make([]BoardRow, 0, len(results))
	for _, res := range results {
		name, ok := names[res.StudentID]
		if !ok {
			name = "Unknown"
		}
		rows = append(rows, BoardRow{Result: res, StudentName: name})
	}
	return rows, nil
}
