package testutil

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/report"
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
	"github.com/Sky-walkerX/Examcell/core/subject"
	"github.com/Sky-walkerX/Examcell/core/upload"
)

const passMark = 40

var csvColumns = []string{"studentId", "subjectCode", "subjectName", "marks", "grade"}

func resultStatus(marks float64) string {
	if marks >= passMark {
		return "Pass"
	}
	return "Fail"
}

// Students

func (b *Backend) studentQuery(ctx echo.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	students := make([]student.Student, 0, len(b.students))
	for _, stu := range b.students {
		students = append(students, stu)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return ctx.JSON(http.StatusOK, students)
}

func (b *Backend) studentCreate(ctx echo.Context) error {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.students[data.ID]; ok {
		return conflict("Student", data.ID)
	}
	now := time.Now().UTC()
	stu := student.Student{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Department:   data.Department,
		Year:         data.Year,
		Status:       student.StatusActive,
		ProfileImage: data.ProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.students[stu.ID] = stu
	return ctx.JSON(http.StatusCreated, stu)
}

func (b *Backend) studentRetrieve(ctx echo.Context) error {
	id := pathParam(ctx, "id")
	b.mu.RLock()
	defer b.mu.RUnlock()

	stu, ok := b.students[id]
	if !ok {
		return notFound("Student", id)
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (b *Backend) studentUpdate(ctx echo.Context) error {
	id := pathParam(ctx, "id")
	data := new(student.UpdateStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	stu, ok := b.students[id]
	if !ok {
		return notFound("Student", id)
	}
	if data.Name != nil {
		stu.Name = *data.Name
	}
	if data.Email != nil {
		stu.Email = *data.Email
	}
	if data.Department != nil {
		stu.Department = *data.Department
	}
	if data.Year != nil {
		stu.Year = *data.Year
	}
	if data.Status != nil {
		stu.Status = *data.Status
	}
	if data.ProfileImage != nil {
		stu.ProfileImage = data.ProfileImage
	}
	stu.UpdatedAt = time.Now().UTC()
	b.students[id] = stu
	return ctx.JSON(http.StatusOK, stu)
}

func (b *Backend) studentDestroy(ctx echo.Context) error {
	id := pathParam(ctx, "id")
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[id]; !ok {
		return notFound("Student", id)
	}
	delete(b.students, id)
	for pk, res := range b.results {
		if res.StudentID == id {
			delete(b.results, pk)
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Results

// queryResults must be called with b.mu held.
func (b *Backend) queryResults(keep func(result.Result) bool) []result.Result {
	results := make([]result.Result, 0)
	for _, res := range b.results {
		if keep(res) {
			results = append(results, res)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// createResult must be called with b.mu held.
func (b *Backend) createResult(nr result.NewResult) (result.Result, error) {
	if _, ok := b.students[nr.StudentID]; !ok {
		return result.Result{}, notFound("Student", nr.StudentID)
	}
	now := time.Now().UTC()
	b.resultPK++
	res := result.Result{
		ID:          b.resultPK,
		StudentID:   nr.StudentID,
		Semester:    nr.Semester,
		SubjectCode: nr.SubjectCode,
		SubjectName: nr.SubjectName,
		Marks:       nr.Marks,
		Grade:       nr.Grade,
		Status:      resultStatus(nr.Marks),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.results[res.ID] = res
	return res, nil
}

func (b *Backend) resultQuery(ctx echo.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ctx.JSON(http.StatusOK, b.queryResults(func(result.Result) bool { return true }))
}

func (b *Backend) resultQueryByStudent(ctx echo.Context) error {
	id := pathParam(ctx, "id")
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ctx.JSON(http.StatusOK, b.queryResults(func(res result.Result) bool { return res.StudentID == id }))
}

func (b *Backend) resultQueryBySemester(ctx echo.Context) error {
	semester := pathParam(ctx, "semester")
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ctx.JSON(http.StatusOK, b.queryResults(func(res result.Result) bool { return res.Semester == semester }))
}

func (b *Backend) resultCreate(ctx echo.Context) error {
	data := new(result.NewResult)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	res, err := b.createResult(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (b *Backend) resultUpdate(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest("invalid result id")
	}
	data := new(result.UpdateResult)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	res, ok := b.results[id]
	if !ok {
		return notFound("Result", ctx.Param("id"))
	}
	res.Marks = data.Marks
	res.Grade = data.Grade
	res.Status = resultStatus(data.Marks)
	res.UpdatedAt = time.Now().UTC()
	b.results[id] = res
	return ctx.JSON(http.StatusOK, res)
}

func (b *Backend) resultDestroy(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest("invalid result id")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.results[id]; !ok {
		return notFound("Result", ctx.Param("id"))
	}
	delete(b.results, id)
	return ctx.NoContent(http.StatusNoContent)
}

// Subjects

func (b *Backend) subjectQuery(ctx echo.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subjects := make([]subject.Subject, 0, len(b.subjects))
	for _, sub := range b.subjects {
		subjects = append(subjects, sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return ctx.JSON(http.StatusOK, subjects)
}

func (b *Backend) subjectRetrieve(ctx echo.Context) error {
	code := pathParam(ctx, "code")
	b.mu.RLock()
	defer b.mu.RUnlock()

	sub, ok := b.subjects[code]
	if !ok {
		return notFound("Subject", code)
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (b *Backend) subjectCreate(ctx echo.Context) error {
	data := new(subject.NewSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subjects[data.Code]; ok {
		return conflict("Subject", data.Code)
	}
	now := time.Now().UTC()
	sub := subject.Subject{
		Code:       data.Code,
		Name:       data.Name,
		Department: data.Department,
		Credits:    data.Credits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.subjects[sub.Code] = sub
	return ctx.JSON(http.StatusCreated, sub)
}

func (b *Backend) subjectUpdate(ctx echo.Context) error {
	code := pathParam(ctx, "code")
	data := new(subject.UpdateSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(b.validate); err != nil {
		return core.TranslateValidationErrors(err, b.translator)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subjects[code]
	if !ok {
		return notFound("Subject", code)
	}
	if data.Name != nil {
		sub.Name = *data.Name
	}
	if data.Department != nil {
		sub.Department = *data.Department
	}
	if data.Credits != nil {
		sub.Credits = *data.Credits
	}
	sub.UpdatedAt = time.Now().UTC()
	b.subjects[code] = sub
	return ctx.JSON(http.StatusOK, sub)
}

func (b *Backend) subjectDestroy(ctx echo.Context) error {
	code := pathParam(ctx, "code")
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subjects[code]; !ok {
		return notFound("Subject", code)
	}
	delete(b.subjects, code)
	return ctx.NoContent(http.StatusNoContent)
}

// Uploads

// recentUploads must be called with b.mu held.
func (b *Backend) recentUploads(limit int) []upload.Upload {
	if limit <= 0 {
		limit = upload.DefaultRecentLimit
	}
	uploads := make([]upload.Upload, 0, limit)
	for i := len(b.uploads) - 1; i >= 0 && len(uploads) < limit; i-- {
		uploads = append(uploads, b.uploads[i])
	}
	return uploads
}

func (b *Backend) uploadQuery(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ctx.JSON(http.StatusOK, b.recentUploads(limit))
}

func (b *Backend) uploadResultsCSV(ctx echo.Context) error {
	semester := strings.TrimSpace(ctx.FormValue("semester"))
	typ := strings.TrimSpace(ctx.FormValue("type"))
	if semester == "" {
		return badRequest("Semester is required")
	}
	if typ == "" {
		typ = upload.TypeSemesterResults
	}
	fh, err := ctx.FormFile("file")
	if err != nil {
		return badRequest("CSV file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readResultsCSV(f, semester)
	if err != nil {
		return badRequest("Invalid CSV format: " + err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var saved int
	for _, nr := range rows {
		if err := nr.Validate(b.validate); err != nil {
			continue
		}
		if _, err := b.createResult(nr); err != nil {
			continue
		}
		saved++
	}

	now := time.Now().UTC()
	b.uploads = append(b.uploads, upload.Upload{
		ID:        uuid.New(),
		Name:      fh.Filename,
		Type:      typ,
		Records:   saved,
		Status:    "Processed",
		CreatedAt: now,
		UpdatedAt: now,
	})

	msg := fmt.Sprintf("Processed %d of %d records", saved, len(rows))
	return ctx.JSON(http.StatusOK, upload.Response{Success: true, RecordsProcessed: &saved, Message: &msg})
}

// readResultsCSV reads a results CSV whose first line names the columns.
func readResultsCSV(r io.Reader, semester string) ([]result.NewResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range csvColumns {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("missing column %q", name)
		}
	}

	var rows []result.NewResult
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		marks, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["marks"]]), 64)
		if err != nil {
			marks = -1 // rejected by validation
		}
		rows = append(rows, result.NewResult{
			StudentID:   rec[cols["studentId"]],
			Semester:    semester,
			SubjectCode: rec[cols["subjectCode"]],
			SubjectName: rec[cols["subjectName"]],
			Marks:       marks,
			Grade:       rec[cols["grade"]],
		})
	}
	return rows, nil
}

// Reports

func (b *Backend) adminAnalytics(ctx echo.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := report.AnalyticsStats{
		TotalStudents:           len(b.students),
		TotalSubjects:           len(b.subjects),
		TotalResultsEntered:     len(b.results),
		StudentsPerDepartment:   make(map[string]int),
		AverageGPAPerDepartment: make(map[string]float64),
		ResultsPerSemester:      make(map[string]int),
		RecentUploads:           b.recentUploads(upload.DefaultRecentLimit),
	}
	gpaTotals := make(map[string]float64)
	for _, stu := range b.students {
		if stu.IsActive() {
			stats.ActiveStudents++
		}
		stats.StudentsPerDepartment[stu.Department]++
		gpaTotals[stu.Department] += stu.GPA
	}
	for dept, total := range gpaTotals {
		stats.AverageGPAPerDepartment[dept] = total / float64(stats.StudentsPerDepartment[dept])
	}
	for _, res := range b.results {
		stats.ResultsPerSemester[res.Semester]++
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (b *Backend) semesterReport(ctx echo.Context) error {
	semester := pathParam(ctx, "semester")
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><title>Semester Report</title></head><body>\n")
	fmt.Fprintf(&sb, "<h1>Semester Report: %s</h1>\n", html.EscapeString(semester))
	sb.WriteString("<table>\n<tr><th>Student</th><th>Subject</th><th>Marks</th><th>Grade</th></tr>\n")
	for _, res := range b.queryResults(func(res result.Result) bool { return res.Semester == semester }) {
		name := res.StudentID
		if stu, ok := b.students[res.StudentID]; ok {
			name = stu.Name
		}
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td><td>%.1f</td><td>%s</td></tr>\n",
			html.EscapeString(name), html.EscapeString(res.SubjectCode), res.Marks, html.EscapeString(res.Grade))
	}
	sb.WriteString("</table>\n</body></html>\n")
	return ctx.HTML(http.StatusOK, sb.String())
}
