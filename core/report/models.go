package report

import (
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
	"github.com/Sky-walkerX/Examcell/core/upload"
)

// AnalyticsStats is the admin dashboard summary computed by the backend.
type AnalyticsStats struct {
	TotalStudents           int                `json:"totalStudents" yaml:"totalStudents"`
	ActiveStudents          int                `json:"activeStudents" yaml:"activeStudents"`
	TotalSubjects           int                `json:"totalSubjects" yaml:"totalSubjects"`
	TotalResultsEntered     int                `json:"totalResultsEntered" yaml:"totalResultsEntered"`
	StudentsPerDepartment   map[string]int     `json:"studentsPerDepartment" yaml:"studentsPerDepartment"`
	AverageGPAPerDepartment map[string]float64 `json:"averageGpaPerDepartment" yaml:"averageGpaPerDepartment"`
	ResultsPerSemester      map[string]int     `json:"resultsPerSemester" yaml:"resultsPerSemester"`
	RecentUploads           []upload.Upload    `json:"recentUploads" yaml:"recentUploads"`
}

// StudentOverview is what a student sees on their dashboard.
type StudentOverview struct {
	Student student.Student `json:"student" yaml:"student"`
	Results []result.Result `json:"results" yaml:"results"`
}

// BoardRow is a Result along with the name of its Student.
type BoardRow struct {
	result.Result `yaml:",inline"`
	StudentName   string `json:"studentName" yaml:"studentName"`
}
