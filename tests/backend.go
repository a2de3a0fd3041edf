package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
	"github.com/Sky-walkerX/Examcell/core/subject"
	"github.com/Sky-walkerX/Examcell/core/upload"
)

// Seeded accounts and records
const (
	AdminID         = "ADM001"
	AdminEmail      = "admin@examcell.test"
	AdminPassword   = "admin-secret"
	StudentID       = "STU001"
	StudentEmail    = "jane@examcell.test"
	StudentPassword = "student-secret"
	StudentName     = "Jane Doe"
	SubjectCode     = "CS101"
	Semester        = "Fall 2024"
)

type account struct {
	core.Identity
	passwordHash []byte
}

// Backend is an in-memory stand-in for the Examcell API, served under /api.
type Backend struct {
	server     *httptest.Server
	app        *echo.Echo
	validate   *validator.Validate
	translator ut.Translator
	signingKey []byte
	tokenTTL   time.Duration
	hits       int64

	mu       sync.RWMutex
	accounts map[string]account // by email
	students map[string]student.Student
	subjects map[string]subject.Subject
	results  map[int64]result.Result
	uploads  []upload.Upload
	resultPK int64
}

// NewBackend starts a seeded Backend; it is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		app:        echo.New(),
		signingKey: []byte(uuid.New().String()),
		tokenTTL:   time.Hour,
		accounts:   make(map[string]account),
		students:   make(map[string]student.Student),
		subjects:   make(map[string]subject.Subject),
		results:    make(map[int64]result.Result),
	}
	b.validate, b.translator = core.NewValidator()
	b.seed(t)
	b.setup()

	b.server = httptest.NewServer(b.app)
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) setup() {
	b.app.HideBanner = true
	b.app.HidePort = true
	b.app.Logger.SetLevel(log.OFF)
	b.app.HTTPErrorHandler = b.errorHandler
	b.app.Pre(middleware.RemoveTrailingSlash())
	b.app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			atomic.AddInt64(&b.hits, 1)
			return next(ctx)
		}
	})

	api := b.app.Group("/api")
	api.POST("/auth/login", b.login)

	jwt := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    b.signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(claims),
	})
	authed := api.Group("", jwt)
	admin := adminMiddleware()

	authed.GET("/students", b.studentQuery, admin)
	authed.POST("/students", b.studentCreate, admin)
	authed.GET("/students/:id", b.studentRetrieve, selfOrAdminMiddleware("id"))
	authed.PUT("/students/:id", b.studentUpdate, admin)
	authed.DELETE("/students/:id", b.studentDestroy, admin)

	authed.GET("/results", b.resultQuery, admin)
	authed.POST("/results", b.resultCreate, admin)
	authed.GET("/results/student/:id", b.resultQueryByStudent, selfOrAdminMiddleware("id"))
	authed.GET("/results/semester/:semester", b.resultQueryBySemester, admin)
	authed.PUT("/results/:id", b.resultUpdate, admin)
	authed.DELETE("/results/:id", b.resultDestroy, admin)

	authed.GET("/subjects", b.subjectQuery)
	authed.POST("/subjects", b.subjectCreate, admin)
	authed.GET("/subjects/:code", b.subjectRetrieve)
	authed.PUT("/subjects/:code", b.subjectUpdate, admin)
	authed.DELETE("/subjects/:code", b.subjectDestroy, admin)

	authed.GET("/uploads", b.uploadQuery, admin)
	authed.POST("/uploads/results/csv", b.uploadResultsCSV, admin)

	authed.GET("/analytics/admin", b.adminAnalytics, admin)
	authed.GET("/reports/semester/:semester", b.semesterReport, admin)
}

func (b *Backend) seed(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()

	b.addAccount(t, core.Identity{ID: AdminID, Email: AdminEmail, Name: "Exam Cell", Role: core.RoleAdmin}, AdminPassword)
	b.addAccount(t, core.Identity{ID: StudentID, Email: StudentEmail, Name: StudentName, Role: core.RoleStudent}, StudentPassword)

	b.students[StudentID] = student.Student{
		ID:         StudentID,
		Name:       StudentName,
		Email:      StudentEmail,
		Department: "Computer Science",
		Year:       2,
		GPA:        3.6,
		Status:     student.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.subjects[SubjectCode] = subject.Subject{
		Code:       SubjectCode,
		Name:       "Introduction to Programming",
		Department: "Computer Science",
		Credits:    4,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.resultPK++
	b.results[b.resultPK] = result.Result{
		ID:          b.resultPK,
		StudentID:   StudentID,
		Semester:    Semester,
		SubjectCode: SubjectCode,
		SubjectName: "Introduction to Programming",
		Marks:       85,
		Grade:       "A",
		Status:      resultStatus(85),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *Backend) addAccount(t *testing.T, id core.Identity, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password failed: %v", err)
	}
	b.accounts[id.Email] = account{Identity: id, passwordHash: hash}
}

// URL is the API base URL, including the /api prefix.
func (b *Backend) URL() string {
	return b.server.URL + "/api"
}

// Hits returns the number of requests received so far.
func (b *Backend) Hits() int {
	return int(atomic.LoadInt64(&b.hits))
}

// Token signs a token for a seeded account.
func (b *Backend) Token(t *testing.T, email string) string {
	t.Helper()
	b.mu.RLock()
	acc, ok := b.accounts[email]
	b.mu.RUnlock()
	if !ok {
		t.Fatalf("Token() unknown account %q", email)
	}
	token, err := b.generateToken(acc.Identity, time.Now())
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	return token
}

// SetTokenTTL changes the lifetime of the tokens issued from now on.
func (b *Backend) SetTokenTTL(ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokenTTL = ttl
}

// Results returns a copy of the stored results of a student.
func (b *Backend) Results(studentID string) []result.Result {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queryResults(func(res result.Result) bool { return res.StudentID == studentID })
}

// ServeHTTP lets the Backend be used with httptest.NewRecorder.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.app.ServeHTTP(w, r)
}
