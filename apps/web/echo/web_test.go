package echoweb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	echoweb "github.com/trezcool/muziki/apps/web/echo"
	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
	inmemdb "github.com/trezcool/muziki/storage/database/inmem"
	testutil "github.com/trezcool/muziki/tests"
)

var (
	studentRepo school.StudentRepository
	teacherRepo school.TeacherRepository
	adminRepo   school.AdminRepository
	courseRepo  school.CourseRepository
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (echoweb.Server, *inmemdb.DB) {
	t.Helper()

	db := inmemdb.Open()
	studentRepo = inmemdb.NewStudentRepository(db)
	teacherRepo = inmemdb.NewTeacherRepository(db)
	adminRepo = inmemdb.NewAdminRepository(db)
	courseRepo = inmemdb.NewCourseRepository(db)

	conf := &core.Config{TestMode: true, SecretKey: "test-secret"}
	validate, translator := core.NewValidator()

	app := echoweb.NewServer(
		echoweb.Deps{
			Conf:           conf,
			Logger:         nopLogger{},
			Translator:     translator,
			StudentSvc:     school.NewStudentService(studentRepo, validate),
			TeacherSvc:     school.NewTeacherService(teacherRepo, validate),
			AdminSvc:       school.NewAdminService(adminRepo),
			CourseSvc:      school.NewCourseService(courseRepo, validate),
			DisableReqLogs: true,
		},
	)
	return app, db
}

// client carries session cookies across requests like a browser would.
type client struct {
	t       *testing.T
	app     http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, app http.Handler) *client {
	return &client{t: t, app: app, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var body string
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}

func (c *client) login(path, username, password string) *httptest.ResponseRecorder {
	return c.postForm(path, url.Values{"username": {username}, "password": {password}})
}

func Test_hello(t *testing.T) {
	app, _ := setup(t)
	c := newClient(t, app)

	rec := c.get("/hello")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, World!", rec.Body.String())
}

func Test_home(t *testing.T) {
	app, _ := setup(t)
	c := newClient(t, app)

	rec := c.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Muziki Music School")
}

func Test_studentRegistration(t *testing.T) {
	app, _ := setup(t)
	c := newClient(t, app)

	regForm := func(uname, pwd string) url.Values {
		return url.Values{
			"username":  {uname},
			"password":  {pwd},
			"firstname": {"Bob"},
			"lastname":  {"Miller"},
			"nickname":  {"bobby"},
		}
	}

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		wantBody string
		wantLoc  string
	}{
		{name: "missing username", form: regForm("", "s3cret"), wantCode: http.StatusOK, wantBody: "Username is required."},
		{name: "missing password", form: regForm("bob", ""), wantCode: http.StatusOK, wantBody: "Password is required."},
		{name: "ok", form: regForm("bob", "s3cret"), wantCode: http.StatusSeeOther, wantLoc: "/student/login"},
		{name: "duplicate username", form: regForm("bob", "s3cret"), wantCode: http.StatusOK, wantBody: "User bob is already registered."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.postForm("/student/register", tt.form)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func Test_studentLogin(t *testing.T) {
	app, _ := setup(t)
	testutil.CreateStudent(t, studentRepo, "bob", "s3cret", "Bob", "Miller", "bobby")

	tests := []struct {
		name     string
		username string
		password string
		wantCode int
		wantBody string
		wantLoc  string
	}{
		{name: "unknown username", username: "nope", password: "s3cret", wantCode: http.StatusOK, wantBody: "Incorrect username."},
		{name: "wrong password", username: "bob", password: "wrong", wantCode: http.StatusOK, wantBody: "Incorrect password."},
		{name: "ok", username: "bob", password: "s3cret", wantCode: http.StatusSeeOther, wantLoc: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, app)
			rec := c.login("/student/login", tt.username, tt.password)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func Test_teacherHome(t *testing.T) {
	app, db := setup(t)

	teacher := testutil.TeacherFx("jane", "Jane", "Doe", "jd")
	otherTeacher := testutil.TeacherFx("mark", "Mark", "Lee", "ml")
	piano := testutil.InstrumentFx("Piano")
	violin := testutil.InstrumentFx("Violin")
	beginner := testutil.CourseFx("Beginner", 100, 1, 10)
	advanced := testutil.CourseFx("Advanced", 200, 2, 10)
	alice := testutil.StudentFx("alice", "Alice", "Smith", "al")
	eve := testutil.StudentFx("eve", "Eve", "Jones", "evie")

	janeTeach := testutil.TeachFx()
	markTeach := testutil.TeachFx()
	aliceEnroll := testutil.EnrollFx()
	eveEnroll := testutil.EnrollFx()
	aliceLate := testutil.StudyFx(3, "15:00")
	aliceEarly := testutil.StudyFx(1, "10:00")
	eveStudy := testutil.StudyFx(3, "09:00")

	// fixtures carry no credentials; hash jane's password before seeding
	janePwd := "s3cret"
	setPassword(t, teacher.Value(), janePwd)

	testutil.Seed(t, db,
		teacher.With(janeTeach),
		otherTeacher.With(markTeach),
		piano.With(beginner.With(janeTeach, aliceEnroll)),
		violin.With(advanced.With(markTeach, eveEnroll)),
		alice.With(aliceEnroll, aliceLate, aliceEarly),
		eve.With(eveEnroll, eveStudy),
	)

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		c := newClient(t, app)
		rec := c.get("/teacher")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/teacher/login", rec.Header().Get("Location"))
	})

	t.Run("own schedule only, ordered by day then time", func(t *testing.T) {
		c := newClient(t, app)
		rec := c.login("/teacher/login", "jane", janePwd)
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		rec = c.get("/teacher")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Alice")
		assert.NotContains(t, body, "Eve") // other teacher's student
		assert.Less(t, strings.Index(body, "10:00"), strings.Index(body, "15:00"))
	})
}

func Test_adminCourseCreate(t *testing.T) {
	app, _ := setup(t)
	testutil.CreateAdmin(t, adminRepo, "admin", "123456", "admin")
	testutil.CreateInstrument(t, courseRepo, "Piano")

	courseForm := func(name, instrument string) url.Values {
		return url.Values{
			"name":        {name},
			"instrument":  {instrument},
			"price":       {"100"},
			"houspertime": {"2"},
			"numoftimes":  {"10"},
		}
	}

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		c := newClient(t, app)
		rec := c.postForm("/admin/course/create", courseForm("Beginner", "Piano"))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	c := newClient(t, app)
	rec := c.login("/admin/login", "admin", "123456")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	t.Run("unknown instrument is rejected", func(t *testing.T) {
		rec := c.postForm("/admin/course/create", courseForm("Beginner", "Flute"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Instrument Flute does not exist.")

		rows, err := courseRepo.QueryAllCourses(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, rows) // nothing inserted
	})

	t.Run("ok", func(t *testing.T) {
		rec := c.postForm("/admin/course/create", courseForm("Beginner", "Piano"))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/courses", rec.Header().Get("Location"))

		rec = c.get("/admin/courses")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Beginner")
		assert.Contains(t, rec.Body.String(), "Piano")
	})
}

func Test_sessionLifecycle(t *testing.T) {
	app, _ := setup(t)
	testutil.CreateAdmin(t, adminRepo, "admin", "123456", "admin")
	testutil.CreateStudent(t, studentRepo, "bob", "s3cret", "Bob", "Miller", "bobby")

	t.Run("login replaces any prior session", func(t *testing.T) {
		c := newClient(t, app)
		rec := c.login("/admin/login", "admin", "123456")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		rec = c.get("/admin/students")
		assert.Equal(t, http.StatusOK, rec.Code)

		// logging in as a student logs the admin out
		rec = c.login("/student/login", "bob", "s3cret")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		rec = c.get("/admin/students")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("logout drops the whole session", func(t *testing.T) {
		c := newClient(t, app)
		rec := c.login("/admin/login", "admin", "123456")
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		rec = c.get("/student/logout") // any role's logout route works
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		rec = c.get("/admin/students")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})
}

func Test_studentRegisterThenLogin(t *testing.T) {
	app, _ := setup(t)
	c := newClient(t, app)

	rec := c.postForm("/student/register", url.Values{
		"username":  {"ann"},
		"password":  {"x"},
		"firstname": {"Ann"},
		"lastname":  {"A"},
		"nickname":  {"A"},
		"birthday":  {"2000-01-01"},
		"email":     {"a@a.com"},
		"telnum":    {"000"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/login", rec.Header().Get("Location"))

	rec = c.login("/student/login", "ann", "x")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// a session cookie was issued and the row exists
	_, ok := c.cookies["session"]
	assert.True(t, ok, "missing session cookie")
	st, err := studentRepo.GetStudentByUsername(context.Background(), "ann")
	assert.NoError(t, err)
	assert.Equal(t, "Ann", st.FirstName)
}

func Test_courseCatalog(t *testing.T) {
	app, db := setup(t)

	teacher := testutil.TeacherFx("jane", "Jane", "Doe", "jd")
	piano := testutil.InstrumentFx("Piano")
	beginner := testutil.CourseFx("Beginner", 100, 1, 10)
	teach := testutil.TeachFx()

	testutil.Seed(t, db,
		teacher.With(teach),
		piano.With(beginner.With(teach)),
	)

	c := newClient(t, app)
	rec := c.get("/course")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Beginner")
	assert.Contains(t, body, "Piano")
	assert.Contains(t, body, "Jane")
}

func Test_adminSchedules(t *testing.T) {
	app, db := setup(t)
	testutil.CreateAdmin(t, adminRepo, "admin", "123456", "admin")

	teacher := testutil.TeacherFx("jane", "Jane", "Doe", "jd")
	piano := testutil.InstrumentFx("Piano")
	beginner := testutil.CourseFx("Beginner", 100, 1, 10)
	alice := testutil.StudentFx("alice", "Alice", "Smith", "al")
	// enrolled but unscheduled student: dropped by the inner join
	eve := testutil.StudentFx("eve", "Eve", "Jones", "evie")

	teach := testutil.TeachFx()
	aliceEnroll := testutil.EnrollFx()
	eveEnroll := testutil.EnrollFx()
	study := testutil.StudyFx(2, "11:00")

	testutil.Seed(t, db,
		teacher.With(teach),
		piano.With(beginner.With(teach, aliceEnroll, eveEnroll)),
		alice.With(aliceEnroll, study),
		eve.With(eveEnroll),
	)

	c := newClient(t, app)
	rec := c.login("/admin/login", "admin", "123456")
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.get("/admin/schedules")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Alice")
	assert.NotContains(t, body, "Eve")
}

func setPassword(t *testing.T, tch *school.Teacher, pwd string) {
	t.Helper()
	if err := tch.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
}
