package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core/school"
)

type adminWeb struct {
	svc        *school.AdminService
	studentSvc *school.StudentService
	teacherSvc *school.TeacherService
	courseSvc  *school.CourseService
	sess       *sessionStore
}

func registerAdminWeb(
	app *echo.Echo,
	sess *sessionStore,
	svc *school.AdminService,
	studentSvc *school.StudentService,
	teacherSvc *school.TeacherService,
	courseSvc *school.CourseService,
) {
	w := adminWeb{svc: svc, studentSvc: studentSvc, teacherSvc: teacherSvc, courseSvc: courseSvc, sess: sess}

	g := app.Group("/admin", loadAdmin(sess, svc))
	g.GET("/login", w.loginForm)
	g.POST("/login", w.login)
	g.GET("/logout", w.logout)

	gated := g.Group("", loginRequired(ctxAdminKey, "/admin/login"))
	gated.GET("", w.home)
	gated.GET("/", w.home)
	gated.GET("/students", w.students)
	gated.GET("/teachers", w.teachers)
	gated.GET("/courses", w.courses)
	gated.GET("/schedules", w.schedules)
	gated.GET("/course/create", w.createCourseForm)
	gated.POST("/course/create", w.createCourse)
}

func (w adminWeb) loginForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "login.html", loginData("Admin", "/admin/login", "", ""))
}

func (w adminWeb) login(ctx echo.Context) error {
	username := ctx.FormValue("username")

	a, err := w.svc.Login(ctx.Request().Context(), username, ctx.FormValue("password"))
	if err != nil {
		if isLoginFailure(err) {
			return ctx.Render(http.StatusOK, "login.html", loginData("Admin", "/admin/login", err.Error(), username))
		}
		return errors.Wrap(err, "logging admin in")
	}

	if err = w.sess.logIn(ctx, adminSessionKey, a.ID); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin")
}

func (w adminWeb) logout(ctx echo.Context) error {
	if err := w.sess.logOut(ctx); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (w adminWeb) home(ctx echo.Context) error {
	a, _ := getContextAdmin(ctx)
	return ctx.Render(http.StatusOK, "admin_home.html", echo.Map{"Admin": a})
}

func (w adminWeb) students(ctx echo.Context) error {
	students, err := w.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.Render(http.StatusOK, "admin_students.html", echo.Map{"Students": students})
}

func (w adminWeb) teachers(ctx echo.Context) error {
	teachers, err := w.teacherSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.Render(http.StatusOK, "admin_teachers.html", echo.Map{"Teachers": teachers})
}

func (w adminWeb) courses(ctx echo.Context) error {
	courses, err := w.courseSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.Render(http.StatusOK, "admin_courses.html", echo.Map{"Courses": courses})
}

// schedules lists every study slot across all teachers.
func (w adminWeb) schedules(ctx echo.Context) error {
	rows, err := w.courseSvc.AllSchedules(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	return ctx.Render(http.StatusOK, "admin_schedules.html", echo.Map{"Schedule": rows})
}

func (w adminWeb) createCourseForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "course_create.html", echo.Map{"Error": "", "Form": school.NewCourse{}})
}

func (w adminWeb) createCourse(ctx echo.Context) error {
	var data school.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	// validation failures, an unknown instrument included, surface as a 400 page
	if _, err := w.courseSvc.Create(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin/courses")
}
