package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
)

type teacherWeb struct {
	svc       *school.TeacherService
	courseSvc *school.CourseService
	sess      *sessionStore
}

func registerTeacherWeb(app *echo.Echo, sess *sessionStore, svc *school.TeacherService, courseSvc *school.CourseService) {
	w := teacherWeb{svc: svc, courseSvc: courseSvc, sess: sess}

	g := app.Group("/teacher", loadTeacher(sess, svc))
	g.GET("/register", w.registerForm)
	g.POST("/register", w.register)
	g.GET("/login", w.loginForm)
	g.POST("/login", w.login)
	g.GET("/logout", w.logout)
	g.GET("", w.home, loginRequired(ctxTeacherKey, "/teacher/login"))
	g.GET("/", w.home, loginRequired(ctxTeacherKey, "/teacher/login"))
}

// home shows the logged-in teacher their own teaching schedule.
func (w teacherWeb) home(ctx echo.Context) error {
	t, _ := getContextTeacher(ctx)

	schedule, err := w.courseSvc.TeacherSchedule(ctx.Request().Context(), t.ID)
	if err != nil {
		return errors.Wrap(err, "querying teacher schedule")
	}
	return ctx.Render(http.StatusOK, "teacher_home.html", echo.Map{
		"Teacher":  t,
		"Schedule": schedule,
	})
}

func (w teacherWeb) registerForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "register.html", registrationData("Teacher", "/teacher/register", "", school.NewRegistration{}))
}

func (w teacherWeb) register(ctx echo.Context) error {
	var data school.NewRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}

	if _, err := w.svc.Register(ctx.Request().Context(), data); err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			return ctx.Render(http.StatusOK, "register.html", registrationData("Teacher", "/teacher/register", vErr.Error(), data))
		}
		return errors.Wrap(err, "registering teacher")
	}
	return ctx.Redirect(http.StatusSeeOther, "/teacher/login")
}

func (w teacherWeb) loginForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "login.html", loginData("Teacher", "/teacher/login", "", ""))
}

func (w teacherWeb) login(ctx echo.Context) error {
	username := ctx.FormValue("username")

	t, err := w.svc.Login(ctx.Request().Context(), username, ctx.FormValue("password"))
	if err != nil {
		if isLoginFailure(err) {
			return ctx.Render(http.StatusOK, "login.html", loginData("Teacher", "/teacher/login", err.Error(), username))
		}
		return errors.Wrap(err, "logging teacher in")
	}

	if err = w.sess.logIn(ctx, teacherSessionKey, t.ID); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/teacher")
}

func (w teacherWeb) logout(ctx echo.Context) error {
	if err := w.sess.logOut(ctx); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}
