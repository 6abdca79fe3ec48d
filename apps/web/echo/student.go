package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
)

type studentWeb struct {
	svc  *school.StudentService
	sess *sessionStore
}

func registerStudentWeb(app *echo.Echo, sess *sessionStore, svc *school.StudentService) {
	w := studentWeb{svc: svc, sess: sess}

	g := app.Group("/student", loadStudent(sess, svc))
	g.GET("/register", w.registerForm)
	g.POST("/register", w.register)
	g.GET("/login", w.loginForm)
	g.POST("/login", w.login)
	g.GET("/logout", w.logout)
}

func (w studentWeb) registerForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "register.html", registrationData("Student", "/student/register", "", school.NewRegistration{}))
}

func (w studentWeb) register(ctx echo.Context) error {
	var data school.NewRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}

	if _, err := w.svc.Register(ctx.Request().Context(), data); err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			// re-render the form with the first failing check's message
			return ctx.Render(http.StatusOK, "register.html", registrationData("Student", "/student/register", vErr.Error(), data))
		}
		return errors.Wrap(err, "registering student")
	}
	return ctx.Redirect(http.StatusSeeOther, "/student/login")
}

func (w studentWeb) loginForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "login.html", loginData("Student", "/student/login", "", ""))
}

func (w studentWeb) login(ctx echo.Context) error {
	username := ctx.FormValue("username")

	st, err := w.svc.Login(ctx.Request().Context(), username, ctx.FormValue("password"))
	if err != nil {
		if isLoginFailure(err) {
			return ctx.Render(http.StatusOK, "login.html", loginData("Student", "/student/login", err.Error(), username))
		}
		return errors.Wrap(err, "logging student in")
	}

	if err = w.sess.logIn(ctx, studentSessionKey, st.ID); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (w studentWeb) logout(ctx echo.Context) error {
	if err := w.sess.logOut(ctx); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func isLoginFailure(err error) bool {
	cause := errors.Cause(err)
	return cause == school.ErrIncorrectUsername || cause == school.ErrIncorrectPassword
}

func loginData(role, action, errMsg, username string) echo.Map {
	return echo.Map{
		"Title":    role + " Login",
		"Action":   action,
		"Error":    errMsg,
		"Username": username,
	}
}

func registrationData(role, action, errMsg string, form school.NewRegistration) echo.Map {
	return echo.Map{
		"Title":  role + " Registration",
		"Action": action,
		"Error":  errMsg,
		"Form":   form,
	}
}
