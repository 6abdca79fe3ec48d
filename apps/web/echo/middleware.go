package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/muziki/core/school"
)

// context keys for the per-request actor slots
const (
	ctxStudentKey = "student"
	ctxTeacherKey = "teacher"
	ctxAdminKey   = "admin"
)

// loadStudent fetches the session's student fresh from storage on every
// request in the group; the slot stays empty for anonymous requests.
func loadStudent(sess *sessionStore, svc *school.StudentService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if id, ok := sess.actorID(ctx, studentSessionKey); ok {
				if st, err := svc.GetByID(ctx.Request().Context(), id); err == nil {
					ctx.Set(ctxStudentKey, st)
				}
			}
			return next(ctx)
		}
	}
}

func loadTeacher(sess *sessionStore, svc *school.TeacherService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if id, ok := sess.actorID(ctx, teacherSessionKey); ok {
				if t, err := svc.GetByID(ctx.Request().Context(), id); err == nil {
					ctx.Set(ctxTeacherKey, t)
				}
			}
			return next(ctx)
		}
	}
}

func loadAdmin(sess *sessionStore, svc *school.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if id, ok := sess.actorID(ctx, adminSessionKey); ok {
				if a, err := svc.GetByID(ctx.Request().Context(), id); err == nil {
					ctx.Set(ctxAdminKey, a)
				}
			}
			return next(ctx)
		}
	}
}

// loginRequired redirects anonymous requests to the role's login page
// instead of executing the wrapped handler.
func loginRequired(ctxKey, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Get(ctxKey) == nil {
				return ctx.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(ctx)
		}
	}
}

func getContextStudent(ctx echo.Context) (school.Student, bool) {
	st, ok := ctx.Get(ctxStudentKey).(school.Student)
	return st, ok
}

func getContextTeacher(ctx echo.Context) (school.Teacher, bool) {
	t, ok := ctx.Get(ctxTeacherKey).(school.Teacher)
	return t, ok
}

func getContextAdmin(ctx echo.Context) (school.Admin, bool) {
	a, ok := ctx.Get(ctxAdminKey).(school.Admin)
	return a, ok
}
