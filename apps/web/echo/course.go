package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core/school"
)

type courseWeb struct {
	svc *school.CourseService
}

// registerCourseWeb exposes the public course catalog; no login needed.
func registerCourseWeb(app *echo.Echo, svc *school.CourseService) {
	w := courseWeb{svc: svc}

	app.GET("/course", w.catalog)
	app.GET("/course/", w.catalog)
}

func (w courseWeb) catalog(ctx echo.Context) error {
	rows, err := w.svc.Catalog(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying course catalog")
	}
	return ctx.Render(http.StatusOK, "courses.html", echo.Map{"Courses": rows})
}
