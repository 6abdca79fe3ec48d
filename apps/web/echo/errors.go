package echoweb

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprintf("%v", origErr.Message)
		case validator.ValidationErrors:
			msgs := make([]string, 0, len(origErr))
			for _, vErr := range origErr {
				msgs = append(msgs, vErr.Field()+": "+vErr.Translate(translator))
			}
			code = http.StatusBadRequest
			message = strings.Join(msgs, "; ")
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)

			logger.Error(message, errors.Wrap(err, message), loggedActor(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			data := echo.Map{"Code": code, "Message": message}
			if rErr := ctx.Render(code, "error.html", data); rErr != nil {
				ctx.Echo().Logger.Error(rErr)
				_ = ctx.String(code, message)
			}
		}
	}
}

// loggedActor picks whichever actor is attached to the request, for
// crash-report enrichment.
func loggedActor(ctx echo.Context) interface{} {
	if a, ok := getContextAdmin(ctx); ok {
		return a
	}
	if t, ok := getContextTeacher(ctx); ok {
		return t
	}
	if st, ok := getContextStudent(ctx); ok {
		return st
	}
	return nil
}
