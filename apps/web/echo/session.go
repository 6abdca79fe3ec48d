package echoweb

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
)

const sessionName = "session"

// session keys; one slot per role, at most one populated at a time
const (
	studentSessionKey = "student_id"
	teacherSessionKey = "teacher_id"
	adminSessionKey   = "admin_id"
)

// sessionStore wraps a signed-cookie store holding only role identifiers.
type sessionStore struct {
	store *sessions.CookieStore
}

func newSessionStore(conf *core.Config) *sessionStore {
	key := []byte(conf.SecretKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionStore{store: store}
}

// actorID returns the stored identifier for the given role, if any.
func (ss *sessionStore) actorID(ctx echo.Context, key string) (int, bool) {
	sess, _ := ss.store.Get(ctx.Request(), sessionName)
	id, ok := sess.Values[key].(int)
	return id, ok && id > 0
}

// logIn clears any prior session state and stores the role identifier, so
// logging in as one role logs the browser out of the others.
func (ss *sessionStore) logIn(ctx echo.Context, key string, id int) error {
	sess, _ := ss.store.Get(ctx.Request(), sessionName)
	sess.Values = make(map[interface{}]interface{})
	sess.Values[key] = id
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "saving session")
}

// logOut drops the whole session: every role is logged out at once.
func (ss *sessionStore) logOut(ctx echo.Context) error {
	sess, _ := ss.store.Get(ctx.Request(), sessionName)
	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "clearing session")
}
