package school_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
	inmemdb "github.com/trezcool/muziki/storage/database/inmem"
	testutil "github.com/trezcool/muziki/tests"
)

func newServices(t *testing.T) (*school.StudentService, *school.TeacherService, *school.AdminService, *school.CourseService, *inmemdb.DB) {
	t.Helper()

	db := inmemdb.Open()
	validate, _ := core.NewValidator()
	return school.NewStudentService(inmemdb.NewStudentRepository(db), validate),
		school.NewTeacherService(inmemdb.NewTeacherRepository(db), validate),
		school.NewAdminService(inmemdb.NewAdminRepository(db)),
		school.NewCourseService(inmemdb.NewCourseRepository(db), validate),
		db
}

func Test_StudentService_Register(t *testing.T) {
	svc, _, _, _, _ := newServices(t)
	ctx := context.Background()

	st, err := svc.Register(ctx, school.NewRegistration{Username: "bob", Password: "s3cret", FirstName: "Bob"})
	assert.NoError(t, err)
	assert.NotZero(t, st.ID)
	assert.NoError(t, st.CheckPassword("s3cret"))

	_, err = svc.Register(ctx, school.NewRegistration{Username: "bob", Password: "other"})
	assert.EqualError(t, err, "User bob is already registered.")

	_, err = svc.Register(ctx, school.NewRegistration{Password: "s3cret"})
	assert.EqualError(t, err, "Username is required.")

	_, err = svc.Register(ctx, school.NewRegistration{Username: "alice"})
	assert.EqualError(t, err, "Password is required.")
}

func Test_StudentService_Login(t *testing.T) {
	svc, _, _, _, db := newServices(t)
	ctx := context.Background()
	testutil.CreateStudent(t, inmemdb.NewStudentRepository(db), "bob", "s3cret", "Bob", "Miller", "bobby")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "unknown username", username: "nope", password: "s3cret", wantErr: school.ErrIncorrectUsername},
		{name: "wrong password", username: "bob", password: "wrong", wantErr: school.ErrIncorrectPassword},
		{name: "username is trimmed", username: "  bob  ", password: "s3cret"},
		{name: "ok", username: "bob", password: "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "bob", st.Username)
		})
	}
}

func Test_TeacherService_Register_Login(t *testing.T) {
	_, svc, _, _, _ := newServices(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, school.NewRegistration{Username: "jane", Password: "s3cret"})
	assert.NoError(t, err)

	_, err = svc.Register(ctx, school.NewRegistration{Username: "jane", Password: "s3cret"})
	assert.EqualError(t, err, "User jane is already registered.")

	_, err = svc.Login(ctx, "jane", "wrong")
	assert.Equal(t, school.ErrIncorrectPassword, err)

	tch, err := svc.Login(ctx, "jane", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "jane", tch.Username)
}

func Test_AdminService_InitAdmin(t *testing.T) {
	_, _, svc, _, _ := newServices(t)
	ctx := context.Background()

	a, err := svc.InitAdmin(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "admin", a.Username)
	assert.Equal(t, "admin", a.Name)

	got, err := svc.Login(ctx, "admin", "123456")
	assert.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func Test_CourseService_Create(t *testing.T) {
	_, _, _, svc, db := newServices(t)
	ctx := context.Background()
	repo := inmemdb.NewCourseRepository(db)
	piano := testutil.CreateInstrument(t, repo, "Piano")

	t.Run("unknown instrument", func(t *testing.T) {
		_, err := svc.Create(ctx, school.NewCourse{Name: "Beginner", Instrument: "Flute"})
		assert.EqualError(t, err, "Instrument Flute does not exist.")

		rows, qErr := repo.QueryAllCourses(ctx)
		assert.NoError(t, qErr)
		assert.Empty(t, rows) // nothing inserted
	})

	t.Run("ok", func(t *testing.T) {
		c, err := svc.Create(ctx, school.NewCourse{Name: "Beginner", Instrument: "Piano", Price: 100, HoursPerTime: 2, NumOfTimes: 10})
		assert.NoError(t, err)
		assert.Equal(t, piano.ID, c.InstrumentID)

		rows, err := svc.QueryAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Piano", rows[0].InstrumentName)
	})
}

func Test_CourseService_InitInstruments(t *testing.T) {
	_, _, _, svc, db := newServices(t)
	ctx := context.Background()
	repo := inmemdb.NewCourseRepository(db)

	assert.NoError(t, svc.InitInstruments(ctx))
	for _, name := range []string{"Piano", "Violin", "Guitar"} {
		_, err := repo.GetInstrumentByName(ctx, name)
		assert.NoError(t, err, name)
	}
}
