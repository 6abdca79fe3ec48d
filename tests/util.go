package testutil

import (
	"context"
	"testing"

	"github.com/qawatake/fixify"

	"github.com/trezcool/muziki/core/school"
	inmemdb "github.com/trezcool/muziki/storage/database/inmem"
)

func CreateStudent(t *testing.T, repo school.StudentRepository, uname, pwd, first, last, nick string) school.Student {
	t.Helper()

	st := school.Student{
		FirstName: first,
		LastName:  last,
		Nickname:  nick,
	}
	st.Username = uname
	if pwd != "" {
		if err := st.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}
	st, err := repo.CreateStudent(context.Background(), st)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateTeacher(t *testing.T, repo school.TeacherRepository, uname, pwd, first, last, nick string) school.Teacher {
	t.Helper()

	tch := school.Teacher{
		FirstName: first,
		LastName:  last,
		Nickname:  nick,
	}
	tch.Username = uname
	if pwd != "" {
		if err := tch.SetPassword(pwd); err != nil {
			t.Fatalf("CreateTeacher() failed: %v", err)
		}
	}
	tch, err := repo.CreateTeacher(context.Background(), tch)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateAdmin(t *testing.T, repo school.AdminRepository, uname, pwd, name string) school.Admin {
	t.Helper()

	a := school.Admin{Name: name}
	a.Username = uname
	if pwd != "" {
		if err := a.SetPassword(pwd); err != nil {
			t.Fatalf("CreateAdmin() failed: %v", err)
		}
	}
	a, err := repo.CreateAdmin(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	return a
}

func CreateInstrument(t *testing.T, repo school.CourseRepository, name string) school.Instrument {
	t.Helper()

	ins, err := repo.CreateInstrument(context.Background(), school.Instrument{Name: name})
	if err != nil {
		t.Fatalf("CreateInstrument() failed: %v", err)
	}
	return ins
}

func CreateCourse(t *testing.T, repo school.CourseRepository, name string, insID, price, hoursPerTime, numOfTimes int) school.Course {
	t.Helper()

	c, err := repo.CreateCourse(context.Background(), school.Course{
		Name:         name,
		Price:        price,
		HoursPerTime: hoursPerTime,
		NumOfTimes:   numOfTimes,
		InstrumentID: insID,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

// Fixify connectors for building relational fixture graphs. Foreign keys are
// filled in from the parent models as the graph is seeded in dependency order.

func StudentFx(uname, first, last, nick string) *fixify.Model[school.Student] {
	st := &school.Student{FirstName: first, LastName: last, Nickname: nick}
	st.Username = uname
	return fixify.NewModel(st)
}

func TeacherFx(uname, first, last, nick string) *fixify.Model[school.Teacher] {
	tch := &school.Teacher{FirstName: first, LastName: last, Nickname: nick}
	tch.Username = uname
	return fixify.NewModel(tch)
}

func InstrumentFx(name string) *fixify.Model[school.Instrument] {
	return fixify.NewModel(&school.Instrument{Name: name})
}

func CourseFx(name string, price, hoursPerTime, numOfTimes int) *fixify.Model[school.Course] {
	c := &school.Course{Name: name, Price: price, HoursPerTime: hoursPerTime, NumOfTimes: numOfTimes}
	return fixify.NewModel(c,
		fixify.ConnectorFunc(func(t testing.TB, child *school.Course, parent *school.Instrument) {
			child.InstrumentID = parent.ID
		}),
	)
}

func TeachFx() *fixify.Model[school.Teach] {
	return fixify.NewModel(new(school.Teach),
		fixify.ConnectorFunc(func(t testing.TB, child *school.Teach, parent *school.Teacher) {
			child.TeacherID = parent.ID
		}),
		fixify.ConnectorFunc(func(t testing.TB, child *school.Teach, parent *school.Course) {
			child.CourseID = parent.ID
		}),
	)
}

func EnrollFx() *fixify.Model[school.Enroll] {
	return fixify.NewModel(new(school.Enroll),
		fixify.ConnectorFunc(func(t testing.TB, child *school.Enroll, parent *school.Student) {
			child.StudentID = parent.ID
		}),
		fixify.ConnectorFunc(func(t testing.TB, child *school.Enroll, parent *school.Course) {
			child.CourseID = parent.ID
		}),
	)
}

func StudyFx(day int, timeOfDay string) *fixify.Model[school.Study] {
	return fixify.NewModel(&school.Study{Day: day, TimeOfDay: timeOfDay},
		fixify.ConnectorFunc(func(t testing.TB, child *school.Study, parent *school.Student) {
			child.StudentID = parent.ID
		}),
	)
}

// Seed inserts the fixture graph into db in dependency order, writing
// assigned primary keys back into the models so children pick them up.
func Seed(t *testing.T, db *inmemdb.DB, models ...fixify.IModel) {
	t.Helper()

	ctx := context.Background()
	studentRepo := inmemdb.NewStudentRepository(db)
	teacherRepo := inmemdb.NewTeacherRepository(db)
	adminRepo := inmemdb.NewAdminRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)

	fixify.New(t, models...).Apply(func(model any) error {
		switch m := model.(type) {
		case *school.Student:
			created, err := studentRepo.CreateStudent(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Teacher:
			created, err := teacherRepo.CreateTeacher(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Admin:
			created, err := adminRepo.CreateAdmin(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Instrument:
			created, err := courseRepo.CreateInstrument(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Course:
			created, err := courseRepo.CreateCourse(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Teach:
			created, err := courseRepo.CreateTeach(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Enroll:
			created, err := courseRepo.CreateEnroll(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		case *school.Study:
			created, err := courseRepo.CreateStudy(ctx, *m)
			if err != nil {
				return err
			}
			*m = created
		}
		return nil
	})
}
