package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateInstrument(ctx context.Context, ins school.Instrument) (school.Instrument, error) {
	q := `INSERT INTO instrument (name) VALUES ($1) RETURNING instrument_id`
	if err := repo.db.GetContext(ctx, &ins.ID, q, ins.Name); err != nil {
		return school.Instrument{}, errors.Wrap(err, "inserting instrument")
	}
	return ins, nil
}

func (repo courseRepository) GetInstrumentByName(ctx context.Context, name string) (school.Instrument, error) {
	var ins school.Instrument
	if err := repo.db.GetContext(ctx, &ins, `SELECT * FROM instrument WHERE name = $1`, name); err != nil {
		return school.Instrument{}, trapNoRowsErr(err, "getting instrument by name")
	}
	return ins, nil
}

func (repo courseRepository) CreateCourse(ctx context.Context, c school.Course) (school.Course, error) {
	q := `INSERT INTO course (name, price, hours_per_time, num_of_times, instrument_id)
	      VALUES ($1, $2, $3, $4, $5) RETURNING course_id`
	if err := repo.db.GetContext(ctx, &c.ID, q, c.Name, c.Price, c.HoursPerTime, c.NumOfTimes, c.InstrumentID); err != nil {
		return school.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) CreateTeach(ctx context.Context, t school.Teach) (school.Teach, error) {
	q := `INSERT INTO teach (teacher_id, course_id) VALUES ($1, $2) RETURNING teach_id`
	if err := repo.db.GetContext(ctx, &t.ID, q, t.TeacherID, t.CourseID); err != nil {
		return school.Teach{}, errors.Wrap(err, "inserting teach")
	}
	return t, nil
}

func (repo courseRepository) CreateEnroll(ctx context.Context, e school.Enroll) (school.Enroll, error) {
	q := `INSERT INTO enroll (student_id, course_id) VALUES ($1, $2) RETURNING enroll_id`
	if err := repo.db.GetContext(ctx, &e.ID, q, e.StudentID, e.CourseID); err != nil {
		return school.Enroll{}, errors.Wrap(err, "inserting enroll")
	}
	return e, nil
}

func (repo courseRepository) CreateStudy(ctx context.Context, s school.Study) (school.Study, error) {
	q := `INSERT INTO study (student_id, day, time_of_day) VALUES ($1, $2, $3) RETURNING study_id`
	if err := repo.db.GetContext(ctx, &s.ID, q, s.StudentID, s.Day, s.TimeOfDay); err != nil {
		return school.Study{}, errors.Wrap(err, "inserting study")
	}
	return s, nil
}

func (repo courseRepository) QueryAllCourses(ctx context.Context) ([]school.CourseRow, error) {
	q := `SELECT course.course_id, course.name, course.price, course.hours_per_time, course.num_of_times,
	             instrument.name AS instrument_name
	      FROM course
	      JOIN instrument ON instrument.instrument_id = course.instrument_id
	      ORDER BY course.course_id`
	rows := make([]school.CourseRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return rows, nil
}

func (repo courseRepository) QueryCatalog(ctx context.Context) ([]school.CatalogRow, error) {
	q := `SELECT course.name AS course_name, instrument.name AS instrument_name,
	             teacher.nickname AS teacher_nickname, teacher.firstname AS teacher_firstname,
	             teacher.lastname AS teacher_lastname
	      FROM course
	      JOIN instrument ON instrument.instrument_id = course.instrument_id
	      JOIN teach ON course.course_id = teach.course_id
	      JOIN teacher ON teacher.teacher_id = teach.teacher_id`
	rows := make([]school.CatalogRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying course catalog")
	}
	return rows, nil
}

func (repo courseRepository) QuerySchedules(ctx context.Context, teacherID int, ordering []core.DBOrdering) ([]school.ScheduleRow, error) {
	q := `SELECT student.firstname AS student_firstname, student.lastname AS student_lastname,
	             student.nickname AS student_nickname,
	             course.name AS course_name, instrument.name AS instrument_name,
	             teacher.firstname AS teacher_firstname, teacher.lastname AS teacher_lastname,
	             teacher.nickname AS teacher_nickname,
	             study.day, study.time_of_day
	      FROM student
	      JOIN enroll ON enroll.student_id = student.student_id
	      JOIN course ON course.course_id = enroll.course_id
	      JOIN instrument ON instrument.instrument_id = course.instrument_id
	      JOIN teach ON teach.course_id = course.course_id
	      JOIN teacher ON teacher.teacher_id = teach.teacher_id
	      JOIN study ON study.student_id = student.student_id`

	args := make([]interface{}, 0, 1)
	if teacherID != 0 {
		q += ` WHERE teacher.teacher_id = $1`
		args = append(args, teacherID)
	}
	if len(ordering) > 0 {
		ords := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			ords = append(ords, "study."+ord.String())
		}
		q += ` ORDER BY ` + strings.Join(ords, ", ")
	}

	rows := make([]school.ScheduleRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying schedules")
	}
	return rows, nil
}
