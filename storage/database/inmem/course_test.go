package inmemdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
	inmemdb "github.com/trezcool/muziki/storage/database/inmem"
	testutil "github.com/trezcool/muziki/tests"
)

var scheduleOrdering = []core.DBOrdering{
	{Field: "day", Ascending: true},
	{Field: "time_of_day", Ascending: true},
}

func Test_courseRepository_QuerySchedules(t *testing.T) {
	db := inmemdb.Open()
	ctx := context.Background()
	repo := inmemdb.NewCourseRepository(db)

	jane := testutil.TeacherFx("jane", "Jane", "Doe", "jd")
	mark := testutil.TeacherFx("mark", "Mark", "Lee", "ml")
	piano := testutil.InstrumentFx("Piano")
	violin := testutil.InstrumentFx("Violin")
	beginner := testutil.CourseFx("Beginner", 100, 1, 10)
	advanced := testutil.CourseFx("Advanced", 200, 2, 10)
	alice := testutil.StudentFx("alice", "Alice", "Smith", "al")
	eve := testutil.StudentFx("eve", "Eve", "Jones", "evie")
	// enrolled but never scheduled
	carl := testutil.StudentFx("carl", "Carl", "Brown", "cb")

	janeTeach := testutil.TeachFx()
	markTeach := testutil.TeachFx()
	aliceEnroll := testutil.EnrollFx()
	eveEnroll := testutil.EnrollFx()
	carlEnroll := testutil.EnrollFx()
	aliceMonday := testutil.StudyFx(1, "15:00")
	aliceWednesday := testutil.StudyFx(3, "09:00")
	eveMonday := testutil.StudyFx(1, "08:00")

	testutil.Seed(t, db,
		jane.With(janeTeach),
		mark.With(markTeach),
		piano.With(beginner.With(janeTeach, aliceEnroll, carlEnroll)),
		violin.With(advanced.With(markTeach, eveEnroll)),
		alice.With(aliceEnroll, aliceMonday, aliceWednesday),
		eve.With(eveEnroll, eveMonday),
		carl.With(carlEnroll),
	)

	t.Run("all teachers, ordered by day then time", func(t *testing.T) {
		rows, err := repo.QuerySchedules(ctx, 0, scheduleOrdering)
		assert.NoError(t, err)
		assert.Len(t, rows, 3) // carl has no study slot: dropped

		assert.Equal(t, "Eve", rows[0].StudentFirstName)
		assert.Equal(t, "08:00", rows[0].TimeOfDay)
		assert.Equal(t, "Alice", rows[1].StudentFirstName)
		assert.Equal(t, "15:00", rows[1].TimeOfDay)
		assert.Equal(t, "Alice", rows[2].StudentFirstName)
		assert.Equal(t, 3, rows[2].Day)
	})

	t.Run("filtered by teacher", func(t *testing.T) {
		rows, err := repo.QuerySchedules(ctx, jane.Value().ID, scheduleOrdering)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, "Jane", row.TeacherFirstName)
		}
	})

	t.Run("descending ordering is honored", func(t *testing.T) {
		rows, err := repo.QuerySchedules(ctx, 0, []core.DBOrdering{{Field: "day"}, {Field: "time_of_day"}})
		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, 3, rows[0].Day)
		assert.Equal(t, "15:00", rows[1].TimeOfDay)
		assert.Equal(t, "08:00", rows[2].TimeOfDay)
	})
}

func Test_courseRepository_QueryCatalog(t *testing.T) {
	db := inmemdb.Open()
	ctx := context.Background()
	repo := inmemdb.NewCourseRepository(db)

	jane := testutil.TeacherFx("jane", "Jane", "Doe", "jd")
	piano := testutil.InstrumentFx("Piano")
	beginner := testutil.CourseFx("Beginner", 100, 1, 10)
	// no teacher assigned: dropped from the catalog
	advanced := testutil.CourseFx("Advanced", 200, 2, 10)
	teach := testutil.TeachFx()

	testutil.Seed(t, db,
		jane.With(teach),
		piano.With(beginner.With(teach), advanced),
	)

	rows, err := repo.QueryCatalog(ctx)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, school.CatalogRow{
		CourseName:       "Beginner",
		InstrumentName:   "Piano",
		TeacherNickname:  "jd",
		TeacherFirstName: "Jane",
		TeacherLastName:  "Doe",
	}, rows[0])
}

func Test_courseRepository_QueryAllCourses(t *testing.T) {
	db := inmemdb.Open()
	ctx := context.Background()
	repo := inmemdb.NewCourseRepository(db)

	piano := testutil.CreateInstrument(t, repo, "Piano")
	c := testutil.CreateCourse(t, repo, "Beginner", piano.ID, 100, 2, 10)

	rows, err := repo.QueryAllCourses(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []school.CourseRow{{
		ID:             c.ID,
		Name:           "Beginner",
		Price:          100,
		HoursPerTime:   2,
		NumOfTimes:     10,
		InstrumentName: "Piano",
	}}, rows)
}
