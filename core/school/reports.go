package school

import "github.com/trezcool/muziki/core"

// scheduleOrdering sorts schedule reports by day then time, ascending.
var scheduleOrdering = []core.DBOrdering{
	{Field: "day", Ascending: true},
	{Field: "time_of_day", Ascending: true},
}

// ScheduleRow is one line of the denormalized schedule report:
// Student ⋈ Enroll ⋈ Course ⋈ Instrument ⋈ Teach ⋈ Teacher ⋈ Study.
// All joins are inner: a student missing any association is dropped.
type ScheduleRow struct {
	StudentFirstName string `db:"student_firstname"`
	StudentLastName  string `db:"student_lastname"`
	StudentNickname  string `db:"student_nickname"`
	CourseName       string `db:"course_name"`
	InstrumentName   string `db:"instrument_name"`
	TeacherFirstName string `db:"teacher_firstname"`
	TeacherLastName  string `db:"teacher_lastname"`
	TeacherNickname  string `db:"teacher_nickname"`
	Day              int    `db:"day"`
	TimeOfDay        string `db:"time_of_day"`
}

// CatalogRow is one line of the public course catalog:
// Course ⋈ Instrument ⋈ Teach ⋈ Teacher, one row per course-teacher pairing.
type CatalogRow struct {
	CourseName       string `db:"course_name"`
	InstrumentName   string `db:"instrument_name"`
	TeacherNickname  string `db:"teacher_nickname"`
	TeacherFirstName string `db:"teacher_firstname"`
	TeacherLastName  string `db:"teacher_lastname"`
}

// CourseRow is one line of the admin course listing: Course ⋈ Instrument.
type CourseRow struct {
	ID             int    `db:"course_id"`
	Name           string `db:"name"`
	Price          int    `db:"price"`
	HoursPerTime   int    `db:"hours_per_time"`
	NumOfTimes     int    `db:"num_of_times"`
	InstrumentName string `db:"instrument_name"`
}
