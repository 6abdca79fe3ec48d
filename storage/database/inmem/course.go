package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
)

type courseRepository struct {
	db *DB
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateInstrument(_ context.Context, ins school.Instrument) (school.Instrument, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	ins.ID = repo.db.nextPK()
	repo.db.instruments[ins.ID] = &ins
	return ins, nil
}

func (repo *courseRepository) GetInstrumentByName(_ context.Context, name string) (school.Instrument, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, ins := range repo.db.instruments {
		if ins.Name == name {
			return *ins, nil
		}
	}
	return school.Instrument{}, school.ErrNotFound
}

func (repo *courseRepository) CreateCourse(_ context.Context, c school.Course) (school.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) CreateTeach(_ context.Context, t school.Teach) (school.Teach, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t.ID = repo.db.nextPK()
	repo.db.teaches[t.ID] = &t
	return t, nil
}

func (repo *courseRepository) CreateEnroll(_ context.Context, e school.Enroll) (school.Enroll, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e.ID = repo.db.nextPK()
	repo.db.enrolls[e.ID] = &e
	return e, nil
}

func (repo *courseRepository) CreateStudy(_ context.Context, s school.Study) (school.Study, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s.ID = repo.db.nextPK()
	repo.db.studies[s.ID] = &s
	return s, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]school.CourseRow, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	rows := make([]school.CourseRow, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		ins, ok := repo.db.instruments[c.InstrumentID]
		if !ok {
			continue // inner join
		}
		rows = append(rows, school.CourseRow{
			ID:             c.ID,
			Name:           c.Name,
			Price:          c.Price,
			HoursPerTime:   c.HoursPerTime,
			NumOfTimes:     c.NumOfTimes,
			InstrumentName: ins.Name,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (repo *courseRepository) QueryCatalog(_ context.Context) ([]school.CatalogRow, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	rows := make([]school.CatalogRow, 0)
	for _, te := range repo.db.teaches {
		c, ok := repo.db.courses[te.CourseID]
		if !ok {
			continue
		}
		ins, ok := repo.db.instruments[c.InstrumentID]
		if !ok {
			continue
		}
		t, ok := repo.db.teachers[te.TeacherID]
		if !ok {
			continue
		}
		rows = append(rows, school.CatalogRow{
			CourseName:       c.Name,
			InstrumentName:   ins.Name,
			TeacherNickname:  t.Nickname,
			TeacherFirstName: t.FirstName,
			TeacherLastName:  t.LastName,
		})
	}
	return rows, nil
}

func (repo *courseRepository) QuerySchedules(_ context.Context, teacherID int, ordering []core.DBOrdering) ([]school.ScheduleRow, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	rows := make([]school.ScheduleRow, 0)
	for _, e := range repo.db.enrolls {
		st, ok := repo.db.students[e.StudentID]
		if !ok {
			continue // inner join: unmatched rows are dropped
		}
		c, ok := repo.db.courses[e.CourseID]
		if !ok {
			continue
		}
		ins, ok := repo.db.instruments[c.InstrumentID]
		if !ok {
			continue
		}
		for _, te := range repo.db.teaches {
			if te.CourseID != c.ID {
				continue
			}
			t, ok := repo.db.teachers[te.TeacherID]
			if !ok {
				continue
			}
			if teacherID != 0 && t.ID != teacherID {
				continue
			}
			for _, sd := range repo.db.studies {
				if sd.StudentID != st.ID {
					continue
				}
				rows = append(rows, school.ScheduleRow{
					StudentFirstName: st.FirstName,
					StudentLastName:  st.LastName,
					StudentNickname:  st.Nickname,
					CourseName:       c.Name,
					InstrumentName:   ins.Name,
					TeacherFirstName: t.FirstName,
					TeacherLastName:  t.LastName,
					TeacherNickname:  t.Nickname,
					Day:              sd.Day,
					TimeOfDay:        sd.TimeOfDay,
				})
			}
		}
	}
	sortSchedules(rows, ordering)
	return rows, nil
}

func sortSchedules(rows []school.ScheduleRow, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range ordering {
			var less, more bool
			switch ord.Field {
			case "day":
				less, more = rows[i].Day < rows[j].Day, rows[i].Day > rows[j].Day
			case "time_of_day":
				less, more = rows[i].TimeOfDay < rows[j].TimeOfDay, rows[i].TimeOfDay > rows[j].TimeOfDay
			}
			if less {
				return ord.Ascending
			}
			if more {
				return !ord.Ascending
			}
		}
		return false
	})
}
