package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/muziki/core/school"
)

type studentRepository struct {
	db *DB
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(_ context.Context, st school.Student) (school.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	st.ID = repo.db.nextPK()
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *studentRepository) GetStudentByUsername(_ context.Context, username string) (school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, st := range repo.db.students {
		if st.Username == username {
			return *st, nil
		}
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		students = append(students, *st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

type teacherRepository struct {
	db *DB
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, t school.Teacher) (school.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t.ID = repo.db.nextPK()
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *teacherRepository) GetTeacherByID(_ context.Context, id int) (school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if t, ok := repo.db.teachers[id]; ok {
		return *t, nil
	}
	return school.Teacher{}, school.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByUsername(_ context.Context, username string) (school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, t := range repo.db.teachers {
		if t.Username == username {
			return *t, nil
		}
	}
	return school.Teacher{}, school.ErrNotFound
}

func (repo *teacherRepository) QueryAllTeachers(_ context.Context) ([]school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	teachers := make([]school.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, *t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

type adminRepository struct {
	db *DB
}

var _ school.AdminRepository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *DB) *adminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) CreateAdmin(_ context.Context, a school.Admin) (school.Admin, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a.ID = repo.db.nextPK()
	repo.db.admins[a.ID] = &a
	return a, nil
}

func (repo *adminRepository) GetAdminByID(_ context.Context, id int) (school.Admin, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if a, ok := repo.db.admins[id]; ok {
		return *a, nil
	}
	return school.Admin{}, school.ErrNotFound
}

func (repo *adminRepository) GetAdminByUsername(_ context.Context, username string) (school.Admin, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, a := range repo.db.admins {
		if a.Username == username {
			return *a, nil
		}
	}
	return school.Admin{}, school.ErrNotFound
}
