package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core/school"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo teacherRepository) CreateTeacher(ctx context.Context, t school.Teacher) (school.Teacher, error) {
	q := `INSERT INTO teacher (username, password_hash, firstname, lastname, nickname, birthday, email, telnum)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING teacher_id`
	err := repo.db.GetContext(ctx, &t.ID, q,
		t.Username, t.PasswordHash, t.FirstName, t.LastName, t.Nickname, t.Birthday, t.Email, t.TelNum)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return t, nil
}

func (repo teacherRepository) GetTeacherByID(ctx context.Context, id int) (school.Teacher, error) {
	var t school.Teacher
	if err := repo.db.GetContext(ctx, &t, `SELECT * FROM teacher WHERE teacher_id = $1`, id); err != nil {
		return school.Teacher{}, trapNoRowsErr(err, "getting teacher by id")
	}
	return t, nil
}

func (repo teacherRepository) GetTeacherByUsername(ctx context.Context, username string) (school.Teacher, error) {
	var t school.Teacher
	if err := repo.db.GetContext(ctx, &t, `SELECT * FROM teacher WHERE username = $1`, username); err != nil {
		return school.Teacher{}, trapNoRowsErr(err, "getting teacher by username")
	}
	return t, nil
}

func (repo teacherRepository) QueryAllTeachers(ctx context.Context) ([]school.Teacher, error) {
	teachers := make([]school.Teacher, 0)
	if err := repo.db.SelectContext(ctx, &teachers, `SELECT * FROM teacher ORDER BY teacher_id`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return teachers, nil
}
