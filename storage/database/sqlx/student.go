package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core/school"
)

// trapNoRowsErr maps sql "no rows" err to school.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return school.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

type studentRepository struct {
	db *sqlx.DB
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	q := `INSERT INTO student (username, password_hash, firstname, lastname, nickname, birthday, email, telnum)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING student_id`
	err := repo.db.GetContext(ctx, &st.ID, q,
		st.Username, st.PasswordHash, st.FirstName, st.LastName, st.Nickname, st.Birthday, st.Email, st.TelNum)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int) (school.Student, error) {
	var st school.Student
	if err := repo.db.GetContext(ctx, &st, `SELECT * FROM student WHERE student_id = $1`, id); err != nil {
		return school.Student{}, trapNoRowsErr(err, "getting student by id")
	}
	return st, nil
}

func (repo studentRepository) GetStudentByUsername(ctx context.Context, username string) (school.Student, error) {
	var st school.Student
	if err := repo.db.GetContext(ctx, &st, `SELECT * FROM student WHERE username = $1`, username); err != nil {
		return school.Student{}, trapNoRowsErr(err, "getting student by username")
	}
	return st, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]school.Student, error) {
	students := make([]school.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, `SELECT * FROM student ORDER BY student_id`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}
