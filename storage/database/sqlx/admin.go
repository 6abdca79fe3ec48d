package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core/school"
)

type adminRepository struct {
	db *sqlx.DB
}

var _ school.AdminRepository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{db: db}
}

func (repo adminRepository) CreateAdmin(ctx context.Context, a school.Admin) (school.Admin, error) {
	q := `INSERT INTO admin (username, password_hash, name) VALUES ($1, $2, $3) RETURNING admin_id`
	if err := repo.db.GetContext(ctx, &a.ID, q, a.Username, a.PasswordHash, a.Name); err != nil {
		return school.Admin{}, errors.Wrap(err, "inserting admin")
	}
	return a, nil
}

func (repo adminRepository) GetAdminByID(ctx context.Context, id int) (school.Admin, error) {
	var a school.Admin
	if err := repo.db.GetContext(ctx, &a, `SELECT * FROM admin WHERE admin_id = $1`, id); err != nil {
		return school.Admin{}, trapNoRowsErr(err, "getting admin by id")
	}
	return a, nil
}

func (repo adminRepository) GetAdminByUsername(ctx context.Context, username string) (school.Admin, error) {
	var a school.Admin
	if err := repo.db.GetContext(ctx, &a, `SELECT * FROM admin WHERE username = $1`, username); err != nil {
		return school.Admin{}, trapNoRowsErr(err, "getting admin by username")
	}
	return a, nil
}
