package school

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/muziki/core"
)

// Credentials is the login identity shared by all three role tables.
type Credentials struct {
	Username     string `db:"username"`
	PasswordHash []byte `db:"password_hash"`
}

func (c *Credentials) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	return nil
}

func (c *Credentials) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(pwd))
}

type Admin struct {
	ID int `db:"admin_id"`
	Credentials
	Name string `db:"name"`
}

type Student struct {
	ID int `db:"student_id"`
	Credentials
	FirstName string `db:"firstname"`
	LastName  string `db:"lastname"`
	Nickname  string `db:"nickname"`
	Birthday  string `db:"birthday"`
	Email     string `db:"email"`
	TelNum    string `db:"telnum"`
}

type Teacher struct {
	ID int `db:"teacher_id"`
	Credentials
	FirstName string `db:"firstname"`
	LastName  string `db:"lastname"`
	Nickname  string `db:"nickname"`
	Birthday  string `db:"birthday"`
	Email     string `db:"email"`
	TelNum    string `db:"telnum"`
}

type Instrument struct {
	ID   int    `db:"instrument_id"`
	Name string `db:"name"`
}

type Course struct {
	ID           int    `db:"course_id"`
	Name         string `db:"name"` // level label, e.g. "Beginner"
	Price        int    `db:"price"`
	HoursPerTime int    `db:"hours_per_time"`
	NumOfTimes   int    `db:"num_of_times"`
	InstrumentID int    `db:"instrument_id"`
}

// Teach associates a Teacher with a Course they teach.
type Teach struct {
	ID        int `db:"teach_id"`
	TeacherID int `db:"teacher_id"`
	CourseID  int `db:"course_id"`
}

// Enroll associates a Student with a Course they take.
type Enroll struct {
	ID        int `db:"enroll_id"`
	StudentID int `db:"student_id"`
	CourseID  int `db:"course_id"`
}

// Study is a scheduled session for an enrolled Student.
// Day is 1 (Monday) through 7, TimeOfDay is "HH:MM".
type Study struct {
	ID        int    `db:"study_id"`
	StudentID int    `db:"student_id"`
	Day       int    `db:"day"`
	TimeOfDay string `db:"time_of_day"`
}

// NewRegistration contains the form fields needed to register a new
// Student or Teacher. Presence is checked for username and password only,
// in that order, short-circuiting at the first failure.
type NewRegistration struct {
	Username  string `form:"username" validate:"required"`
	Password  string `form:"password" validate:"required"`
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	Nickname  string `form:"nickname"`
	Birthday  string `form:"birthday"`
	Email     string `form:"email"`
	TelNum    string `form:"telnum"`
}

func (nr *NewRegistration) Validate(validate *validator.Validate) error {
	nr.Username = core.CleanString(nr.Username)
	if err := validate.Struct(nr); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
			// fields are validated in declaration order: username first
			switch vErrs[0].StructField() {
			case "Username":
				return core.NewValidationError(ErrUsernameRequired,
					core.FieldError{Field: "username", Error: ErrUsernameRequired.Error()})
			case "Password":
				return core.NewValidationError(ErrPasswordRequired,
					core.FieldError{Field: "password", Error: ErrPasswordRequired.Error()})
			}
		}
		return err
	}
	return nil
}

// NewCourse contains the form fields needed to create a Course. Instrument
// is the instrument's name and is resolved to its id on creation; numeric
// fields are coerced by the form binder.
type NewCourse struct {
	Name         string `form:"name" validate:"required"`
	Instrument   string `form:"instrument" validate:"required"`
	Price        int    `form:"price"`
	HoursPerTime int    `form:"houspertime"` // key misspelled in the shipped form
	NumOfTimes   int    `form:"numoftimes"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Instrument = core.CleanString(nc.Instrument)
	return validate.Struct(nc)
}
