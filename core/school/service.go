package school

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/muziki/core"
)

var (
	ErrNotFound = errors.New("not found")

	// user-facing messages, kept verbatim from the shipped forms
	ErrUsernameRequired  = errors.New("Username is required.")
	ErrPasswordRequired  = errors.New("Password is required.")
	ErrIncorrectUsername = errors.New("Incorrect username.")
	ErrIncorrectPassword = errors.New("Incorrect password.")
)

// NewAlreadyRegisteredError reports a duplicate username on registration.
func NewAlreadyRegisteredError(username string) error {
	msg := fmt.Sprintf("User %s is already registered.", username)
	return core.NewValidationError(errors.New(msg), core.FieldError{Field: "username", Error: msg})
}

type (
	StudentRepository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		GetStudentByUsername(ctx context.Context, username string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
	}

	TeacherRepository interface {
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		GetTeacherByID(ctx context.Context, id int) (Teacher, error)
		GetTeacherByUsername(ctx context.Context, username string) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
	}

	AdminRepository interface {
		CreateAdmin(ctx context.Context, a Admin) (Admin, error)
		GetAdminByID(ctx context.Context, id int) (Admin, error)
		GetAdminByUsername(ctx context.Context, username string) (Admin, error)
	}

	CourseRepository interface {
		CreateInstrument(ctx context.Context, ins Instrument) (Instrument, error)
		GetInstrumentByName(ctx context.Context, name string) (Instrument, error)
		CreateCourse(ctx context.Context, c Course) (Course, error)
		CreateTeach(ctx context.Context, t Teach) (Teach, error)
		CreateEnroll(ctx context.Context, e Enroll) (Enroll, error)
		CreateStudy(ctx context.Context, s Study) (Study, error)
		QueryAllCourses(ctx context.Context) ([]CourseRow, error)
		QueryCatalog(ctx context.Context) ([]CatalogRow, error)
		// QuerySchedules returns the denormalized schedule join; teacherID 0
		// means no filter. Rows are sorted by the given orderings.
		QuerySchedules(ctx context.Context, teacherID int, ordering []core.DBOrdering) ([]ScheduleRow, error)
	}
)

// login finds a credentialed row via get and verifies the password the way
// the login forms report it: unknown username and wrong password are
// distinguished in the returned error.
func login(creds *Credentials, getErr, pwdErr error) error {
	if getErr != nil {
		if errors.Cause(getErr) == ErrNotFound {
			return ErrIncorrectUsername
		}
		return errors.Wrap(getErr, "finding user by username")
	}
	if pwdErr != nil {
		return ErrIncorrectPassword
	}
	return nil
}

type StudentService struct {
	repo     StudentRepository
	validate *validator.Validate
}

func NewStudentService(repo StudentRepository, validate *validator.Validate) *StudentService {
	return &StudentService{repo: repo, validate: validate}
}

func (svc *StudentService) Register(ctx context.Context, nr NewRegistration) (Student, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	if _, err := svc.repo.GetStudentByUsername(ctx, nr.Username); err == nil {
		return Student{}, NewAlreadyRegisteredError(nr.Username)
	} else if errors.Cause(err) != ErrNotFound {
		return Student{}, errors.Wrap(err, "checking username availability")
	}

	st := Student{
		FirstName: nr.FirstName,
		LastName:  nr.LastName,
		Nickname:  nr.Nickname,
		Birthday:  nr.Birthday,
		Email:     nr.Email,
		TelNum:    nr.TelNum,
	}
	st.Username = nr.Username
	if err := st.SetPassword(nr.Password); err != nil {
		return Student{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *StudentService) Login(ctx context.Context, username, password string) (Student, error) {
	st, err := svc.repo.GetStudentByUsername(ctx, core.CleanString(username))
	if lErr := login(&st.Credentials, err, st.CheckPassword(password)); lErr != nil {
		return Student{}, lErr
	}
	return st, nil
}

func (svc *StudentService) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *StudentService) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

type TeacherService struct {
	repo     TeacherRepository
	validate *validator.Validate
}

func NewTeacherService(repo TeacherRepository, validate *validator.Validate) *TeacherService {
	return &TeacherService{repo: repo, validate: validate}
}

func (svc *TeacherService) Register(ctx context.Context, nr NewRegistration) (Teacher, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Teacher{}, err
	}
	if _, err := svc.repo.GetTeacherByUsername(ctx, nr.Username); err == nil {
		return Teacher{}, NewAlreadyRegisteredError(nr.Username)
	} else if errors.Cause(err) != ErrNotFound {
		return Teacher{}, errors.Wrap(err, "checking username availability")
	}

	t := Teacher{
		FirstName: nr.FirstName,
		LastName:  nr.LastName,
		Nickname:  nr.Nickname,
		Birthday:  nr.Birthday,
		Email:     nr.Email,
		TelNum:    nr.TelNum,
	}
	t.Username = nr.Username
	if err := t.SetPassword(nr.Password); err != nil {
		return Teacher{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateTeacher(ctx, t)
}

func (svc *TeacherService) Login(ctx context.Context, username, password string) (Teacher, error) {
	t, err := svc.repo.GetTeacherByUsername(ctx, core.CleanString(username))
	if lErr := login(&t.Credentials, err, t.CheckPassword(password)); lErr != nil {
		return Teacher{}, lErr
	}
	return t, nil
}

func (svc *TeacherService) GetByID(ctx context.Context, id int) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *TeacherService) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

type AdminService struct {
	repo AdminRepository
}

func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

func (svc *AdminService) Login(ctx context.Context, username, password string) (Admin, error) {
	a, err := svc.repo.GetAdminByUsername(ctx, core.CleanString(username))
	if lErr := login(&a.Credentials, err, a.CheckPassword(password)); lErr != nil {
		return Admin{}, lErr
	}
	return a, nil
}

func (svc *AdminService) GetByID(ctx context.Context, id int) (Admin, error) {
	return svc.repo.GetAdminByID(ctx, id)
}

// Create adds an admin credential. Exposed to the maintenance CLI only;
// there is no admin registration route.
func (svc *AdminService) Create(ctx context.Context, username, password, name string) (Admin, error) {
	a := Admin{Name: name}
	a.Username = core.CleanString(username)
	if err := a.SetPassword(password); err != nil {
		return Admin{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateAdmin(ctx, a)
}

// InitAdmin inserts the fixed bootstrap credential. Repeated invocation
// duplicates the username and will fail on the unique constraint.
func (svc *AdminService) InitAdmin(ctx context.Context) (Admin, error) {
	return svc.Create(ctx, "admin", "123456", "admin")
}

type CourseService struct {
	repo     CourseRepository
	validate *validator.Validate
}

func NewCourseService(repo CourseRepository, validate *validator.Validate) *CourseService {
	return &CourseService{repo: repo, validate: validate}
}

// Create resolves the posted instrument name to its id and inserts the
// course. An unknown instrument is a validation error: nothing is inserted.
func (svc *CourseService) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}

	ins, err := svc.repo.GetInstrumentByName(ctx, nc.Instrument)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			msg := fmt.Sprintf("Instrument %s does not exist.", nc.Instrument)
			return Course{}, core.NewValidationError(errors.New(msg),
				core.FieldError{Field: "instrument", Error: msg})
		}
		return Course{}, errors.Wrap(err, "looking up instrument")
	}

	c := Course{
		Name:         nc.Name,
		Price:        nc.Price,
		HoursPerTime: nc.HoursPerTime,
		NumOfTimes:   nc.NumOfTimes,
		InstrumentID: ins.ID,
	}
	return svc.repo.CreateCourse(ctx, c)
}

// InitInstruments inserts the three bootstrap instruments. Not idempotent.
func (svc *CourseService) InitInstruments(ctx context.Context) error {
	for _, name := range []string{"Piano", "Violin", "Guitar"} {
		if _, err := svc.repo.CreateInstrument(ctx, Instrument{Name: name}); err != nil {
			return errors.Wrapf(err, "inserting instrument %q", name)
		}
	}
	return nil
}

func (svc *CourseService) QueryAll(ctx context.Context) ([]CourseRow, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *CourseService) Catalog(ctx context.Context) ([]CatalogRow, error) {
	return svc.repo.QueryCatalog(ctx)
}

func (svc *CourseService) AllSchedules(ctx context.Context) ([]ScheduleRow, error) {
	return svc.repo.QuerySchedules(ctx, 0, scheduleOrdering)
}

func (svc *CourseService) TeacherSchedule(ctx context.Context, teacherID int) ([]ScheduleRow, error) {
	return svc.repo.QuerySchedules(ctx, teacherID, scheduleOrdering)
}
