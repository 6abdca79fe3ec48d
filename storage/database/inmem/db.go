// Package inmemdb provides in-memory repositories used as test doubles.
package inmemdb

import (
	"sync"

	"github.com/trezcool/muziki/core/school"
)

type DB struct {
	mu sync.RWMutex

	pkCount int

	admins      map[int]*school.Admin
	students    map[int]*school.Student
	teachers    map[int]*school.Teacher
	instruments map[int]*school.Instrument
	courses     map[int]*school.Course
	teaches     map[int]*school.Teach
	enrolls     map[int]*school.Enroll
	studies     map[int]*school.Study
}

func Open() *DB {
	return &DB{
		admins:      make(map[int]*school.Admin),
		students:    make(map[int]*school.Student),
		teachers:    make(map[int]*school.Teacher),
		instruments: make(map[int]*school.Instrument),
		courses:     make(map[int]*school.Course),
		teaches:     make(map[int]*school.Teach),
		enrolls:     make(map[int]*school.Enroll),
		studies:     make(map[int]*school.Study),
	}
}

func (db *DB) nextPK() int {
	db.pkCount++
	return db.pkCount
}
