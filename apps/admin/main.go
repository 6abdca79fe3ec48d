package main

import (
	"log"
	"os"

	"github.com/trezcool/muziki/core"
	"github.com/trezcool/muziki/core/school"
	"github.com/trezcool/muziki/storage/database"
	sqlxrepos "github.com/trezcool/muziki/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Ping(db))

	validate, _ := core.NewValidator()

	// start CLI
	cli := commandLine{
		db:        db,
		adminSvc:  school.NewAdminService(sqlxrepos.NewAdminRepository(db)),
		courseSvc: school.NewCourseService(sqlxrepos.NewCourseRepository(db), validate),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
