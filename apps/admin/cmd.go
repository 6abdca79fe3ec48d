package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/muziki/core/school"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sqlx.DB
	adminSvc  *school.AdminService
	courseSvc *school.CourseService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  init-admin                  - create the bootstrap admin credential")
	fmt.Println("  init-instruments            - create the bootstrap instruments")
	fmt.Println("  add-admin -username USERNAME [-name NAME] - add an admin credential")
	fmt.Println("  migrate up|down             - apply or roll back schema migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	addAdminUname := addAdminCmd.String("username", "", "The admin's username. The password will be prompted next.")
	addAdminName := addAdminCmd.String("name", "", "The admin's display name. Defaults to the username.")

	switch args[1] {
	case "init-admin":
		return cli.initAdmin()
	case "init-instruments":
		return cli.initInstruments()
	case "add-admin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminUname == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminUname, string(pwd), *addAdminName)
	case "migrate":
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
