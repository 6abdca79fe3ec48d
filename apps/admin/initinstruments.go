package main

import "context"

// initInstruments inserts the Piano, Violin and Guitar rows. Not idempotent.
func (cli *commandLine) initInstruments() error {
	return cli.courseSvc.InitInstruments(context.Background())
}
