package main

import "context"

// initAdmin inserts the fixed admin/123456 credential. Running it twice
// fails on the username unique constraint.
func (cli *commandLine) initAdmin() error {
	_, err := cli.adminSvc.InitAdmin(context.Background())
	return err
}
