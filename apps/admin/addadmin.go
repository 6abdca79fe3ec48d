package main

import "context"

// addAdmin creates a new admin credential. name defaults to the username.
func (cli *commandLine) addAdmin(uname, pwd, name string) error {
	if name == "" {
		name = uname
	}
	_, err := cli.adminSvc.Create(context.Background(), uname, pwd, name)
	return err
}
