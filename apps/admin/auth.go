package main

import (
	"context"
	"time"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/auth"
)

type whoami struct {
	core.Identity `yaml:",inline"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.flagSet("login")
	email := fs.String("email", "", "The account email. The password will be prompted next.")
	role := fs.String("role", core.RoleAdmin, "The account role: admin or student.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *email); err != nil {
		return err
	}

	pwd, err := readPassword(cli)
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}

	sess, err := cli.authSvc.Login(ctx, auth.Credentials{Email: *email, Password: pwd, Role: *role})
	if err != nil {
		return err
	}
	cli.logger.Info("logged in", sess.Identity)
	cli.printf("Logged in as %s (%s)", sess.Name, sess.Role)
	return nil
}

func (cli *commandLine) logout(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("logout"), args); err != nil {
		return err
	}
	if err := cli.authSvc.Logout(ctx); err != nil {
		return err
	}
	cli.printf("Logged out")
	return nil
}

func (cli *commandLine) whoami(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("whoami"), args); err != nil {
		return err
	}
	sess, err := cli.authSvc.Current(ctx)
	if err != nil {
		return err
	}

	out := whoami{Identity: sess.Identity}
	if !sess.ExpiresAt.IsZero() {
		out.ExpiresAt = &sess.ExpiresAt
	}
	return cli.print(out)
}
