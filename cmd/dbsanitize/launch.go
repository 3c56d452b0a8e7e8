package main

import (
	"fmt"
	"net/url"
	"os/exec"

	"github.com/andersinno/database-sanitizer/config"
	"github.com/andersinno/database-sanitizer/driver"
)

// launchDump builds the command for the upstream dump utility appropriate
// for u's scheme. The command is returned unstarted; the caller attaches to
// its stdout, starts it, and waits for it once reading is done.
func launchDump(u *url.URL, extra config.ExtraParameters) (*exec.Cmd, error) {
	switch driver.DialectForScheme(u.Scheme) {
	case driver.DialectMySQL:
		return mysqldumpCommand(u, extra.Mysqldump)
	case driver.DialectPostgres:
		return pgDumpCommand(u, extra.PgDump)
	default:
		return nil, &driver.UnsupportedSchemeError{Scheme: u.Scheme}
	}
}

// mysqldumpCommand builds the `mysqldump` invocation equivalent to the
// original's get_mysqldump_args_and_env_from_url: complete-insert and
// extended-insert are required for the pipeline to recover column names
// and to keep the dump to one logical line per statement.
func mysqldumpCommand(u *url.URL, extraArgs []string) (*exec.Cmd, error) {
	if len(u.Path) < 2 {
		return nil, fmt.Errorf("database name is missing from URL")
	}

	args := []string{
		"--complete-insert",
		"--extended-insert",
		"--net_buffer_length=10240",
		"-h", u.Hostname(),
	}
	if port := u.Port(); port != "" {
		args = append(args, "-P", port)
	}
	if user := u.User.Username(); user != "" {
		args = append(args, "-u", user)
	}
	args = append(args, extraArgs...)
	args = append(args, u.Path[1:])

	cmd := exec.Command("mysqldump", args...)
	if password, ok := u.User.Password(); ok {
		cmd.Env = append(cmd.Env, "MYSQL_PWD="+password)
	}
	return cmd, nil
}

// pgDumpCommand builds the `pg_dump` invocation equivalent to the
// original's dump.postgres.sanitize: pg_dump accepts a full connection URL
// directly via --dbname.
func pgDumpCommand(u *url.URL, extraArgs []string) (*exec.Cmd, error) {
	args := []string{
		"--encoding=utf-8",
		"--quote-all-identifiers",
	}
	args = append(args, extraArgs...)
	args = append(args, "--dbname", u.String())

	return exec.Command("pg_dump", args...), nil
}
