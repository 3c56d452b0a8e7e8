// Command dbsanitize streams a MySQL or Postgres database dump through the
// sanitizer pipeline, rewriting configured columns while leaving everything
// else byte-exact.
package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/andersinno/database-sanitizer/config"
	"github.com/andersinno/database-sanitizer/driver"
	"github.com/andersinno/database-sanitizer/logging"
	"github.com/andersinno/database-sanitizer/session"
)

func main() {
	logging.InitSlog()
	opts, rawURL := parseOptions(os.Args[1:])

	if err := run(opts, rawURL); err != nil {
		fmt.Fprintln(os.Stderr, "dbsanitize:", err)
		os.Exit(1)
	}
}

func run(opts options, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing database URL: %w", err)
	}

	if _, hasPassword := u.User.Password(); u.User.Username() != "" && !hasPassword {
		password, err := promptPassword()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		u.User = url.UserPassword(u.User.Username(), password)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	registry := config.NewRegistry()
	secret := session.New()
	binding, err := cfg.Resolve(registry, secret)
	if err != nil {
		return err
	}

	cmd, err := launchDump(u, cfg.Extra)
	if err != nil {
		return fmt.Errorf("launching dump utility: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attaching to dump utility stdout: %w", err)
	}
	cmd.Stderr = os.Stderr

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var logger logging.Logger = logging.NullLogger{}
	if opts.Verbose {
		logger = logging.StderrLogger{}
	}

	if opts.Debug {
		out = &debugTee{inner: out}
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting dump utility: %w", err)
	}

	runErr := driver.Run(u.String(), stdout, out, binding, secret, logger)
	waitErr := cmd.Wait()

	if runErr != nil {
		return runErr
	}
	if waitErr != nil {
		return fmt.Errorf("dump utility exited with error: %w", waitErr)
	}

	if opts.Verify != "" {
		if err := verifyLoadable(opts.Verify, opts.Output); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	return nil
}

// debugTee pretty-prints every emitted line to stderr via pp before
// forwarding it to inner, for use under --debug.
type debugTee struct {
	inner io.Writer
}

func (d *debugTee) Write(p []byte) (int, error) {
	pp.Fprintln(os.Stderr, string(p))
	return d.inner.Write(p)
}
