// Package driver dispatches a dump URL to the MySQL or Postgres pipeline by
// scheme, the same switch-by-type-string shape the teacher used to dispatch
// DDL introspection across database backends.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"net/url"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/dump/mysqldump"
	"github.com/andersinno/database-sanitizer/dump/pgdump"
	"github.com/andersinno/database-sanitizer/logging"
	"github.com/andersinno/database-sanitizer/session"
)

// UnsupportedSchemeError is returned when a dump URL's scheme matches
// neither the MySQL nor the Postgres dialect.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported database URL scheme: %q (expected mysql, postgres, postgresql, or postgis)", e.Scheme)
}

// Dialect identifies which pipeline a URL scheme selects.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectMySQL
	DialectPostgres
)

// DialectForScheme maps a URL scheme to a Dialect per §4.7.
func DialectForScheme(scheme string) Dialect {
	switch scheme {
	case "mysql":
		return DialectMySQL
	case "postgres", "postgresql", "postgis":
		return DialectPostgres
	default:
		return DialectUnknown
	}
}

// Run drives one end-to-end sanitization pass: it reads UTF-8 lines from r,
// sanitizes them per b using the dialect implied by rawURL's scheme, and
// writes LF-terminated lines to w. It resets secret to a fresh OS-random
// key before starting, so every run begins uncontaminated by a previous
// one (§4.7).
func Run(rawURL string, r io.Reader, w io.Writer, b *binding.Binding, secret *session.Secret, logger logging.Logger) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing database URL: %w", err)
	}

	dialect := DialectForScheme(u.Scheme)
	if dialect == DialectUnknown {
		return &UnsupportedSchemeError{Scheme: u.Scheme}
	}

	secret.Reset(nil)

	switch dialect {
	case DialectMySQL:
		return runMySQL(r, w, b, logger)
	case DialectPostgres:
		return runPostgres(r, w, b, logger)
	default:
		panic("unreachable dialect")
	}
}

func runMySQL(r io.Reader, w io.Writer, b *binding.Binding, logger logging.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		out, keep, err := mysqldump.SanitizeLine(b, line)
		if err != nil {
			return fmt.Errorf("sanitizing mysql dump line: %w", err)
		}
		if !keep {
			logger.Println("dropped row for skip_rows table")
			continue
		}
		if _, err := fmt.Fprintln(bw, out); err != nil {
			return fmt.Errorf("writing sanitized line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading mysql dump stream: %w", err)
	}
	return bw.Flush()
}

func runPostgres(r io.Reader, w io.Writer, b *binding.Binding, logger logging.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	p := pgdump.NewPipeline(b)
	for scanner.Scan() {
		line := scanner.Text()
		out, keep, err := p.Feed(line)
		if err != nil {
			return fmt.Errorf("sanitizing postgres dump line: %w", err)
		}
		if !keep {
			logger.Println("dropped row for skip_rows table")
			continue
		}
		if _, err := fmt.Fprintln(bw, out); err != nil {
			return fmt.Errorf("writing sanitized line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading postgres dump stream: %w", err)
	}
	return bw.Flush()
}
