package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/andersinno/database-sanitizer/driver"
)

// verifyLoadable opens verifyURL and executes the sanitized dump found at
// outputPath against it, as a smoke test that the sanitized output is
// still a loadable dump. This is an optional ambient check, not part of
// the core sanitization pipeline, which never connects to a database
// (§6 Persisted state, §1 core scope).
func verifyLoadable(verifyURL, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("--verify requires --output to point at a real file")
	}

	dialect, driverName, err := verifyDriverFor(verifyURL)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, verifyDSN(driverName, verifyURL))
	if err != nil {
		return fmt.Errorf("opening verification database: %w", err)
	}
	defer db.Close()

	buf, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("reading sanitized output for verification: %w", err)
	}

	switch dialect {
	case driver.DialectMySQL:
		return verifyMySQL(db, string(buf))
	case driver.DialectPostgres:
		return verifyPostgres(db, string(buf))
	default:
		panic("unreachable dialect")
	}
}

func verifyDriverFor(rawURL string) (driver.Dialect, string, error) {
	scheme := strings.SplitN(rawURL, ":", 2)[0]
	switch driver.DialectForScheme(scheme) {
	case driver.DialectMySQL:
		return driver.DialectMySQL, "mysql", nil
	case driver.DialectPostgres:
		return driver.DialectPostgres, "postgres", nil
	default:
		return driver.DialectUnknown, "", &driver.UnsupportedSchemeError{Scheme: scheme}
	}
}

func verifyDSN(driverName, rawURL string) string {
	if driverName == "postgres" {
		return rawURL
	}
	// go-sql-driver/mysql wants a bare DSN, not a mysql:// URL; strip the
	// scheme since our verify URLs otherwise follow the dispatcher's shape.
	return strings.TrimPrefix(rawURL, "mysql://")
}

// verifyMySQL replays every `INSERT INTO` statement in the sanitized dump.
// It is a smoke test, not a full dump loader, so non-INSERT DDL lines are
// skipped.
func verifyMySQL(db *sql.DB, dump string) error {
	for _, line := range strings.Split(dump, "\n") {
		if !strings.HasPrefix(line, "INSERT INTO") {
			continue
		}
		if _, err := db.Exec(line); err != nil {
			return fmt.Errorf("replaying sanitized insert: %w", err)
		}
	}
	return nil
}

// verifyPostgres replays every sanitized `COPY ... FROM stdin;` block.
// lib/pq recognizes a literal "COPY ... FROM STDIN" statement text passed
// to Prepare and switches the connection into copy-in protocol, so the
// header line is prepared almost verbatim; only the trailing semicolon is
// stripped, since PostgreSQL statements passed this way may not have one.
func verifyPostgres(db *sql.DB, dump string) error {
	lines := strings.Split(dump, "\n")
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "COPY ") {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare(strings.TrimSuffix(lines[i], ";"))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("preparing copy statement: %w", err)
		}
		for i++; i < len(lines) && lines[i] != `\.`; i++ {
			fields := strings.Split(lines[i], "\t")
			args := make([]any, len(fields))
			for j, f := range fields {
				args[j] = f
			}
			if _, err := stmt.Exec(args...); err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("replaying sanitized copy row: %w", err)
			}
		}
		if err := stmt.Close(); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
