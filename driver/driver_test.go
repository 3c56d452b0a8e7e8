package driver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/dump"
	"github.com/andersinno/database-sanitizer/logging"
	"github.com/andersinno/database-sanitizer/session"
)

func TestDialectForScheme(t *testing.T) {
	assert.Equal(t, DialectMySQL, DialectForScheme("mysql"))
	assert.Equal(t, DialectPostgres, DialectForScheme("postgres"))
	assert.Equal(t, DialectPostgres, DialectForScheme("postgresql"))
	assert.Equal(t, DialectPostgres, DialectForScheme("postgis"))
	assert.Equal(t, DialectUnknown, DialectForScheme("sqlite3"))
}

func TestRunUnsupportedScheme(t *testing.T) {
	err := Run("sqlite3:///db", strings.NewReader(""), &bytes.Buffer{}, binding.New(), session.New(), logging.NullLogger{})
	require.Error(t, err)
	var schemeErr *UnsupportedSchemeError
	require.ErrorAs(t, err, &schemeErr)
}

func TestRunMySQLEndToEnd(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(dump.Value) dump.Value { return dump.NewText("Sanitized") })

	input := "INSERT INTO `test` (`id`, `notes`) VALUES (1,'secret');\n"
	var out bytes.Buffer

	err := Run("mysql://user@localhost/mydb", strings.NewReader(input), &out, b, session.New(), logging.NullLogger{})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `test` (`id`, `notes`) VALUES (1,'Sanitized');\n", out.String())
}

func TestRunPostgresEndToEnd(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(dump.Value) dump.Value { return dump.NewText("Sanitized") })

	input := `COPY "public"."test" ("id", "notes") FROM stdin;` + "\n" +
		"1\tsecret\n" +
		`\.` + "\n"
	var out bytes.Buffer

	err := Run("postgres://user@localhost/mydb", strings.NewReader(input), &out, b, session.New(), logging.NullLogger{})
	require.NoError(t, err)

	want := `COPY "public"."test" ("id", "notes") FROM stdin;` + "\n" +
		"1\tSanitized\n" +
		`\.` + "\n"
	assert.Equal(t, want, out.String())
}

func TestRunResetsSecretPerRun(t *testing.T) {
	secret := session.New()
	secret.Reset([]byte("stale"))
	stale := secret.HashText("x")

	err := Run("mysql://localhost/db", strings.NewReader(""), &bytes.Buffer{}, binding.New(), secret, logging.NullLogger{})
	require.NoError(t, err)

	assert.NotEqual(t, stale, secret.HashText("x"), "Run must draw a fresh secret rather than reuse a stale one")
}
