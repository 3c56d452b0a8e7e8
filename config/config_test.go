package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersinno/database-sanitizer/dump"
	"github.com/andersinno/database-sanitizer/session"
)

func TestLoadEmptyPathYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Strategy)
}

func TestParseSkipRowsAndColumnStrategy(t *testing.T) {
	yamlDoc := []byte(`
strategy:
  sessions:
    skip_rows
  users:
    email: user.email
    legacy_notes: null
config:
  addons:
    - "acme.sanitizers"
  extra_parameters:
    mysqldump:
      - "--no-tablespaces"
    pg_dump:
      - "--encoding=utf-8"
`)
	cfg, err := Parse(yamlDoc)
	require.NoError(t, err)

	assert.True(t, cfg.Strategy["sessions"].SkipRows)

	usersStrategy := cfg.Strategy["users"]
	require.NotNil(t, usersStrategy.Columns["email"])
	assert.Equal(t, "user.email", *usersStrategy.Columns["email"])
	assert.Nil(t, usersStrategy.Columns["legacy_notes"])

	assert.Equal(t, []string{"acme.sanitizers"}, cfg.Addons)
	assert.Contains(t, cfg.Extra.Mysqldump, "--single-transaction")
	assert.Contains(t, cfg.Extra.Mysqldump, "--no-tablespaces")
	assert.Equal(t, []string{"--encoding=utf-8"}, cfg.Extra.PgDump)
}

func TestParseRejectsBadScalarStrategy(t *testing.T) {
	_, err := Parse([]byte(`
strategy:
  sessions: drop_everything
`))
	require.Error(t, err)
}

func TestResolveBuildsBinding(t *testing.T) {
	cfg, err := Parse([]byte(`
strategy:
  users:
    notes: string.empty
  sessions:
    skip_rows
`))
	require.NoError(t, err)

	r := NewRegistry()
	secret := session.New()
	secret.Reset([]byte("k"))

	b, err := cfg.Resolve(r, secret)
	require.NoError(t, err)

	assert.True(t, b.SkipRows("sessions"))
	sanitize := b.Get("users", "notes")
	require.NotNil(t, sanitize)
	assert.Equal(t, "", sanitize(dump.NewText("secret")).Text)
}

func TestResolveFailsOnUnknownSanitizer(t *testing.T) {
	cfg, err := Parse([]byte(`
strategy:
  users:
    notes: nonexistent.sanitizer
`))
	require.NoError(t, err)

	r := NewRegistry()
	secret := session.New()
	_, err = cfg.Resolve(r, secret)
	require.Error(t, err)
}

func TestRegistryUserNamespaceTakesPriority(t *testing.T) {
	r := NewRegistry()
	r.RegisterUser("string.empty", func(*session.Secret) dump.Sanitizer {
		return func(dump.Value) dump.Value { return dump.NewText("overridden") }
	})

	factory, err := r.Resolve("string.empty")
	require.NoError(t, err)
	got := factory(session.New())(dump.NewText("x"))
	assert.Equal(t, "overridden", got.Text)
}

func TestRegistryAddonOrderMatters(t *testing.T) {
	r := NewRegistry()
	r.RegisterAddon("first", map[string]Factory{
		"shared.name": func(*session.Secret) dump.Sanitizer {
			return func(dump.Value) dump.Value { return dump.NewText("first") }
		},
	})
	r.RegisterAddon("second", map[string]Factory{
		"shared.name": func(*session.Secret) dump.Sanitizer {
			return func(dump.Value) dump.Value { return dump.NewText("second") }
		},
	})

	factory, err := r.Resolve("shared.name")
	require.NoError(t, err)
	got := factory(session.New())(dump.NewText("x"))
	assert.Equal(t, "first", got.Text)
}
