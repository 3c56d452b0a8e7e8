package mysqldump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/dump"
)

func TestSanitizeLinePassThroughWithEmptyBinding(t *testing.T) {
	line := "INSERT INTO `t` (`a`) VALUES (1),(2);"
	out, keep, err := SanitizeLine(binding.New(), line)
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, line, out)
}

func TestSanitizeLineNonInsertPassesThrough(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(dump.Value) dump.Value { return dump.NewText("x") })

	line := "-- a comment, not an insert"
	out, keep, err := SanitizeLine(b, line)
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, line, out)
}

func TestSanitizeLineSubstitution(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(dump.Value) dump.Value { return dump.NewText("Sanitized") })

	input := "INSERT INTO `test` (`id`, `created_at`, `notes`) VALUES (1,'2018-01-01','Test data 1'),(2,'2018-01-02','Test data 2'),(3,'2018-01-03','Test data 3');"
	want := "INSERT INTO `test` (`id`, `created_at`, `notes`) VALUES (1,'2018-01-01','Sanitized'),(2,'2018-01-02','Sanitized'),(3,'2018-01-03','Sanitized');"

	out, keep, err := SanitizeLine(b, input)
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, want, out)
}

func TestSanitizeLineArityMismatch(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(v dump.Value) dump.Value { return v })

	input := "INSERT INTO `test` (`id`, `created_at`, `notes`) VALUES (1),(2),(3);"
	_, _, err := SanitizeLine(b, input)
	require.Error(t, err)
	var arityErr *dump.ArityMismatchError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, "test", arityErr.Table)
	assert.Equal(t, 3, arityErr.Expected)
	assert.Equal(t, 1, arityErr.Got)
}

func TestSanitizeLineSkipRowsDropsLine(t *testing.T) {
	b := binding.New()
	b.Bind("test", "notes", func(v dump.Value) dump.Value { return v })
	b.SetSkipRows("test")

	input := "INSERT INTO `test` (`id`, `notes`) VALUES (1,'a');"
	out, keep, err := SanitizeLine(b, input)
	require.NoError(t, err)
	assert.False(t, keep)
	assert.Equal(t, "", out)
}

func TestSanitizeLineUnboundTablePassesThroughUnchanged(t *testing.T) {
	b := binding.New()
	b.Bind("other", "notes", func(v dump.Value) dump.Value { return v })

	input := "INSERT INTO `test` (`id`, `notes`) VALUES (1,'a');"
	out, keep, err := SanitizeLine(b, input)
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, input, out)
}
