package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andersinno/database-sanitizer/dump"
)

func constSanitizer(v dump.Value) dump.Sanitizer {
	return func(dump.Value) dump.Value { return v }
}

func TestBindingEmpty(t *testing.T) {
	b := New()
	assert.True(t, b.Empty())

	b.Bind("test", "notes", constSanitizer(dump.NewText("Sanitized")))
	assert.False(t, b.Empty())
}

func TestBindingGet(t *testing.T) {
	b := New()
	assert.Nil(t, b.Get("test", "notes"))

	s := constSanitizer(dump.NewText("Sanitized"))
	b.Bind("test", "notes", s)

	got := b.Get("test", "notes")
	assert.NotNil(t, got)
	assert.True(t, got(dump.NewText("anything")).Equal(dump.NewText("Sanitized")))

	assert.Nil(t, b.Get("test", "other_column"))
	assert.Nil(t, b.Get("other_table", "notes"))
}

func TestBindingSkipRows(t *testing.T) {
	b := New()
	assert.False(t, b.SkipRows("test"))

	b.SetSkipRows("test")
	assert.True(t, b.SkipRows("test"))
	assert.False(t, b.Empty())
}
