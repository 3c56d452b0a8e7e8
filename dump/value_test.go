package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, Null.Equal(Null))
	assert.True(t, NewBool(true).Equal(NewBool(true)))
	assert.False(t, NewBool(true).Equal(NewBool(false)))
	assert.True(t, NewInt(5).Equal(NewInt(5)))
	assert.False(t, NewInt(5).Equal(NewInt(6)))
	assert.True(t, NewFloat(1.5).Equal(NewFloat(1.5)))
	assert.True(t, NewText("a").Equal(NewText("a")))
	assert.False(t, NewText("a").Equal(NewInt(1)))
}

func TestValueIsNull(t *testing.T) {
	assert.True(t, Null.IsNull())
	assert.False(t, NewText("").IsNull())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null.String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "false", NewBool(false).String())
	assert.Equal(t, "42", NewInt(42).String())
	assert.Equal(t, "hello", NewText("hello").String())
}
