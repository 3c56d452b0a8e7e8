package sanitizers

import (
	"strings"

	"github.com/andersinno/database-sanitizer/dump"
)

// Empty replaces any non-null text value with an empty string.
func Empty(v dump.Value) dump.Value {
	if v.IsNull() {
		return v
	}
	return dump.NewText("")
}

// ZFill replaces the value with a run of zeros of the same length,
// matching Python's str.zfill behavior on an empty prefix.
func ZFill(v dump.Value) dump.Value {
	if v.IsNull() {
		return v
	}
	return dump.NewText(strings.Repeat("0", len(v.Text)))
}
