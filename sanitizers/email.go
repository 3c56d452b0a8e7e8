package sanitizers

import "github.com/andersinno/database-sanitizer/dump"

// ExampleEmail replaces any non-empty value with "example@example.org",
// while empty and null values pass through as themselves.
func ExampleEmail(v dump.Value) dump.Value {
	if v.IsNull() {
		return v
	}
	if v.Text == "" {
		return v
	}
	return dump.NewText("example@example.org")
}
