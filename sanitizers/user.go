package sanitizers

import (
	"fmt"
	"strings"

	"github.com/andersinno/database-sanitizer/dump"
	"github.com/andersinno/database-sanitizer/session"
)

// Email returns a sanitizer that replaces an e-mail-shaped value with a
// deterministic synthetic address derived from secret, e.g.
// "jane.smith@x1a2b3c.sanitized.net".
func Email(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		nums := secret.HashTextToInts(strings.TrimSpace(v.Text), []int{16, 16, 32})
		givenName := givenNames[nums[0]%uint64(len(givenNames))]
		surname := surnames[nums[1]%uint64(len(surnames))]
		surname = strings.ReplaceAll(surname, "'", "")

		if nums[2]%8 > 0 {
			givenName = strings.ToLower(givenName)
			surname = strings.ToLower(surname)
		}

		return dump.NewText(fmt.Sprintf("%s.%s@x%x.sanitized.net", givenName, surname, nums[2]))
	}
}

// Username returns a sanitizer that replaces a value with a deterministic
// synthetic username, e.g. "jane1a2b3c4d".
func Username(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		nums := secret.HashTextToInts(v.Text, []int{16, 32})
		givenName := strings.ToLower(givenNames[nums[0]%uint64(len(givenNames))])
		return dump.NewText(fmt.Sprintf("%s%x", givenName, nums[1]))
	}
}

// FullNameEnGB returns a sanitizer that replaces a value with a
// deterministic "Given Surname" pair drawn from British name lists.
func FullNameEnGB(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		nums := secret.HashTextToInts(strings.ToLower(strings.TrimSpace(v.Text)), []int{16, 16})
		givenName := givenNames[nums[0]%uint64(len(givenNames))]
		surname := surnames[nums[1]%uint64(len(surnames))]
		return dump.NewText(givenName + " " + surname)
	}
}

// GivenNameEnGB returns a sanitizer that replaces a value with a
// deterministic British given name.
func GivenNameEnGB(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		num := secret.HashTextToInt(strings.ToLower(strings.TrimSpace(v.Text)), 0)
		return dump.NewText(givenNames[num%uint64(len(givenNames))])
	}
}

// SurnameEnGB returns a sanitizer that replaces a value with a
// deterministic British surname.
func SurnameEnGB(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		num := secret.HashTextToInt(strings.ToLower(strings.TrimSpace(v.Text)), 0)
		return dump.NewText(surnames[num%uint64(len(surnames))])
	}
}
