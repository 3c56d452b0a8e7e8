// Package mysqldump implements the MySQL literal codec and the
// `INSERT INTO` line pipeline that sanitizes extended-insert dumps produced
// by `mysqldump --complete-insert --extended-insert`.
package mysqldump

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andersinno/database-sanitizer/dump"
)

var (
	nullPattern    = regexp.MustCompile(`(?i)^NULL$`)
	booleanPattern = regexp.MustCompile(`(?i)^(TRUE|FALSE)$`)
	floatPattern   = regexp.MustCompile(`^[+-]?\d*\.\d+([eE][+-]?\d+)?$`)
	intPattern     = regexp.MustCompile(`^\d+$`)
	stringPattern  = regexp.MustCompile(`^'(?:[^'\\]|''|\\.)*'$`)

	escapeSequencePattern = regexp.MustCompile(`\\(.)`)
)

// escapeTable is the MySQL string-literal escape sequence mapping from
// https://dev.mysql.com/doc/refman/en/string-literals.html. Any other
// backslash pair decodes to its second character literally.
var escapeTable = map[byte]byte{
	'0': 0x00,
	'b': '\b',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'Z': 0x1a,
}

// DecodeLiteral decodes a single trimmed MySQL literal token into a
// dump.Value, per §4.2's priority-ordered grammar.
func DecodeLiteral(text string) (dump.Value, error) {
	switch {
	case nullPattern.MatchString(text):
		return dump.Null, nil
	case booleanPattern.MatchString(text):
		return dump.NewBool(strings.EqualFold(text, "TRUE")), nil
	case floatPattern.MatchString(text):
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return dump.Value{}, &dump.DecodeError{Dialect: "mysql", Input: text, Reason: err.Error()}
		}
		return dump.NewFloat(f), nil
	case intPattern.MatchString(text):
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return dump.Value{}, &dump.DecodeError{Dialect: "mysql", Input: text, Reason: err.Error()}
		}
		return dump.NewInt(i), nil
	case stringPattern.MatchString(text):
		return dump.NewText(decodeStringLiteral(text)), nil
	default:
		return dump.Value{}, &dump.DecodeError{Dialect: "mysql", Input: text, Reason: "does not match any recognized literal form"}
	}
}

// decodeStringLiteral strips the surrounding quotes from a MySQL string
// literal and resolves its escape sequences.
func decodeStringLiteral(text string) string {
	inner := text[1 : len(text)-1]
	inner = strings.ReplaceAll(inner, "''", "'")
	return escapeSequencePattern.ReplaceAllStringFunc(inner, func(m string) string {
		c := m[1]
		if r, ok := escapeTable[c]; ok {
			return string(r)
		}
		return string(c)
	})
}

// EncodeLiteral renders a dump.Value as a MySQL literal suitable for use
// inside an `INSERT INTO` statement.
func EncodeLiteral(v dump.Value) string {
	switch v.Kind {
	case dump.KindNull:
		return "NULL"
	case dump.KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case dump.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case dump.KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case dump.KindText:
		return encodeStringLiteral(v.Text)
	default:
		return "NULL"
	}
}

// stringEscapeTable is the inverse of escapeTable, plus the quote and
// backslash characters that must always be escaped inside a literal.
var stringEscapeTable = map[byte]string{
	0x00: `\0`,
	'\b': `\b`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	0x1a: `\Z`,
	'\\': `\\`,
	'\'': `\'`,
}

func encodeStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := stringEscapeTable[c]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}
