// Package pgdump implements the Postgres COPY value codec and the COPY
// block pipeline that sanitizes `pg_dump` text-format dumps.
package pgdump

import (
	"strconv"
	"strings"

	"github.com/andersinno/database-sanitizer/dump"
)

// nullSentinel is the two-character COPY representation of SQL NULL.
const nullSentinel = `\N`

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeValue decodes a single tab-delimited COPY field into a dump.Value.
// Per §4.3, the value carries no type information of its own; every
// non-null field decodes to Text, leaving numeric/boolean interpretation to
// whatever consumes the dump.Value (sanitizers key off the column, not the
// Kind).
func DecodeValue(raw string) (dump.Value, error) {
	if raw == nullSentinel {
		return dump.Null, nil
	}

	if !strings.ContainsRune(raw, '\\') {
		return dump.NewText(raw), nil
	}

	var b strings.Builder
	i := 0
	n := len(raw)
	for i < n {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= n {
			return dump.Value{}, &dump.DecodeError{Dialect: "postgres", Input: raw, Reason: "unterminated escape sequence"}
		}
		c = raw[i]
		i++
		switch c {
		case '\\':
			b.WriteByte('\\')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'x':
			end := i
			for end-i < 2 && end < n && isHexDigit(raw[end]) {
				end++
			}
			if end == i {
				return dump.Value{}, &dump.DecodeError{Dialect: "postgres", Input: raw, Reason: "unrecognized escape sequence"}
			}
			v, err := strconv.ParseInt(raw[i:end], 16, 32)
			if err != nil {
				return dump.Value{}, &dump.DecodeError{Dialect: "postgres", Input: raw, Reason: "invalid hex escape"}
			}
			b.WriteRune(rune(v))
			i = end
		default:
			if isOctalDigit(c) {
				end := i
				for end-i < 2 && end < n && isOctalDigit(raw[end]) {
					end++
				}
				v, err := strconv.ParseInt(string(c)+raw[i:end], 8, 32)
				if err != nil {
					return dump.Value{}, &dump.DecodeError{Dialect: "postgres", Input: raw, Reason: "invalid octal escape"}
				}
				b.WriteRune(rune(v))
				i = end
				continue
			}
			return dump.Value{}, &dump.DecodeError{Dialect: "postgres", Input: raw, Reason: "unrecognized escape sequence"}
		}
	}
	return dump.NewText(b.String()), nil
}

// escapeTable maps the bytes that must be backslash-escaped in COPY output
// to their escaped form; every other byte, including printable non-ASCII,
// is emitted as-is (§4.3 encoding).
var escapeTable = map[byte]string{
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
}

// EncodeValue renders a dump.Value as a single COPY field.
func EncodeValue(v dump.Value) string {
	if v.Kind == dump.KindNull {
		return nullSentinel
	}

	s := valueText(v)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := escapeTable[c]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func valueText(v dump.Value) string {
	switch v.Kind {
	case dump.KindBool:
		if v.Bool {
			return "t"
		}
		return "f"
	case dump.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case dump.KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case dump.KindText:
		return v.Text
	default:
		return ""
	}
}
