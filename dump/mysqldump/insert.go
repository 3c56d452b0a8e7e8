package mysqldump

import (
	"regexp"
	"strings"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/dump"
)

var insertPattern = regexp.MustCompile("^INSERT INTO `(?P<table>[^`]+)` \\((?P<columns>.*)\\) VALUES (?P<values>.*);$")

// valueTokenPattern matches one tuple-element token: either a single-quoted
// string (tolerating `''` and `\'`, with the closing quote not preceded by a
// backslash) or a run of characters containing none of `',()`.
var valueTokenPattern = regexp.MustCompile(`'(?:[^'\\]|''|\\.)*'|[^',()]+`)

// SanitizeLine applies b to a single MySQL dump line (trailing newline
// already stripped), returning the line to emit. A false second result with
// no error means the line should be dropped entirely (a skip_rows table body).
func SanitizeLine(b *binding.Binding, line string) (string, bool, error) {
	if b == nil || b.Empty() {
		return line, true, nil
	}

	m := insertPattern.FindStringSubmatch(line)
	if m == nil {
		return line, true, nil
	}
	table := m[1]
	columnsRaw := m[2]
	valuesRaw := m[3]

	if b.SkipRows(table) {
		return "", false, nil
	}

	columns := splitColumns(columnsRaw)

	sanitizerByIndex := map[int]dump.Sanitizer{}
	for i, col := range columns {
		if s := b.Get(table, col); s != nil {
			sanitizerByIndex[i] = s
		}
	}
	if len(sanitizerByIndex) == 0 {
		return line, true, nil
	}

	rows, err := parseValueTuples(valuesRaw)
	if err != nil {
		return "", false, err
	}

	for _, row := range rows {
		if len(row) != len(columns) {
			return "", false, &dump.ArityMismatchError{Table: table, Expected: len(columns), Got: len(row)}
		}
	}

	encodedRows := make([]string, len(rows))
	for i, row := range rows {
		decoded := make([]dump.Value, len(row))
		for j, tok := range row {
			v, err := DecodeLiteral(tok)
			if err != nil {
				return "", false, err
			}
			if s, ok := sanitizerByIndex[j]; ok {
				v = s(v)
			}
			decoded[j] = v
		}
		encoded := make([]string, len(decoded))
		for j, v := range decoded {
			encoded[j] = EncodeLiteral(v)
		}
		encodedRows[i] = "(" + strings.Join(encoded, ",") + ")"
	}

	quotedColumns := make([]string, len(columns))
	for i, c := range columns {
		quotedColumns[i] = "`" + c + "`"
	}

	out := "INSERT INTO `" + table + "` (" + strings.Join(quotedColumns, ", ") + ") VALUES " +
		strings.Join(encodedRows, ",") + ";"
	return out, true, nil
}

func splitColumns(raw string) []string {
	parts := strings.Split(raw, ",")
	cols := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, "`")
		cols[i] = p
	}
	return cols
}

// parseValueTuples parses a sequence of `(v1,...,vn)` tuples separated by
// `,` into their constituent raw value tokens, per §4.5 step 6.
func parseValueTuples(raw string) ([][]string, error) {
	var rows [][]string
	rest := raw
	for len(rest) > 0 {
		if rest[0] != '(' {
			return nil, &dump.DecodeError{Dialect: "mysql", Input: raw, Reason: "expected '(' to start a value tuple"}
		}
		rest = rest[1:]

		var tokens []string
		for {
			loc := valueTokenPattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				return nil, &dump.DecodeError{Dialect: "mysql", Input: raw, Reason: "malformed value tuple"}
			}
			tokens = append(tokens, rest[loc[0]:loc[1]])
			rest = rest[loc[1]:]

			if len(rest) == 0 {
				return nil, &dump.DecodeError{Dialect: "mysql", Input: raw, Reason: "unterminated value tuple"}
			}
			if rest[0] == ',' {
				rest = rest[1:]
				continue
			}
			if rest[0] == ')' {
				rest = rest[1:]
				break
			}
			return nil, &dump.DecodeError{Dialect: "mysql", Input: raw, Reason: "unexpected delimiter in value tuple"}
		}
		rows = append(rows, tokens)

		if len(rest) == 0 {
			break
		}
		if rest[0] == ',' {
			rest = rest[1:]
			continue
		}
		return nil, &dump.DecodeError{Dialect: "mysql", Input: raw, Reason: "unexpected text after value tuple"}
	}
	return rows, nil
}
