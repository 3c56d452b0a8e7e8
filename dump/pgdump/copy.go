package pgdump

import (
	"regexp"
	"strings"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/dump"
)

var copyHeaderPattern = regexp.MustCompile(`^COPY "[^"]+"\."([^"]+)" \(([^)]*)\) FROM stdin;$`)

const copyTerminator = `\.`

// state is the small state machine from §4.6.
type state int

const (
	stateOutside state = iota
	stateInside
)

// Pipeline drives the Postgres COPY sanitization state machine across a
// stream of lines, one line in, zero or one line out.
type Pipeline struct {
	binding *binding.Binding

	state      state
	table      string
	columns    []string
	sanitizers map[int]dump.Sanitizer
	skipping   bool
}

// NewPipeline returns a Pipeline bound to b.
func NewPipeline(b *binding.Binding) *Pipeline {
	return &Pipeline{binding: b, state: stateOutside}
}

// Feed processes one input line (trailing LF already stripped) and returns
// the line to emit, if any.
func (p *Pipeline) Feed(line string) (string, bool, error) {
	switch p.state {
	case stateOutside:
		return p.feedOutside(line)
	default:
		return p.feedInside(line)
	}
}

func (p *Pipeline) feedOutside(line string) (string, bool, error) {
	m := copyHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return line, true, nil
	}

	table := m[1]
	columns := splitCopyColumns(m[2])

	p.state = stateInside
	p.table = table
	p.columns = columns
	p.skipping = p.binding != nil && p.binding.SkipRows(table)

	if p.skipping {
		return "", false, nil
	}

	p.sanitizers = map[int]dump.Sanitizer{}
	if p.binding != nil {
		for i, col := range columns {
			if s := p.binding.Get(table, col); s != nil {
				p.sanitizers[i] = s
			}
		}
	}

	return line, true, nil
}

func (p *Pipeline) feedInside(line string) (string, bool, error) {
	if line == copyTerminator {
		skipping := p.skipping
		p.resetToOutside()
		if skipping {
			return "", false, nil
		}
		return line, true, nil
	}

	if p.skipping {
		return "", false, nil
	}

	if len(p.sanitizers) == 0 {
		return line, true, nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) != len(p.columns) {
		return "", false, &dump.ArityMismatchError{Table: p.table, Expected: len(p.columns), Got: len(fields)}
	}

	out := make([]string, len(fields))
	for i, f := range fields {
		v, err := DecodeValue(f)
		if err != nil {
			return "", false, err
		}
		if s, ok := p.sanitizers[i]; ok {
			v = s(v)
		}
		out[i] = EncodeValue(v)
	}
	return strings.Join(out, "\t"), true, nil
}

func (p *Pipeline) resetToOutside() {
	p.state = stateOutside
	p.table = ""
	p.columns = nil
	p.sanitizers = nil
	p.skipping = false
}

func splitCopyColumns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cols := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		cols[i] = p
	}
	return cols
}
