// Package binding holds the resolved (table, column) → Sanitizer map a
// pipeline consults while rewriting a dump stream, along with the set of
// tables whose rows are dropped wholesale.
package binding

import "github.com/andersinno/database-sanitizer/dump"

// Binding is a two-level lookup keyed by table then column (§4.4). It
// stores only resolved function references — sanitizer name resolution is
// an external collaborator's job (package config).
type Binding struct {
	columns  map[string]map[string]dump.Sanitizer
	skipRows map[string]bool
}

// New returns an empty Binding.
func New() *Binding {
	return &Binding{
		columns:  map[string]map[string]dump.Sanitizer{},
		skipRows: map[string]bool{},
	}
}

// Bind registers a sanitizer for the given (table, column) pair, replacing
// any previous binding for that pair.
func (b *Binding) Bind(table, column string, s dump.Sanitizer) {
	if b.columns[table] == nil {
		b.columns[table] = map[string]dump.Sanitizer{}
	}
	b.columns[table][column] = s
}

// SetSkipRows marks table as one whose rows are dropped entirely rather
// than sanitized.
func (b *Binding) SetSkipRows(table string) {
	b.skipRows[table] = true
}

// Get returns the sanitizer bound to (table, column), or nil if none is
// bound.
func (b *Binding) Get(table, column string) dump.Sanitizer {
	cols, ok := b.columns[table]
	if !ok {
		return nil
	}
	return cols[column]
}

// SkipRows reports whether table's rows should be dropped wholesale.
func (b *Binding) SkipRows(table string) bool {
	return b.skipRows[table]
}

// Empty reports whether no bindings and no skip_rows tables are configured
// at all, letting a pipeline take the pass-through fast path (§4.5 step 1).
func (b *Binding) Empty() bool {
	return len(b.columns) == 0 && len(b.skipRows) == 0
}
