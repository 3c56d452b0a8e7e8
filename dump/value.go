// Package dump defines the value model shared by every dump-format codec
// and pipeline: the decoded cell (Value), the sanitizer function contract,
// and the error types a pipeline can raise while sanitizing a dump stream.
package dump

import "fmt"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a decoded dump cell: a tagged union over the five forms a
// literal or COPY field can take. Only the field matching Kind is
// meaningful; the others are zero.
type Value struct {
	Kind Kind
	Bool bool
	Int  int64
	Flt  float64
	Text string
}

// Null is the shared Null value. Sanitizers that observe Null must
// return Null; the core never fabricates Null on its own (§3 invariant).
var Null = Value{Kind: KindNull}

func NewBool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func NewInt(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Flt: f} }
func NewText(s string) Value   { return Value{Kind: KindText, Text: s} }
func (v Value) IsNull() bool   { return v.Kind == KindNull }

// Equal compares two values by variant and payload. Float comparison is
// exact, matching the round-trip invariant in spec.md §3/§8 rather than
// any epsilon-based notion of closeness.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Flt == other.Flt
	case KindText:
		return v.Text == other.Text
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Flt)
	case KindText:
		return v.Text
	default:
		return "<invalid>"
	}
}

// Sanitizer maps a decoded cell to a replacement cell. Implementations
// must be pure, must not panic on valid input, and must return Null
// when given Null (§6 sanitizer function contract).
type Sanitizer func(Value) Value
