package pgdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersinno/database-sanitizer/dump"
)

func TestDecodeValueNull(t *testing.T) {
	v, err := DecodeValue(`\N`)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDecodeValueEscapeFreeFastPath(t *testing.T) {
	v, err := DecodeValue("plain text")
	require.NoError(t, err)
	assert.Equal(t, "plain text", v.Text)
}

func TestDecodeValueEscapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"backslash", `\\`, `\`},
		{"backspace", `\b`, "\b"},
		{"formfeed", `\f`, "\f"},
		{"newline", `\n`, "\n"},
		{"carriage return", `\r`, "\r"},
		{"tab", `\t`, "\t"},
		{"vertical tab", `\v`, "\v"},
		{"hex", `\xff`, "\xc3\xbf"}, // rune 0xFF encoded as UTF-8
		{"octal", `\123`, "S"},      // octal 123 == decimal 83 == 'S'
		{"literal backslash-N as data", `\\N`, `\N`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := DecodeValue(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.want, v.Text)
		})
	}
}

func TestDecodeValueUnterminatedEscape(t *testing.T) {
	_, err := DecodeValue(`abc\`)
	require.Error(t, err)
	var decodeErr *dump.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeValueUnrecognizedEscape(t *testing.T) {
	_, err := DecodeValue(`a\qb`)
	require.Error(t, err)
}

func TestEncodeValue(t *testing.T) {
	assert.Equal(t, `\N`, EncodeValue(dump.Null))
	assert.Equal(t, `a\tb\nc`, EncodeValue(dump.NewText("a\tb\nc")))
	assert.Equal(t, `back\\slash`, EncodeValue(dump.NewText(`back\slash`)))
	assert.Equal(t, "no-escapes-needed", EncodeValue(dump.NewText("no-escapes-needed")))
}

// The Postgres COPY text format carries no type tag of its own — every
// non-null field decodes to Text, matching the original Python codec
// (str|None). The universal round-trip property therefore applies to Null
// and Text, the only two variants this codec actually produces.
func TestValueRoundTrip(t *testing.T) {
	cases := []dump.Value{
		dump.Null,
		dump.NewText("plain"),
		dump.NewText("with\ttab\nand\\backslash"),
		dump.NewText(`literal \N looking text`),
	}
	for _, v := range cases {
		encoded := EncodeValue(v)
		decoded, err := DecodeValue(encoded)
		require.NoError(t, err)
		assert.True(t, v.Equal(decoded), "round trip mismatch: encoded %q, decoded %v", encoded, decoded)
	}
}

func TestDecodeEncodeRoundTripOnCanonicalText(t *testing.T) {
	cases := []string{
		`\N`,
		"plain text",
		`a\tb\nc`,
		`back\\slash`,
	}
	for _, text := range cases {
		v, err := DecodeValue(text)
		require.NoError(t, err)
		assert.Equal(t, text, EncodeValue(v))
	}
}
