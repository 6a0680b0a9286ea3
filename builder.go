package luapattern

import "fmt"

// magic is the set of bytes that are syntactically special in a Lua
// pattern and must be escaped with '%' to appear literally.
const magic = `^$()%.[]*+-?`

func isMagic(c byte) bool {
	for i := 0; i < len(magic); i++ {
		if magic[i] == c {
			return true
		}
	}
	return false
}

// Builder accumulates pattern bytes from raw fragments (passed through
// untouched, so the caller can write quantifiers/classes/captures
// directly), literal fragments (every magic byte escaped), and hex
// fragments (decoded byte pairs, for embedding arbitrary/non-printable
// bytes). It mirrors the teacher's literal-fragment-accumulation style,
// generalized from "extracting literals out of a compiled pattern" to
// "assembling literals into a pattern being built."
type Builder struct {
	buf []byte
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Raw appends fragment verbatim, with no escaping. Use this for pattern
// syntax: classes, quantifiers, captures, anchors.
func (b *Builder) Raw(fragment string) *Builder {
	b.buf = append(b.buf, fragment...)
	return b
}

// Literal appends fragment with every magic byte escaped, so it matches
// only itself regardless of content.
func (b *Builder) Literal(fragment []byte) *Builder {
	for _, c := range fragment {
		if isMagic(c) {
			b.buf = append(b.buf, '%')
		}
		b.buf = append(b.buf, c)
	}
	return b
}

// LiteralString is Literal over a string fragment.
func (b *Builder) LiteralString(fragment string) *Builder {
	return b.Literal([]byte(fragment))
}

// Hex decodes hexDigits (pairs of hex digits, optional whitespace between
// pairs, e.g. "DE AD be ef") and appends the resulting bytes as escaped
// literals. A malformed hex string is recorded and surfaces from Bytes.
func (b *Builder) Hex(hexDigits string) *Builder {
	if b.err != nil {
		return b
	}
	decoded, err := decodeHexPairs(hexDigits)
	if err != nil {
		b.err = err
		return b
	}
	return b.Literal(decoded)
}

func decodeHexPairs(s string) ([]byte, error) {
	var out []byte
	var hi byte
	haveHi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, fmt.Errorf("luapattern: invalid hex digit %q in Hex fragment", c)
		}
		if !haveHi {
			hi = v
			haveHi = true
			continue
		}
		out = append(out, hi<<4|v)
		haveHi = false
	}
	if haveHi {
		return nil, fmt.Errorf("luapattern: Hex fragment has an odd number of hex digits")
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Bytes returns the accumulated pattern bytes, or panics if a prior Hex
// call failed to decode -- a Builder is meant to be assembled with
// compile-time-known fragments, so a malformed Hex argument is a
// programmer error caught immediately rather than threaded through every
// call as an error return.
func (b *Builder) Bytes() []byte {
	if b.err != nil {
		panic(b.err.Error())
	}
	return b.buf
}

// String is Bytes as a string.
func (b *Builder) String() string {
	return string(b.Bytes())
}
