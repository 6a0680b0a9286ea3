package luapattern

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrGsubCaptureIndex is the sentinel wrapped when a Gsub template
// references a capture index the matching pattern never produced (e.g.
// %2 against a pattern with only one capture).
var ErrGsubCaptureIndex = errors.New("luapattern: template references a capture the pattern does not have")

// ErrGsubTemplate is the sentinel wrapped when a Gsub template itself is
// malformed: a trailing bare '%', or a '%' followed by something other
// than '%' or a digit 0-9.
var ErrGsubTemplate = errors.New("luapattern: malformed gsub template")

// gsubInstr is one parsed fragment of a Gsub template: either a run of
// literal bytes to copy verbatim, or a capture index to substitute
// (captureIdx == 0 means the whole match).
type gsubInstr struct {
	literal    []byte
	isCapture  bool
	captureIdx int
}

// parseGsubTemplate pre-parses template once into a sequence of
// instructions, so repeated substitutions (one per match) do not re-scan
// the template text. '%%' is a literal '%'; '%0'-'%9' select the whole
// match or a numbered capture; any other byte after '%' is malformed.
func parseGsubTemplate(template string) ([]gsubInstr, error) {
	var instrs []gsubInstr
	var lit []byte
	flushLiteral := func() {
		if len(lit) > 0 {
			instrs = append(instrs, gsubInstr{literal: lit})
			lit = nil
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			lit = append(lit, c)
			continue
		}
		i++
		if i >= len(template) {
			return nil, fmt.Errorf("%w: trailing '%%'", ErrGsubTemplate)
		}
		switch d := template[i]; {
		case d == '%':
			lit = append(lit, '%')
		case d >= '0' && d <= '9':
			flushLiteral()
			instrs = append(instrs, gsubInstr{isCapture: true, captureIdx: int(d - '0')})
		default:
			return nil, fmt.Errorf("%w: '%%%c' is not '%%%%' or a capture reference", ErrGsubTemplate, d)
		}
	}
	flushLiteral()
	return instrs, nil
}

// Gsub replaces every non-overlapping match of p in subject using
// template, returning the substituted bytes and the number of
// replacements made. template is parsed once up front; a malformed
// template is reported before any matching happens. %0 is the whole
// match, %1-%9 are user captures, %% is a literal '%'.
func (p *Pattern) Gsub(subject []byte, template string) ([]byte, int, error) {
	instrs, err := parseGsubTemplate(template)
	if err != nil {
		return nil, 0, err
	}

	var out bytes.Buffer
	count := 0
	pos := 0
	for pos <= len(subject) {
		if !p.Match(subject[pos:]) {
			break
		}
		span := p.Capture(0)
		start, end := pos+span.Start, pos+span.End
		out.Write(subject[pos:start])

		for _, instr := range instrs {
			if !instr.isCapture {
				out.Write(instr.literal)
				continue
			}
			if instr.captureIdx >= p.NumCaptures() {
				return nil, 0, fmt.Errorf("%w: %%%d", ErrGsubCaptureIndex, instr.captureIdx)
			}
			b := p.CaptureBytes(subject[pos:], instr.captureIdx)
			out.Write(b)
		}
		count++

		if end == start {
			if start < len(subject) {
				out.WriteByte(subject[start])
			}
			pos = end + 1
		} else {
			pos = end
		}
	}
	if pos < len(subject) {
		out.Write(subject[pos:])
	}
	return out.Bytes(), count, nil
}

// Captures is a read-only view over one match's capture spans, passed to
// a GsubFunc callback. It aliases the subject bytes from that call.
type Captures struct {
	subject []byte
	p       *Pattern
}

// N returns the number of filled spans, span 0 (the whole match)
// included.
func (c *Captures) N() int { return c.p.NumCaptures() }

// Whole returns the whole-match bytes.
func (c *Captures) Whole() []byte { return c.p.CaptureBytes(c.subject, 0) }

// Bytes returns the bytes of capture i (1-based; Bytes(0) is the same as
// Whole), or nil if i is out of range or a position capture.
func (c *Captures) Bytes(i int) []byte { return c.p.CaptureBytes(c.subject, i) }

// Span returns the raw span of capture i.
func (c *Captures) Span(i int) Span { return c.p.Capture(i) }

// GsubFunc replaces every non-overlapping match of p in subject with
// whatever repl returns for that match's Captures, returning the
// substituted bytes and the number of replacements made. Returning nil
// from repl deletes the match (same as gsub with an empty-string
// replacement in the reference implementation).
func (p *Pattern) GsubFunc(subject []byte, repl func(*Captures) []byte) ([]byte, int) {
	var out bytes.Buffer
	count := 0
	pos := 0
	for pos <= len(subject) {
		if !p.Match(subject[pos:]) {
			break
		}
		span := p.Capture(0)
		start, end := pos+span.Start, pos+span.End
		out.Write(subject[pos:start])

		rel := subject[pos:]
		out.Write(repl(&Captures{subject: rel, p: p}))
		count++

		if end == start {
			if start < len(subject) {
				out.WriteByte(subject[start])
			}
			pos = end + 1
		} else {
			pos = end
		}
	}
	if pos < len(subject) {
		out.Write(subject[pos:])
	}
	return out.Bytes(), count
}
