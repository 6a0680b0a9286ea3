// Package luapattern implements Lua-style string pattern matching: a
// compact, regex-adjacent pattern language with character classes,
// quantifiers, captures, back-references, balanced-match (%bxy), and
// frontier (%f[set]) -- but no alternation, general grouping, or
// lookaround. See Pattern (and its GMatch, Gsub and GsubFunc methods)
// and Builder for the API.
//
// Basic usage:
//
//	p, err := luapattern.CompilePatternString(`(%a+)@(%a+)%.(%a+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if p.MatchString("user@example.com") {
//	    fmt.Println(string(p.CaptureBytes([]byte("user@example.com"), 1))) // user
//	}
package luapattern

import (
	"github.com/coregx/luapattern/engine"
	"github.com/coregx/luapattern/prefilter"
)

// Span is a byte-offset pair into a subject. IsPosition reports whether
// it is a `()` position capture rather than an ordinary substring span.
type Span = engine.Span

// MaxCaptures is the hard limit on captures (including the whole-match
// span) a single pattern may produce.
const MaxCaptures = engine.MaxCaptures

// PositionMarker is the Span.End sentinel marking a position capture.
const PositionMarker = engine.PositionMarker

// Pattern is a reusable compiled-pattern handle: pattern bytes plus a
// fixed capture buffer that is overwritten on every Match/MatchString
// call. A Pattern is not safe for concurrent matching.
type Pattern struct {
	raw      []byte
	cfg      EngineConfig
	pf       *prefilter.Prefilter
	anchored bool
	spans    [MaxCaptures]Span
	n        int
}

// NewPattern wraps pattern bytes into a Pattern without validating them.
// Use this when the pattern is known-good (e.g. a compile-time literal);
// a malformed pattern surfaces as a panic from the first Match call
// instead of a constructor error. Prefer CompilePattern when the pattern
// comes from outside the program.
func NewPattern(pattern []byte) *Pattern {
	return NewPatternWithConfig(pattern, DefaultEngineConfig())
}

// NewPatternWithConfig is NewPattern with an explicit EngineConfig.
func NewPatternWithConfig(pattern []byte, cfg EngineConfig) *Pattern {
	p := &Pattern{
		raw:      pattern,
		cfg:      cfg,
		anchored: len(pattern) > 0 && pattern[0] == '^',
	}
	// Only a well-formed pattern gets a prefilter, so a malformed one always
	// reaches the engine's validation (and Match's panic) on every call.
	if cfg.EnablePrefilter {
		if _, err := engine.TryMatch(pattern, nil); err == nil {
			p.pf = prefilter.Extract(pattern)
		}
	}
	return p
}

// NewPatternString is NewPattern over a string pattern.
func NewPatternString(pattern string) *Pattern {
	return NewPattern([]byte(pattern))
}

// CompilePattern validates pattern (by running it against an empty
// subject) before returning the handle, so malformed patterns are caught
// here rather than surfacing as a panic from the first real Match call.
func CompilePattern(pattern []byte) (*Pattern, error) {
	return CompilePatternWithConfig(pattern, DefaultEngineConfig())
}

// CompilePatternWithConfig is CompilePattern with an explicit
// EngineConfig, itself validated before the pattern is.
func CompilePatternWithConfig(pattern []byte, cfg EngineConfig) (*Pattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := engine.TryMatch(pattern, nil); err != nil {
		return nil, err
	}
	return NewPatternWithConfig(pattern, cfg), nil
}

// CompilePatternString is CompilePattern over a string pattern.
func CompilePatternString(pattern string) (*Pattern, error) {
	return CompilePattern([]byte(pattern))
}

// MustCompilePattern compiles pattern and panics if it is malformed. Use
// for pattern literals known-good at compile time.
func MustCompilePattern(pattern string) *Pattern {
	p, err := CompilePatternString(pattern)
	if err != nil {
		panic("luapattern: CompilePatternString(" + pattern + "): " + err.Error())
	}
	return p
}

// Match runs the pattern against subject, storing the result in p's
// capture buffer and returning whether it matched. A pattern error
// discovered mid-match (a pattern that was never validated with
// CompilePattern) panics -- at that point it is a programmer error, not
// a recoverable condition, the same fail-fast posture as indexing past
// the end of a slice.
func (p *Pattern) Match(subject []byte) bool {
	if p.pf == nil {
		res, err := engine.TryMatchWithBudget(p.raw, subject, p.cfg.StepBudget)
		if err != nil {
			panic("luapattern: " + err.Error())
		}
		p.spans = res.Spans
		p.n = res.N
		return p.n > 0
	}

	// A leading item survived prefilter.Extract, so every viable start
	// position must satisfy it; jump straight to each candidate instead
	// of asking the engine to re-test every intervening byte itself.
	// prefilter.Extract does not know about ^: it strips the caret and
	// still builds a filter for the item that follows, so Find can return
	// a candidate anywhere in subject. An anchored pattern is only
	// allowed to match at position 0, so the very first candidate must
	// be 0 or the match fails outright -- there is no "next candidate"
	// to fall back to.
	if p.anchored {
		cand := p.pf.Find(subject, 0)
		if cand != 0 {
			p.n = 0
			return false
		}
		res, err := engine.MatchAt(p.raw, subject, 0, p.cfg.StepBudget)
		if err != nil {
			panic("luapattern: " + err.Error())
		}
		p.spans = res.Spans
		p.n = res.N
		return p.n > 0
	}

	for start := 0; ; {
		cand := p.pf.Find(subject, start)
		if cand < 0 {
			p.n = 0
			return false
		}
		res, err := engine.MatchAt(p.raw, subject, cand, p.cfg.StepBudget)
		if err != nil {
			panic("luapattern: " + err.Error())
		}
		if res.N > 0 {
			p.spans = res.Spans
			p.n = res.N
			return true
		}
		start = cand + 1
	}
}

// MatchString is Match over a string subject.
func (p *Pattern) MatchString(subject string) bool {
	return p.Match([]byte(subject))
}

// NumCaptures returns the number of filled spans from the last Match
// call (0 if it did not match, including before the first call), span 0
// being the whole match.
func (p *Pattern) NumCaptures() int {
	return p.n
}

// Capture returns the i'th span from the last Match call (0 is the whole
// match). It returns a zero Span if i is out of range.
func (p *Pattern) Capture(i int) Span {
	if i < 0 || i >= p.n {
		return Span{}
	}
	return p.spans[i]
}

// CaptureBytes returns the substring of subject covered by capture i, or
// nil for an out-of-range index or a position capture (which has no
// substring). subject must be the same byte slice (or an identical copy)
// passed to the preceding Match call.
func (p *Pattern) CaptureBytes(subject []byte, i int) []byte {
	sp := p.Capture(i)
	if i < 0 || i >= p.n || sp.IsPosition() {
		return nil
	}
	return subject[sp.Start:sp.End]
}

// FirstCapture returns capture 1 if the pattern has user captures, or
// capture 0 (the whole match) otherwise -- the common "give me the
// interesting part" accessor for patterns with exactly one capture.
func (p *Pattern) FirstCapture() Span {
	if p.n > 1 {
		return p.spans[1]
	}
	return p.Capture(0)
}
