// Package prefilter provides an optional leading-byte/leading-class
// accelerator for the top-level "try every start position" loop in
// package luapattern.
//
// A Prefilter answers a narrower question than the full match engine:
// "can a match possibly start at or after this position?" It never
// itself confirms a match -- every candidate it reports is still tried by
// the engine (engine.MatchAt) -- it only lets the caller skip start positions that the pattern's first
// element could never occupy, the same supporting role the teacher's
// literal-prefix prefilter plays ahead of a compiled regex automaton. A
// Lua pattern's leading element is decided once, up front, exactly like a
// regex's extracted literal prefix; it is just a single byte/class/set
// instead of a literal run, since Lua patterns have no alternation to
// produce a multi-literal prefix set from (that asymmetry is also why
// this package, unlike the teacher's, has no Aho-Corasick/Teddy
// multi-literal path -- there is never more than one leading item to
// search for).
package prefilter

import "github.com/coregx/luapattern/engine"

// Prefilter narrows candidate start positions using a pattern's leading
// element. A nil *Prefilter (returned by Extract when no fast path
// applies) means "no filtering available"; every method on a nil
// receiver degrades to "no information," not a panic, so callers can
// treat Extract's result uniformly.
type Prefilter struct {
	table [256]bool
}

// Extract inspects the first element of pat (after an optional leading
// '^') and builds a Prefilter over the bytes that element can match, or
// returns nil if no useful filter exists. A filter only fires for a
// plain single-byte-consuming leading item -- a literal byte, a '%'
// class/escape (other than a backreference or %b/%f, neither of which
// has a fixed byte set), or a '[set]' -- and only when that item is not
// quantified with '*', '-', or '?' (any of which may match it zero
// times, so a non-matching byte at a candidate position would not rule
// out a match starting there). Anything else -- '.', a capture open, an
// end anchor, %b, %f, a backreference -- yields nil: each either matches
// unconditionally or is zero-width/data-dependent, neither of which
// narrows candidate start positions the way a required literal byte
// does. This is deliberately conservative: missing an eligible pattern
// only costs a little speed, never correctness, since the engine still
// decides whether a match starts at each candidate position.
func Extract(pat []byte) *Prefilter {
	p := 0
	if len(pat) > 0 && pat[0] == '^' {
		p = 1
	}
	if p >= len(pat) {
		return nil
	}
	switch pat[p] {
	case '.', '(', ')', '$':
		return nil
	case '%':
		if p+1 >= len(pat) {
			return nil
		}
		switch pat[p+1] {
		case 'b', 'f', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return nil
		}
	}

	ep, err := engine.ClassEnd(pat, p)
	if err != nil {
		return nil
	}
	if ep < len(pat) {
		switch pat[ep] {
		case '*', '-', '?':
			return nil
		}
	}

	pf := &Prefilter{}
	any := false
	for c := 0; c < 256; c++ {
		if engine.MatchItem(pat, byte(c), p, ep) {
			pf.table[c] = true
			any = true
		}
	}
	if !any {
		return nil
	}
	return pf
}

// Find returns the first index >= start where haystack could begin a
// match, or -1 if no such index exists in haystack[start:]. A nil
// receiver always returns start, meaning "every position is a candidate."
func (pf *Prefilter) Find(haystack []byte, start int) int {
	if pf == nil {
		return start
	}
	if start > len(haystack) {
		return -1
	}
	rel := scan(haystack[start:], &pf.table)
	if rel < 0 {
		return -1
	}
	return start + rel
}
