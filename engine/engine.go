package engine

import "bytes"

// Internal capture bookkeeping values, distinct from the public
// PositionMarker sentinel on Span. These only ever live inside matchState
// while a match is in progress; buildResult translates them into Spans.
const (
	capUnfinished = -1
	capPosition   = -2
)

// matchState holds the mutable working set for a single TryMatch call:
// the subject and pattern being matched, and the in-progress capture
// table. It is discarded after the call; Pattern (the reusable handle in
// the parent package) only reuses the *result*, not this struct.
type matchState struct {
	src []byte
	pat []byte

	level    int
	capStart [MaxCaptures]int
	capLen   [MaxCaptures]int

	budget int // max steps per start-position attempt; 0 = unbounded
	steps  int // steps taken in the current start-position attempt
}

// TryMatch searches subject for the leftmost match of pattern, trying
// start positions 0, 1, ..., len(subject) in order (or only position 0 if
// the pattern is anchored with a leading '^'), and returns the first
// success. A malformed pattern is rejected up front -- before any subject
// bytes are examined -- so TryMatch(p, "") reliably reports structural
// errors regardless of what the empty subject would otherwise allow.
func TryMatch(pattern, subject []byte) (Result, error) {
	return TryMatchWithBudget(pattern, subject, 0)
}

// TryMatchWithBudget is TryMatch with a per-start-position recursion step
// budget. A positive budget bounds how many match steps a single start
// position may take before giving up with ErrStepBudgetExceeded; zero
// means unbounded. The budget resets at each new start position, since a
// pathological pattern's blowup is a property of one (start, pattern)
// attempt, not of the whole search.
func TryMatchWithBudget(pattern, subject []byte, budget int) (Result, error) {
	if err := validatePattern(pattern); err != nil {
		return Result{}, err
	}

	p := 0
	anchored := len(pattern) > 0 && pattern[0] == '^'
	if anchored {
		p = 1
	}

	ms := &matchState{pat: pattern, src: subject, budget: budget}
	for start := 0; ; start++ {
		ms.level = 0
		ms.steps = 0
		end, err := ms.match(start, p)
		if err != nil {
			return Result{}, err
		}
		if end >= 0 {
			return ms.buildResult(start, end), nil
		}
		if anchored || start >= len(subject) {
			return Result{}, nil
		}
	}
}

// MatchAt attempts a single match of pattern against subject anchored at
// exactly the byte offset start (a leading '^' in pattern, if present, is
// consumed but not re-checked against start -- callers driving their own
// candidate-position search, e.g. via a prefilter, are expected to honor
// "anchored patterns only try start == 0" themselves). It returns a
// zero-value Result (N == 0) if the pattern does not match at start. This
// is TryMatch's single-position primitive, exposed so callers with a
// cheaper way to enumerate candidate start positions (see package
// prefilter) do not have to re-scan every position themselves.
func MatchAt(pattern, subject []byte, start, budget int) (Result, error) {
	if err := validatePattern(pattern); err != nil {
		return Result{}, err
	}
	p := 0
	if len(pattern) > 0 && pattern[0] == '^' {
		p = 1
	}
	ms := &matchState{pat: pattern, src: subject, budget: budget}
	end, err := ms.match(start, p)
	if err != nil {
		return Result{}, err
	}
	if end < 0 {
		return Result{}, nil
	}
	return ms.buildResult(start, end), nil
}

func (ms *matchState) buildResult(start, end int) Result {
	var r Result
	r.Spans[0] = Span{Start: start, End: end}
	for i := 0; i < ms.level; i++ {
		if ms.capLen[i] == capPosition {
			r.Spans[i+1] = Span{Start: ms.capStart[i], End: PositionMarker}
		} else {
			r.Spans[i+1] = Span{Start: ms.capStart[i], End: ms.capStart[i] + ms.capLen[i]}
		}
	}
	r.N = ms.level + 1
	return r
}

// match is the recursive backtracking core. It returns the subject index
// just past a successful match starting at s with pattern cursor p, or -1
// if no match exists at this (s, p). Quantifier retries are plain loops
// (maxExpand/minExpand); only captures, alternation-free concatenation,
// and quantified items recurse, so call-stack depth tracks pattern
// length, not subject length or backtracking breadth.
func (ms *matchState) match(s, p int) (int, error) {
	for {
		if ms.budget > 0 {
			ms.steps++
			if ms.steps > ms.budget {
				return -1, ErrStepBudgetExceeded
			}
		}
		if p >= len(ms.pat) {
			return s, nil
		}
		switch ms.pat[p] {
		case '(':
			if p+1 < len(ms.pat) && ms.pat[p+1] == ')' {
				return ms.startCapture(s, p+2, capPosition)
			}
			return ms.startCapture(s, p+1, capUnfinished)
		case ')':
			return ms.endCapture(s, p+1)
		case '$':
			if p+1 == len(ms.pat) {
				if s == len(ms.src) {
					return s, nil
				}
				return -1, nil
			}
		case '%':
			if p+1 < len(ms.pat) {
				switch c := ms.pat[p+1]; {
				case c == 'b':
					ns, err := ms.matchBalance(s, p+2)
					if err != nil {
						return -1, err
					}
					if ns < 0 {
						return -1, nil
					}
					s, p = ns, p+4
					continue
				case c == 'f':
					fp := p + 2
					ep, err := classEnd(ms.pat, fp)
					if err != nil {
						return -1, err
					}
					var prev, cur byte
					if s > 0 {
						prev = ms.src[s-1]
					}
					if s < len(ms.src) {
						cur = ms.src[s]
					}
					if !ms.matchItem(prev, fp, ep) && ms.matchItem(cur, fp, ep) {
						p = ep
						continue
					}
					return -1, nil
				case c >= '0' && c <= '9':
					ns, err := ms.matchCapture(s, p, int(c-'0'))
					if err != nil {
						return -1, err
					}
					if ns < 0 {
						return -1, nil
					}
					s, p = ns, p+2
					continue
				}
			}
		}

		ep, err := classEnd(ms.pat, p)
		if err != nil {
			return -1, err
		}
		matched := ms.singleMatch(s, p, ep)
		var suffix byte
		if ep < len(ms.pat) {
			suffix = ms.pat[ep]
		}
		switch suffix {
		case '?':
			if matched {
				if ns, err := ms.match(s+1, ep+1); err != nil {
					return -1, err
				} else if ns >= 0 {
					return ns, nil
				}
			}
			p = ep + 1
			continue
		case '+':
			if !matched {
				return -1, nil
			}
			return ms.maxExpand(s+1, p, ep)
		case '*':
			return ms.maxExpand(s, p, ep)
		case '-':
			return ms.minExpand(s, p, ep)
		default:
			if !matched {
				return -1, nil
			}
			s, p = s+1, ep
			continue
		}
	}
}

// ClassEnd returns the index just past the single pattern item starting
// at p. Exported for package prefilter, which needs to isolate a
// pattern's leading item without re-deriving the engine's own bracket-set
// scanning rules.
func ClassEnd(pat []byte, p int) (int, error) {
	return classEnd(pat, p)
}

// classEnd returns the index just past the single pattern item starting
// at p: a literal byte, '.', a '%' escape/class, or a bracketed '[set]'.
// It does not look at any quantifier suffix.
func classEnd(pat []byte, p int) (int, error) {
	c := pat[p]
	p++
	switch c {
	case '%':
		if p >= len(pat) {
			return -1, newPatternError(ErrDanglingEscape, ErrDanglingEscape.Error(), pat, p-1)
		}
		return p + 1, nil
	case '[':
		if p < len(pat) && pat[p] == '^' {
			p++
		}
		// The first item after '[' or '[^' is always consumed, even if
		// it is ']' -- that is how "[]]" treats the first ']' as a
		// literal member of the set instead of closing it immediately.
		for {
			if p >= len(pat) {
				return -1, newPatternError(ErrUnclosedSet, ErrUnclosedSet.Error(), pat, p)
			}
			ch := pat[p]
			p++
			if ch == '%' {
				if p >= len(pat) {
					return -1, newPatternError(ErrDanglingEscape, ErrDanglingEscape.Error(), pat, p)
				}
				p++
			}
			if p < len(pat) && pat[p] == ']' {
				return p + 1, nil
			}
			if p >= len(pat) {
				return -1, newPatternError(ErrUnclosedSet, ErrUnclosedSet.Error(), pat, p)
			}
		}
	default:
		return p, nil
	}
}

// matchItem reports whether c matches the single pattern item described
// by pat[p:ep], where ep == classEnd(pat, p).
func (ms *matchState) matchItem(c byte, p, ep int) bool {
	return MatchItem(ms.pat, c, p, ep)
}

// MatchItem reports whether c matches the single pattern item pat[p:ep]
// (a literal byte, '.', a '%' escape/class, or a '[set]'), where
// ep == ClassEnd(pat, p). Exported so package prefilter can test
// candidate bytes against a pattern's leading item without duplicating
// the class/set semantics.
func MatchItem(pat []byte, c byte, p, ep int) bool {
	switch pat[p] {
	case '.':
		return true
	case '%':
		return matchClass(c, pat[p+1])
	case '[':
		return matchSet(pat, c, p+1, ep-1)
	default:
		return pat[p] == c
	}
}

// matchSet reports whether c is in the bracketed set pat[p:ep], where p
// points just past '[' and ep points at the closing ']'.
func matchSet(pat []byte, c byte, p, ep int) bool {
	neg := false
	if p < ep && pat[p] == '^' {
		neg = true
		p++
	}
	for p < ep {
		switch {
		case pat[p] == '%':
			p++
			if matchClass(c, pat[p]) {
				return !neg
			}
			p++
		case p+2 < ep && pat[p+1] == '-':
			if pat[p] <= c && c <= pat[p+2] {
				return !neg
			}
			p += 3
		default:
			if pat[p] == c {
				return !neg
			}
			p++
		}
	}
	return neg
}

func (ms *matchState) singleMatch(s, p, ep int) bool {
	if s >= len(ms.src) {
		return false
	}
	return ms.matchItem(ms.src[s], p, ep)
}

// maxExpand implements greedy (`*`, `+`) repetition: consume the longest
// run of the item that still lets the remainder (starting at ep+1)
// succeed, trying shorter runs on failure.
func (ms *matchState) maxExpand(s, p, ep int) (int, error) {
	i := 0
	for ms.singleMatch(s+i, p, ep) {
		i++
	}
	for i >= 0 {
		end, err := ms.match(s+i, ep+1)
		if err != nil {
			return -1, err
		}
		if end >= 0 {
			return end, nil
		}
		i--
	}
	return -1, nil
}

// minExpand implements lazy (`-`) repetition: try the remainder first at
// the shortest run, growing by one byte on each failure.
func (ms *matchState) minExpand(s, p, ep int) (int, error) {
	for {
		end, err := ms.match(s, ep+1)
		if err != nil {
			return -1, err
		}
		if end >= 0 {
			return end, nil
		}
		if ms.singleMatch(s, p, ep) {
			s++
		} else {
			return -1, nil
		}
	}
}

func (ms *matchState) startCapture(s, p, what int) (int, error) {
	level := ms.level
	if level >= MaxCaptures-1 {
		return -1, newPatternError(ErrTooManyCaptures, ErrTooManyCaptures.Error(), ms.pat, p)
	}
	ms.capStart[level] = s
	ms.capLen[level] = what
	ms.level = level + 1

	end, err := ms.match(s, p)
	if err != nil {
		return -1, err
	}
	if end < 0 {
		ms.level--
	}
	return end, nil
}

func (ms *matchState) endCapture(s, p int) (int, error) {
	l := -1
	for i := ms.level - 1; i >= 0; i-- {
		if ms.capLen[i] == capUnfinished {
			l = i
			break
		}
	}
	if l < 0 {
		return -1, newPatternError(ErrInvalidCapture, ErrInvalidCapture.Error(), ms.pat, p)
	}
	ms.capLen[l] = s - ms.capStart[l]

	end, err := ms.match(s, p)
	if err != nil {
		return -1, err
	}
	if end < 0 {
		ms.capLen[l] = capUnfinished
	}
	return end, nil
}

func (ms *matchState) checkCaptureIndex(p, idx int) (int, error) {
	l := idx - 1
	if l < 0 || l >= ms.level || ms.capLen[l] == capUnfinished {
		return -1, invalidBackrefError(ms.pat, p, idx)
	}
	return l, nil
}

// matchCapture matches the exact bytes of the idx'th already-closed
// capture against the subject at s; p is the pattern index of the '%'
// for error reporting. A reference to a position capture
// (zero recorded length, but flagged CAP_POSITION rather than a real
// length) can never succeed, matching the reference engine's treatment
// of an un-sized capture as unmatchable rather than zero-width.
func (ms *matchState) matchCapture(s, p, idx int) (int, error) {
	l, err := ms.checkCaptureIndex(p, idx)
	if err != nil {
		return -1, err
	}
	length := ms.capLen[l]
	if length == capPosition {
		return -1, nil
	}
	start := ms.capStart[l]
	if len(ms.src)-s >= length && bytes.Equal(ms.src[start:start+length], ms.src[s:s+length]) {
		return s + length, nil
	}
	return -1, nil
}

// matchBalance implements %bxy: p indexes the byte x immediately
// following "%b". The subject at s must begin with x; matchBalance scans
// forward counting nested x/y pairs and returns the index just past the
// y that brings the depth back to zero.
func (ms *matchState) matchBalance(s, p int) (int, error) {
	if p+1 >= len(ms.pat) {
		return -1, newPatternError(ErrMalformedBalanced, ErrMalformedBalanced.Error(), ms.pat, p)
	}
	if s >= len(ms.src) || ms.src[s] != ms.pat[p] {
		return -1, nil
	}
	open, close := ms.pat[p], ms.pat[p+1]
	depth := 1
	s++
	for s < len(ms.src) {
		switch ms.src[s] {
		case close:
			depth--
			if depth == 0 {
				return s + 1, nil
			}
		case open:
			depth++
		}
		s++
	}
	return -1, nil
}

// validatePattern checks the structural well-formedness of pattern --
// balanced captures, valid back-references, closed sets, and complete
// %b/%f arguments -- without looking at any subject. These properties
// are all static facts about the pattern text: whether a back-reference
// %n points at an already-closed capture, for instance, depends only on
// the nesting and ordering of '(' and ')' up to that point, never on what
// the subject contains. Validating this up front (rather than discovering
// it lazily mid-match, as the reference C implementation does) guarantees
// TryMatch(p, "") reports exactly the malformed patterns, regardless of
// whether an empty subject happens to reach the offending pattern
// position during a match attempt.
func validatePattern(pat []byte) error {
	p := 0
	if len(pat) > 0 && pat[0] == '^' {
		p = 1
	}

	var openStack []int
	closed := make([]bool, 0, MaxCaptures)
	numCaptures := 0

	for p < len(pat) {
		switch pat[p] {
		case '(':
			numCaptures++
			if numCaptures >= MaxCaptures {
				return newPatternError(ErrTooManyCaptures, ErrTooManyCaptures.Error(), pat, p)
			}
			if p+1 < len(pat) && pat[p+1] == ')' {
				closed = append(closed, true)
				p += 2
				continue
			}
			closed = append(closed, false)
			openStack = append(openStack, numCaptures)
			p++
		case ')':
			if len(openStack) == 0 {
				return newPatternError(ErrInvalidCapture, ErrInvalidCapture.Error(), pat, p)
			}
			top := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			closed[top-1] = true
			p++
		case '%':
			if p+1 >= len(pat) {
				return newPatternError(ErrDanglingEscape, ErrDanglingEscape.Error(), pat, p)
			}
			switch c := pat[p+1]; {
			case c == 'b':
				if p+4 > len(pat) {
					return newPatternError(ErrMalformedBalanced, ErrMalformedBalanced.Error(), pat, p)
				}
				p += 4
			case c == 'f':
				p += 2
				if p >= len(pat) || pat[p] != '[' {
					return newPatternError(ErrMissingFrontierSet, ErrMissingFrontierSet.Error(), pat, p)
				}
				ep, err := classEnd(pat, p)
				if err != nil {
					return err
				}
				p = ep
			case c >= '0' && c <= '9':
				n := int(c - '0')
				if n == 0 || n > numCaptures || !closed[n-1] {
					return invalidBackrefError(pat, p, n)
				}
				p += 2
			default:
				p += 2
			}
		default:
			ep, err := classEnd(pat, p)
			if err != nil {
				return err
			}
			p = ep
			if p < len(pat) {
				switch pat[p] {
				case '*', '+', '-', '?':
					p++
				}
			}
		}
	}

	if len(openStack) > 0 {
		return newPatternError(ErrUnfinishedCapture, ErrUnfinishedCapture.Error(), pat, len(pat))
	}
	return nil
}
