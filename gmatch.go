package luapattern

// MatchIter iterates successive, non-overlapping matches of a Pattern
// against one subject. Each Next() call advances past the previous
// match; a zero-width match advances by one byte so the iteration always
// terminates (the spec's chosen resolution for zero-width global
// iteration, matching the teacher's FindAll empty-match handling).
type MatchIter struct {
	p       *Pattern
	subject []byte
	pos     int
	done    bool
}

// GMatch returns an iterator over every non-overlapping match of p in
// subject, left to right.
func (p *Pattern) GMatch(subject []byte) *MatchIter {
	return &MatchIter{p: p, subject: subject}
}

// Next returns the next match's whole-match bytes and true, or (nil,
// false) once no further match exists. The returned slice aliases
// subject and stays valid after later Next() calls, since Next never
// mutates past matches; only the Pattern's own capture buffer, read via
// p's Capture methods, is overwritten each call.
func (it *MatchIter) Next() ([]byte, bool) {
	if it.done || it.pos > len(it.subject) {
		return nil, false
	}
	if !it.p.Match(it.subject[it.pos:]) {
		it.done = true
		return nil, false
	}
	span := it.p.Capture(0)
	start := it.pos + span.Start
	end := it.pos + span.End
	if end == start {
		it.pos = end + 1
	} else {
		it.pos = end
	}
	return it.subject[start:end], true
}

// FindAllIndex returns the [start, end) byte range of every
// non-overlapping match of p in subject, left to right, or nil if there
// are none.
func (p *Pattern) FindAllIndex(subject []byte) [][2]int {
	var out [][2]int
	pos := 0
	for pos <= len(subject) {
		if !p.Match(subject[pos:]) {
			break
		}
		span := p.Capture(0)
		start, end := pos+span.Start, pos+span.End
		out = append(out, [2]int{start, end})
		if end == start {
			pos = end + 1
		} else {
			pos = end
		}
	}
	return out
}

// FindAll returns the bytes of every non-overlapping match of p in
// subject, left to right, or nil if there are none.
func (p *Pattern) FindAll(subject []byte) [][]byte {
	indices := p.FindAllIndex(subject)
	if indices == nil {
		return nil
	}
	out := make([][]byte, len(indices))
	for i, idx := range indices {
		out[i] = subject[idx[0]:idx[1]]
	}
	return out
}

// FindAllStringIndex compiles pattern and returns the [start, end) byte
// range of every non-overlapping match in subject.
func FindAllStringIndex(pattern, subject string) ([][2]int, error) {
	p, err := CompilePatternString(pattern)
	if err != nil {
		return nil, err
	}
	return p.FindAllIndex([]byte(subject)), nil
}
