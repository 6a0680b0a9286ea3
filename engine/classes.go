package engine

// Character classification is ASCII-only and locale-independent, matching
// the C library semantics Lua patterns were originally defined against.
// Unicode-aware classification is explicitly out of scope: a byte >= 0x80
// never satisfies any letter/digit/space class.

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isCntrl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func isGraph(c byte) bool {
	return c > 0x20 && c < 0x7f
}

func isPunct(c byte) bool {
	return isGraph(c) && !isAlnum(c)
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// matchClass reports whether c matches the predefined class named by cl,
// the byte immediately following '%' (e.g. 'a' for %a, 'A' for %A -- its
// negation). An unrecognized letter falls back to literal equality, which
// is how %<non-class-letter> escapes (and punctuation escapes like %+)
// work: they just match themselves.
func matchClass(c, cl byte) bool {
	var res bool
	switch toLowerASCII(cl) {
	case 'a':
		res = isAlpha(c)
	case 'd':
		res = isDigit(c)
	case 'l':
		res = isLower(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = isUpper(c)
	case 'w':
		res = isAlnum(c)
	case 'x':
		res = isHexDigit(c)
	case 'c':
		res = isCntrl(c)
	case 'p':
		res = isPunct(c)
	default:
		return cl == c
	}
	if isUpperASCII(cl) {
		res = !res
	}
	return res
}
