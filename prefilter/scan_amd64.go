//go:build amd64

package prefilter

import "golang.org/x/sys/cpu"

// hasWideSIMD gates the unrolled scan path. The teacher's own table scan
// (simd/memchr_class_amd64.go's MemchrInTable) does not gate on AVX2 at
// all -- it always falls through to the scalar memchrInTableGeneric ("For
// now, use scalar..."). This package diverges from that more conservative
// choice: AVX2 availability is used here as a proxy for "this core has
// enough front-end width that an 8-byte unrolled scalar loop (scanWide)
// actually amortizes better than a tight byte loop," not as a literal
// dispatch to an AVX2 instruction -- this package carries no assembly,
// since the candidate-filter table is an arbitrary 256-entry predicate
// rather than a single fixed needle byte an AVX2 kernel could compare in
// one shot.
var hasWideSIMD = cpu.X86.HasAVX2

func scan(haystack []byte, table *[256]bool) int {
	if hasWideSIMD && len(haystack) >= 32 {
		return scanWide(haystack, table)
	}
	return scanScalar(haystack, table)
}
