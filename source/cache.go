package source

import "unicode/utf8"

// CodeUnitsCache answers code-unit offset queries for one (source,
// encoding) pair. OffsetAt(b) is semantically identical to calling
// Source.CodeUnitsOffset(b, enc) directly, but a stream of non-decreasing
// queries only pays for the bytes between consecutive offsets.
//
// A cache is not safe for concurrent use: its cursor is mutated on every
// query. Each consumer obtains its own via Source.CodeUnitsCache.
type CodeUnitsCache interface {
	// OffsetAt returns the code-unit offset of byteOffset. Out-of-range
	// offsets are clamped to the buffer bounds.
	OffsetAt(byteOffset int) int
}

// codeUnitsCursor remembers the last computed (byte offset, unit count)
// pair and scans only the delta on a forward query. A backward query
// rescans from byte 0.
type codeUnitsCursor struct {
	src        *Source
	count      unitCounter
	lastOffset int
	lastCount  int
}

func (c *codeUnitsCursor) OffsetAt(byteOffset int) int {
	byteOffset = c.src.clamp(byteOffset)
	if byteOffset < c.lastOffset {
		c.lastOffset, c.lastCount = 0, 0
	}
	for c.lastOffset < byteOffset {
		r, size := utf8.DecodeRune(c.src.content[c.lastOffset:])
		c.lastCount += c.count(r, r == utf8.RuneError && size == 1)
		c.lastOffset += size
	}
	return c.lastCount
}

// identityCache serves ASCII sources, where every code-unit offset equals
// the byte offset under any target encoding. It carries no scan state.
type identityCache struct {
	limit int
}

func (c identityCache) OffsetAt(byteOffset int) int {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset > c.limit {
		return c.limit
	}
	return byteOffset
}
