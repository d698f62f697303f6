package source

import (
	"fmt"
	"sort"
	"sync/atomic"
	"unicode/utf8"
)

// Source owns an immutable byte buffer together with the newline-offset
// table needed to answer position queries against it. Many Locations share
// one Source; none of them own it.
//
// A Source is safe for concurrent read-only use once construction and any
// ReplaceStartLine/ReplaceOffsets calls are complete. Freeze marks that
// boundary explicitly.
type Source struct {
	content        []byte
	startLine      int
	newlineOffsets []int
	ascii          bool
	frozen         atomic.Bool
}

// Option configures a Source during construction.
type Option func(*sourceOptions)

type sourceOptions struct {
	startLine      int
	newlineOffsets []int
	noASCII        bool
}

// WithStartLine assigns the line number of the first line of the buffer.
// The default is 1. Fragments embedded at a known position in a larger
// logical document use this to report document-relative lines.
func WithStartLine(n int) Option {
	return func(o *sourceOptions) {
		o.startLine = n
	}
}

// WithNewlineOffsets supplies a precomputed newline-offset table, typically
// produced by the lexer. The table must be strictly increasing with every
// element in [0, len(content)). When absent, the table is computed by
// scanning the buffer.
func WithNewlineOffsets(offsets []int) Option {
	return func(o *sourceOptions) {
		o.newlineOffsets = offsets
	}
}

// WithoutASCIIFastPath forces the general representation even when the
// buffer contains only ASCII bytes. Used when the declared source encoding
// cannot be safely promoted to byte-per-character arithmetic.
func WithoutASCIIFastPath() Option {
	return func(o *sourceOptions) {
		o.noASCII = true
	}
}

// New constructs a Source for content. The ASCII specialization is selected
// here, by a one-time scan for bytes with the high bit set, and never
// changes for the lifetime of the object.
func New(content []byte, opts ...Option) *Source {
	options := sourceOptions{startLine: 1}
	for _, opt := range opts {
		opt(&options)
	}

	offsets := options.newlineOffsets
	if offsets == nil {
		offsets = scanNewlines(content)
	}

	return &Source{
		content:        content,
		startLine:      options.startLine,
		newlineOffsets: offsets,
		ascii:          !options.noASCII && isASCII(content),
	}
}

func scanNewlines(content []byte) []int {
	var offsets []int
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func isASCII(content []byte) bool {
	for _, b := range content {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Bytes returns the underlying buffer. Callers must not mutate it.
func (s *Source) Bytes() []byte {
	return s.content
}

// Len returns the buffer length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// StartLine returns the line number assigned to the first line.
func (s *Source) StartLine() int {
	return s.startLine
}

// NewlineOffsets returns the newline-offset table. Callers must not mutate
// it.
func (s *Source) NewlineOffsets() []int {
	return s.newlineOffsets
}

// ASCII reports whether the fast byte-per-character path is active.
func (s *Source) ASCII() bool {
	return s.ascii
}

// clamp confines byteOffset to [0, len(content)]. Position queries clamp
// rather than fail; explicit byte-range accessors like Slice report
// ErrRange instead.
func (s *Source) clamp(byteOffset int) int {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset > len(s.content) {
		return len(s.content)
	}
	return byteOffset
}

// lineIndex returns the zero-based index of the line containing byteOffset:
// the smallest index whose newline offset is >= byteOffset. Offsets past
// the last newline belong to the final line.
func (s *Source) lineIndex(byteOffset int) int {
	return sort.SearchInts(s.newlineOffsets, byteOffset)
}

// Line returns the line number of byteOffset, counting from StartLine.
func (s *Source) Line(byteOffset int) int {
	return s.startLine + s.lineIndex(s.clamp(byteOffset))
}

// LineStart returns the byte offset at which the line containing byteOffset
// begins. The first line begins at byte 0.
func (s *Source) LineStart(byteOffset int) int {
	index := s.lineIndex(s.clamp(byteOffset))
	if index == 0 {
		return 0
	}
	return s.newlineOffsets[index-1] + 1
}

// LineEnd returns the byte offset one past the newline that terminates the
// line containing byteOffset. The last line ends at Len.
func (s *Source) LineEnd(byteOffset int) int {
	index := s.lineIndex(s.clamp(byteOffset))
	if index == len(s.newlineOffsets) {
		return len(s.content)
	}
	return s.newlineOffsets[index] + 1
}

// Column returns the byte column of byteOffset within its line.
func (s *Source) Column(byteOffset int) int {
	byteOffset = s.clamp(byteOffset)
	return byteOffset - s.LineStart(byteOffset)
}

// CharacterOffset returns the number of characters in the buffer before
// byteOffset. O(byteOffset) in the general case, O(1) for ASCII sources.
func (s *Source) CharacterOffset(byteOffset int) int {
	byteOffset = s.clamp(byteOffset)
	if s.ascii {
		return byteOffset
	}
	return s.countCharacters(0, byteOffset)
}

// CharacterColumn returns the character column of byteOffset within its
// line.
func (s *Source) CharacterColumn(byteOffset int) int {
	byteOffset = s.clamp(byteOffset)
	if s.ascii {
		return s.Column(byteOffset)
	}
	return s.countCharacters(s.LineStart(byteOffset), byteOffset)
}

func (s *Source) countCharacters(from, to int) int {
	count := 0
	for i := from; i < to; {
		_, size := utf8.DecodeRune(s.content[i:])
		i += size
		count++
	}
	return count
}

// CodeUnitsOffset returns the number of code units under enc occupied by
// the buffer contents before byteOffset. Counting never fails: byte
// sequences invalid in the source, and characters with no representation
// in enc, contribute exactly one replacement unit. O(byteOffset) cold; use
// CodeUnitsCache for repeated sequential queries.
func (s *Source) CodeUnitsOffset(byteOffset int, enc Encoding) int {
	byteOffset = s.clamp(byteOffset)
	if s.ascii {
		return byteOffset
	}
	return s.countUnits(0, byteOffset, enc.counter())
}

// CodeUnitsColumn returns the code-unit column of byteOffset within its
// line under enc. Computed by a direct scan from the line start: columns
// reset on every line, so running this through a cache cursor would defeat
// its amortization.
func (s *Source) CodeUnitsColumn(byteOffset int, enc Encoding) int {
	byteOffset = s.clamp(byteOffset)
	if s.ascii {
		return s.Column(byteOffset)
	}
	return s.countUnits(s.LineStart(byteOffset), byteOffset, enc.counter())
}

func (s *Source) countUnits(from, to int, count unitCounter) int {
	units := 0
	for i := from; i < to; {
		r, size := utf8.DecodeRune(s.content[i:])
		units += count(r, r == utf8.RuneError && size == 1)
		i += size
	}
	return units
}

// CodeUnitsCache returns a new cache scoped to this source and enc,
// amortizing a stream of non-decreasing code-unit offset queries. ASCII
// sources return a shared identity cache with no scan state.
//
// A cache is not safe for concurrent use; each consumer obtains its own.
func (s *Source) CodeUnitsCache(enc Encoding) CodeUnitsCache {
	if s.ascii {
		return identityCache{limit: len(s.content)}
	}
	return &codeUnitsCursor{src: s, count: enc.counter()}
}

// Slice returns the raw bytes of the span [byteOffset, byteOffset+length).
func (s *Source) Slice(byteOffset, length int) ([]byte, error) {
	if byteOffset < 0 || length < 0 || byteOffset+length > len(s.content) {
		return nil, fmt.Errorf("slice [%d, %d): %w", byteOffset, byteOffset+length, ErrRange)
	}
	return s.content[byteOffset : byteOffset+length], nil
}

// ReplaceStartLine replaces the starting line number. Used only by
// collaborators stitching fragments into a larger logical document.
func (s *Source) ReplaceStartLine(n int) error {
	if s.frozen.Load() {
		return fmt.Errorf("replace start line: %w", ErrFrozen)
	}
	s.startLine = n
	return nil
}

// ReplaceOffsets replaces the newline-offset table wholesale. The table
// must be strictly increasing with every element in [0, Len).
func (s *Source) ReplaceOffsets(offsets []int) error {
	if s.frozen.Load() {
		return fmt.Errorf("replace offsets: %w", ErrFrozen)
	}
	for i, off := range offsets {
		if off < 0 || off >= len(s.content) {
			return fmt.Errorf("replace offsets: element %d = %d out of range: %w", i, off, ErrOffsets)
		}
		if i > 0 && off <= offsets[i-1] {
			return fmt.Errorf("replace offsets: element %d = %d not increasing: %w", i, off, ErrOffsets)
		}
	}
	s.newlineOffsets = offsets
	return nil
}

// Freeze marks the source immutable. Subsequent ReplaceStartLine and
// ReplaceOffsets calls fail with ErrFrozen. A frozen source and its
// locations may be shared freely across goroutines.
func (s *Source) Freeze() {
	s.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (s *Source) Frozen() bool {
	return s.frozen.Load()
}
