package source

import (
	"bytes"
	"fmt"
)

// Location marks a byte span inside a Source. The source reference, start
// offset, and length never change after construction; the comment lists
// are the only mutable state, appended to exactly once by the
// comment-attachment pass after tree construction completes.
type Location struct {
	src    *Source
	start  int
	length int

	leadingComments  []*Comment
	trailingComments []*Comment
}

// NewLocation constructs a Location covering [start, start+length) in src.
// Callers supply offsets derived from the same source; the span must
// satisfy 0 <= start and start+length <= src.Len().
func NewLocation(src *Source, start, length int) *Location {
	return &Location{src: src, start: start, length: length}
}

// Source returns the owning source.
func (l *Location) Source() *Source {
	return l.src
}

// StartOffset returns the byte offset at which the span begins.
func (l *Location) StartOffset() int {
	return l.start
}

// EndOffset returns the byte offset one past the span.
func (l *Location) EndOffset() int {
	return l.start + l.length
}

// Length returns the span length in bytes.
func (l *Location) Length() int {
	return l.length
}

func (l *Location) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", l.StartLine(), l.StartColumn(), l.EndLine(), l.EndColumn())
}

// StartLine returns the line number of the first byte of the span.
func (l *Location) StartLine() int {
	return l.src.Line(l.start)
}

// EndLine returns the line number of the end offset.
func (l *Location) EndLine() int {
	return l.src.Line(l.EndOffset())
}

// StartColumn returns the byte column of the first byte of the span.
func (l *Location) StartColumn() int {
	return l.src.Column(l.start)
}

// EndColumn returns the byte column of the end offset.
func (l *Location) EndColumn() int {
	return l.src.Column(l.EndOffset())
}

// StartCharacterOffset returns the character offset of the span start.
func (l *Location) StartCharacterOffset() int {
	return l.src.CharacterOffset(l.start)
}

// EndCharacterOffset returns the character offset of the span end.
func (l *Location) EndCharacterOffset() int {
	return l.src.CharacterOffset(l.EndOffset())
}

// StartCharacterColumn returns the character column of the span start.
func (l *Location) StartCharacterColumn() int {
	return l.src.CharacterColumn(l.start)
}

// EndCharacterColumn returns the character column of the span end.
func (l *Location) EndCharacterColumn() int {
	return l.src.CharacterColumn(l.EndOffset())
}

// StartCodeUnitsOffset returns the code-unit offset of the span start
// under enc.
func (l *Location) StartCodeUnitsOffset(enc Encoding) int {
	return l.src.CodeUnitsOffset(l.start, enc)
}

// EndCodeUnitsOffset returns the code-unit offset of the span end under
// enc.
func (l *Location) EndCodeUnitsOffset(enc Encoding) int {
	return l.src.CodeUnitsOffset(l.EndOffset(), enc)
}

// StartCodeUnitsColumn returns the code-unit column of the span start
// under enc.
func (l *Location) StartCodeUnitsColumn(enc Encoding) int {
	return l.src.CodeUnitsColumn(l.start, enc)
}

// EndCodeUnitsColumn returns the code-unit column of the span end under
// enc.
func (l *Location) EndCodeUnitsColumn(enc Encoding) int {
	return l.src.CodeUnitsColumn(l.EndOffset(), enc)
}

// CachedStartCodeUnitsOffset is StartCodeUnitsOffset through a cache
// obtained from the owning source, for callers walking many locations in
// span order.
func (l *Location) CachedStartCodeUnitsOffset(cache CodeUnitsCache) int {
	return cache.OffsetAt(l.start)
}

// CachedEndCodeUnitsOffset is EndCodeUnitsOffset through a cache obtained
// from the owning source.
func (l *Location) CachedEndCodeUnitsOffset(cache CodeUnitsCache) int {
	return cache.OffsetAt(l.EndOffset())
}

// Slice returns the byte-exact text of the span.
func (l *Location) Slice() []byte {
	return l.src.content[l.start:l.EndOffset()]
}

// SliceLines returns the text from the start of the first line to the end
// of the last line touched by the span, for diagnostic context.
func (l *Location) SliceLines() []byte {
	return l.src.content[l.src.LineStart(l.start):l.src.LineEnd(l.EndOffset())]
}

// CopyOption overrides one field of a copied Location.
type CopyOption func(*Location)

// CopySource overrides the source of the copy.
func CopySource(src *Source) CopyOption {
	return func(l *Location) {
		l.src = src
	}
}

// CopyStartOffset overrides the start offset of the copy.
func CopyStartOffset(start int) CopyOption {
	return func(l *Location) {
		l.start = start
	}
}

// CopyLength overrides the length of the copy.
func CopyLength(length int) CopyOption {
	return func(l *Location) {
		l.length = length
	}
}

// Copy returns a new Location overriding only the supplied fields. The
// comment lists are not carried over.
func (l *Location) Copy(opts ...CopyOption) *Location {
	copied := &Location{src: l.src, start: l.start, length: l.length}
	for _, opt := range opts {
		opt(copied)
	}
	return copied
}

// Chop returns a copy of the location one byte shorter.
func (l *Location) Chop() (*Location, error) {
	if l.length == 0 {
		return nil, fmt.Errorf("chop %s: %w", l, ErrChopEmpty)
	}
	return l.Copy(CopyLength(l.length - 1)), nil
}

// Join returns a Location spanning from the start of l to the end of
// other. other must share l's source and begin at or after l's end.
func (l *Location) Join(other *Location) (*Location, error) {
	if other.src != l.src {
		return nil, fmt.Errorf("join %s with %s: different sources: %w", l, other, ErrUnordered)
	}
	if other.start < l.EndOffset() {
		return nil, fmt.Errorf("join %s with %s: %w", l, other, ErrUnordered)
	}
	return l.Copy(CopyLength(other.EndOffset() - l.start)), nil
}

// Adjoin searches forward from the end of the span to the end of its line
// for the first occurrence of needle and returns a Location extended to
// include it.
func (l *Location) Adjoin(needle string) (*Location, error) {
	end := l.EndOffset()
	lineEnd := l.src.LineEnd(end)
	at := bytes.Index(l.src.content[end:lineEnd], []byte(needle))
	if at < 0 {
		return nil, fmt.Errorf("adjoin %q after %s: %w", needle, l, ErrNotFound)
	}
	return l.Copy(CopyLength(l.length + at + len(needle))), nil
}

// LeadingComments returns the comments attached before this location.
func (l *Location) LeadingComments() []*Comment {
	return l.leadingComments
}

// TrailingComments returns the comments attached after this location.
func (l *Location) TrailingComments() []*Comment {
	return l.trailingComments
}

// Comments returns the leading comments followed by the trailing comments.
func (l *Location) Comments() []*Comment {
	if len(l.trailingComments) == 0 {
		return l.leadingComments
	}
	comments := make([]*Comment, 0, len(l.leadingComments)+len(l.trailingComments))
	comments = append(comments, l.leadingComments...)
	return append(comments, l.trailingComments...)
}

// AttachLeading appends a comment to the leading list. Called only by the
// comment-attachment pass, after tree construction.
func (l *Location) AttachLeading(c *Comment) {
	l.leadingComments = append(l.leadingComments, c)
}

// AttachTrailing appends a comment to the trailing list.
func (l *Location) AttachTrailing(c *Comment) {
	l.trailingComments = append(l.trailingComments, c)
}

// Comment is a comment span attached to a Location by the
// comment-attachment pass.
type Comment struct {
	Loc *Location
}

// NewComment wraps a comment span.
func NewComment(loc *Location) *Comment {
	return &Comment{Loc: loc}
}

// Slice returns the comment text.
func (c *Comment) Slice() []byte {
	return c.Loc.Slice()
}
