package source

import (
	"errors"
	"testing"
)

func TestLocationEndpoints(t *testing.T) {
	src := New([]byte("héllo\nworld"))
	loc := NewLocation(src, 7, 5) // "world"

	if got := loc.StartOffset(); got != 7 {
		t.Errorf("StartOffset() = %d, want 7", got)
	}
	if got := loc.EndOffset(); got != 12 {
		t.Errorf("EndOffset() = %d, want 12", got)
	}
	if got := loc.StartLine(); got != 2 {
		t.Errorf("StartLine() = %d, want 2", got)
	}
	if got := loc.EndLine(); got != 2 {
		t.Errorf("EndLine() = %d, want 2", got)
	}
	if got := loc.StartColumn(); got != 0 {
		t.Errorf("StartColumn() = %d, want 0", got)
	}
	if got := loc.EndColumn(); got != 5 {
		t.Errorf("EndColumn() = %d, want 5", got)
	}
	if got := loc.StartCharacterOffset(); got != 6 {
		t.Errorf("StartCharacterOffset() = %d, want 6", got)
	}
	if got := loc.StartCodeUnitsOffset(UTF16); got != 6 {
		t.Errorf("StartCodeUnitsOffset(UTF16) = %d, want 6", got)
	}
	if got := loc.EndCodeUnitsOffset(UTF16); got != 11 {
		t.Errorf("EndCodeUnitsOffset(UTF16) = %d, want 11", got)
	}
	if got := loc.StartCodeUnitsColumn(UTF16); got != 0 {
		t.Errorf("StartCodeUnitsColumn(UTF16) = %d, want 0", got)
	}
}

func TestLocationCachedOffsets(t *testing.T) {
	src := New([]byte("héllo 𝄞\nwörld"))
	cache := src.CodeUnitsCache(UTF16)

	locations := []*Location{
		NewLocation(src, 0, 6),
		NewLocation(src, 6, 4),
		NewLocation(src, 11, 7),
	}

	for _, loc := range locations {
		if got, want := loc.CachedStartCodeUnitsOffset(cache), loc.StartCodeUnitsOffset(UTF16); got != want {
			t.Errorf("CachedStartCodeUnitsOffset at %d = %d, want %d", loc.StartOffset(), got, want)
		}
		if got, want := loc.CachedEndCodeUnitsOffset(cache), loc.EndCodeUnitsOffset(UTF16); got != want {
			t.Errorf("CachedEndCodeUnitsOffset at %d = %d, want %d", loc.EndOffset(), got, want)
		}
	}
}

func TestLocationSlice(t *testing.T) {
	src := New([]byte("foo = bar\nbaz"))
	loc := NewLocation(src, 6, 3)

	if got := string(loc.Slice()); got != "bar" {
		t.Errorf("Slice() = %q, want %q", got, "bar")
	}
	if got := string(loc.SliceLines()); got != "foo = bar\n" {
		t.Errorf("SliceLines() = %q, want %q", got, "foo = bar\n")
	}
}

func TestLocationSliceLinesSpanningLines(t *testing.T) {
	src := New([]byte("one\ntwo\nthree\nfour"))
	loc := NewLocation(src, 5, 7) // "wo\nthre"

	if got := string(loc.SliceLines()); got != "two\nthree\n" {
		t.Errorf("SliceLines() = %q, want %q", got, "two\nthree\n")
	}
}

func TestLocationCopy(t *testing.T) {
	src := New([]byte("foo = bar"))
	other := New([]byte("different"))
	loc := NewLocation(src, 2, 4)

	plain := loc.Copy()
	if plain == loc {
		t.Fatal("Copy() returned the receiver")
	}
	if plain.Source() != src || plain.StartOffset() != 2 || plain.Length() != 4 {
		t.Errorf("Copy() = (%v, %d, %d), want original fields", plain.Source(), plain.StartOffset(), plain.Length())
	}

	moved := loc.Copy(CopyStartOffset(0), CopyLength(3))
	if moved.StartOffset() != 0 || moved.Length() != 3 || moved.Source() != src {
		t.Errorf("Copy(start, length) = (%d, %d), want (0, 3)", moved.StartOffset(), moved.Length())
	}

	rehomed := loc.Copy(CopySource(other))
	if rehomed.Source() != other {
		t.Error("Copy(CopySource) kept the original source")
	}
}

func TestLocationChop(t *testing.T) {
	src := New([]byte("foo = bar"))

	chopped, err := NewLocation(src, 0, 3).Chop()
	if err != nil {
		t.Fatalf("Chop() error: %v", err)
	}
	if chopped.StartOffset() != 0 || chopped.Length() != 2 {
		t.Errorf("Chop() = (%d, %d), want (0, 2)", chopped.StartOffset(), chopped.Length())
	}

	if _, err := NewLocation(src, 0, 0).Chop(); !errors.Is(err, ErrChopEmpty) {
		t.Errorf("Chop() on empty = %v, want ErrChopEmpty", err)
	}
}

func TestLocationJoin(t *testing.T) {
	src := New([]byte("foo = bar"))

	a := NewLocation(src, 0, 5)
	b := NewLocation(src, 5, 3)
	joined, err := a.Join(b)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	if joined.StartOffset() != 0 || joined.Length() != 8 {
		t.Errorf("Join = (%d, %d), want (0, 8)", joined.StartOffset(), joined.Length())
	}

	// A gap between the spans is allowed; overlap is not.
	gapped, err := NewLocation(src, 0, 3).Join(NewLocation(src, 6, 3))
	if err != nil {
		t.Fatalf("Join with gap error: %v", err)
	}
	if gapped.Length() != 9 {
		t.Errorf("Join with gap length = %d, want 9", gapped.Length())
	}

	if _, err := b.Join(a); !errors.Is(err, ErrUnordered) {
		t.Errorf("Join out of order = %v, want ErrUnordered", err)
	}
	if _, err := a.Join(NewLocation(New([]byte("other")), 0, 2)); !errors.Is(err, ErrUnordered) {
		t.Errorf("Join across sources = %v, want ErrUnordered", err)
	}
}

func TestLocationAdjoin(t *testing.T) {
	src := New([]byte("foo = bar\nbaz = qux"))

	adjoined, err := NewLocation(src, 0, 1).Adjoin("=")
	if err != nil {
		t.Fatalf("Adjoin error: %v", err)
	}
	if got := string(adjoined.Slice()); got != "foo =" {
		t.Errorf("Adjoin slice = %q, want %q", got, "foo =")
	}

	// The second "=" is beyond the current line.
	if _, err := NewLocation(src, 6, 3).Adjoin("="); !errors.Is(err, ErrNotFound) {
		t.Errorf("Adjoin past line = %v, want ErrNotFound", err)
	}
}

func TestLocationComments(t *testing.T) {
	src := New([]byte("# lead\nfoo = bar # trail\n"))
	loc := NewLocation(src, 7, 9)

	if got := len(loc.Comments()); got != 0 {
		t.Fatalf("Comments() = %d entries at construction, want 0", got)
	}

	lead := NewComment(NewLocation(src, 0, 6))
	trail := NewComment(NewLocation(src, 17, 7))
	loc.AttachLeading(lead)
	loc.AttachTrailing(trail)

	if got := len(loc.LeadingComments()); got != 1 {
		t.Errorf("LeadingComments() = %d entries, want 1", got)
	}
	if got := len(loc.TrailingComments()); got != 1 {
		t.Errorf("TrailingComments() = %d entries, want 1", got)
	}
	all := loc.Comments()
	if len(all) != 2 || all[0] != lead || all[1] != trail {
		t.Errorf("Comments() = %v, want leading then trailing", all)
	}
	if got := string(lead.Slice()); got != "# lead" {
		t.Errorf("leading Slice() = %q, want %q", got, "# lead")
	}
	if got := string(trail.Slice()); got != "# trail" {
		t.Errorf("trailing Slice() = %q, want %q", got, "# trail")
	}
}
