package source

import "errors"

var (
	// ErrRange indicates that a requested byte span exceeds the buffer bounds.
	ErrRange = errors.New("byte range out of bounds")

	// ErrUnordered indicates that two locations cannot be joined because they
	// are out of order or belong to different sources.
	ErrUnordered = errors.New("locations are not ordered")

	// ErrNotFound indicates that a needle string does not occur on the
	// current line.
	ErrNotFound = errors.New("string not found on current line")

	// ErrChopEmpty indicates an attempt to chop a zero-length location.
	ErrChopEmpty = errors.New("cannot chop empty location")

	// ErrFrozen indicates an attempt to replace state on a frozen source.
	ErrFrozen = errors.New("source is frozen")

	// ErrEncoding indicates that an encoding name could not be resolved.
	ErrEncoding = errors.New("unknown encoding")

	// ErrOffsets indicates an invalid newline-offset table.
	ErrOffsets = errors.New("invalid newline offset table")
)
