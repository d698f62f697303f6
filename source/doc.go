// Package source maps byte offsets in an immutable block of source text to
// lines, columns, character offsets, and code-unit offsets under a target
// text encoding.
//
// # Overview
//
// A parsing front end constructs one Source per input buffer and attaches a
// Location to every node, token, and comment span it discovers. Downstream
// consumers (formatters, diagnostics, language-server position translators)
// query those Locations, which delegate to the owning Source.
//
// Four coordinate systems interoperate:
//
//   - byte offset: raw index into the buffer
//   - line and byte column: derived from a sorted newline-offset table
//   - character offset and column: measured in decoded codepoints
//   - code-unit offset and column: measured in the storage units of a
//     target encoding such as UTF-16
//
// Line lookup is a binary search over the newline table, O(log k) in the
// number of lines. Character and code-unit queries decode forward from the
// start of the buffer; CodeUnitsCache amortizes repeated queries issued in
// non-decreasing offset order, the dominant access pattern during a tree
// walk.
//
// Buffers verified to contain only ASCII bytes take a fast path where every
// character and code-unit query collapses to byte arithmetic.
package source
