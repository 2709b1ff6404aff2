// Package line tokenizes a single physical line of a feature file.
//
// A Line is built once per source line and never changes afterwards. It knows
// its indentation (counted in Unicode code points, so astral characters count
// as one column), its left-trimmed text, and can split itself into positioned
// spans: whitespace separated tags and pipe delimited table cells.
//
// Invariants:
//   - Span.Column is 1-based and counts code points from the start of the raw
//     line, indentation included.
//   - Table cell text is escape-decoded and trimmed; tag text is never altered.
//   - No operation allocates shared state; a Line may be used from several
//     goroutines at once.
//
// The package does not recognise keywords or build any tree. Callers decide
// which extraction to run from the grammatical context they are in.
package line
