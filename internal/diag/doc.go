// Package diag defines the diagnostic model shared by the tokenizer driver and
// the CLI.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string ID (LIN1001, DLC2001, ...), a message, the primary source.Position and
// optional notes. Producers emit through a Reporter so that storage stays
// decoupled: BagReporter collects into a bounded Bag, DedupReporter filters
// repeats, NopReporter drops everything.
//
// Package diag does no terminal formatting; that lives in internal/diagfmt.
// FormatShortDiagnostics is the one exception, a stable single-line form used
// by tests and the --quiet CLI mode.
package diag
