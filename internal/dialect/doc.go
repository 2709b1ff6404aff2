// Package dialect maps Gherkin language codes to their localized keywords.
//
// A Registry is loaded once, from the built-in data or from a user supplied
// JSON, YAML or TOML file, and is read-only afterwards: it may be shared by
// any number of goroutines without locking. Loading is the only step that can
// fail with a configuration error (LoadError); afterwards the only failure is
// a lookup of an unknown code (NoSuchLanguageError).
//
// Data shape, regardless of format:
//
//	<code>:
//	  <category>: [<keyword>, ...]   # first keyword is canonical
//	  name: <english name>           # optional, plain string
//	  native: <native name>          # optional, plain string
//
// Category names are kept as opaque strings; the well-known ones are exported
// as Category constants for convenience only.
package dialect
