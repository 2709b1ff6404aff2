package dialect

import (
	"errors"
	"fmt"

	"gherkin/internal/source"
)

// ErrNoSuchLanguage matches every NoSuchLanguageError via errors.Is.
var ErrNoSuchLanguage = errors.New("language not supported")

// NoSuchLanguageError reports a lookup of a code the registry does not know.
type NoSuchLanguageError struct {
	Code string
	// Location is where the code was requested, if known. It only serves
	// error reporting.
	Location *source.LineCol
}

func (e *NoSuchLanguageError) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("(%s): %s: %s", e.Location, ErrNoSuchLanguage, e.Code)
	}
	return fmt.Sprintf("%s: %s", ErrNoSuchLanguage, e.Code)
}

func (e *NoSuchLanguageError) Is(target error) bool {
	return target == ErrNoSuchLanguage
}

// LoadError is returned when dialect data is missing or malformed. It is a
// configuration error: nothing can be looked up until it is fixed.
type LoadError struct {
	Source string // file name or "builtin"
	err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dialects from %s: %s", e.Source, e.err)
}

func (e *LoadError) Unwrap() error { return e.err }

func loadErrorf(src, format string, args ...any) *LoadError {
	return &LoadError{Source: src, err: fmt.Errorf(format, args...)}
}
