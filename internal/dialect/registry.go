package dialect

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gherkin/internal/source"
)

// DefaultCode is the language used when a document declares none.
const DefaultCode = "en"

// Registry maps language codes to dialects. It is immutable after loading.
type Registry struct {
	dialects    map[string]*Dialect
	languages   []string // отсортированы
	defaultCode string
	source      string
	fingerprint [32]byte
}

type options struct {
	defaultCode string
}

// Option configures Load.
type Option func(*options)

// WithDefault sets the code returned by DefaultDialect.
func WithDefault(code string) Option {
	return func(o *options) {
		if code = strings.TrimSpace(code); code != "" {
			o.defaultCode = strings.ToLower(code)
		}
	}
}

// Load decodes dialect data from r. name identifies the data in errors.
func Load(r io.Reader, name string, format Format, opts ...Option) (*Registry, error) {
	if r == nil {
		return nil, loadErrorf(name, "no data source")
	}
	raw, err := decodeRaw(r, format)
	if err != nil {
		return nil, &LoadError{Source: name, err: fmt.Errorf("decode %s: %w", format, err)}
	}
	dialects, err := buildDialects(raw)
	if err != nil {
		return nil, &LoadError{Source: name, err: err}
	}

	o := options{defaultCode: DefaultCode}
	for _, opt := range opts {
		opt(&o)
	}

	reg := &Registry{
		dialects:    dialects,
		languages:   make([]string, 0, len(dialects)),
		defaultCode: o.defaultCode,
		source:      name,
	}
	for code := range dialects {
		reg.languages = append(reg.languages, code)
	}
	slices.Sort(reg.languages)
	reg.fingerprint = reg.computeFingerprint()
	return reg, nil
}

// LoadFile loads dialect data from a JSON, YAML or TOML file.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &LoadError{Source: path, err: err}
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, err: err}
	}
	defer f.Close()
	return Load(f, path, format, opts...)
}

// Dialect returns the dialect for code. loc is only used in the error.
func (r *Registry) Dialect(code string, loc *source.LineCol) (*Dialect, error) {
	d, ok := r.dialects[strings.ToLower(code)]
	if !ok {
		return nil, &NoSuchLanguageError{Code: code, Location: loc}
	}
	return d, nil
}

// DefaultDialect returns the dialect of the configured default code.
func (r *Registry) DefaultDialect() (*Dialect, error) {
	return r.Dialect(r.defaultCode, nil)
}

// DefaultCode returns the configured default language code.
func (r *Registry) DefaultCode() string { return r.defaultCode }

// Languages returns all codes, sorted. The slice is a copy.
func (r *Registry) Languages() []string {
	return slices.Clone(r.languages)
}

// Len returns the number of languages.
func (r *Registry) Len() int { return len(r.languages) }

// Source names where the data was loaded from.
func (r *Registry) Source() string { return r.source }

// Fingerprint is a digest of the loaded keyword tables. Two registries with
// equal content have equal fingerprints regardless of source format.
func (r *Registry) Fingerprint() [32]byte { return r.fingerprint }

func (r *Registry) computeFingerprint() [32]byte {
	h := sha256.New()
	for _, code := range r.languages {
		d := r.dialects[code]
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00", code, d.name, d.native)
		for _, cat := range d.Categories() {
			fmt.Fprintf(h, "%s\x01%s\x02", cat, strings.Join(d.keywords[cat], "\x03"))
		}
		h.Write([]byte{'\n'})
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
