package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"gherkin/internal/dialect"
)

// DialectOutput is the serialisable form of one dialect.
type DialectOutput struct {
	Code     string              `json:"code" yaml:"code"`
	Name     string              `json:"name,omitempty" yaml:"name,omitempty"`
	Native   string              `json:"native,omitempty" yaml:"native,omitempty"`
	Keywords map[string][]string `json:"keywords" yaml:"keywords"`
}

func buildDialect(d *dialect.Dialect) DialectOutput {
	out := DialectOutput{
		Code:     d.Code(),
		Name:     d.Name(),
		Native:   d.Native(),
		Keywords: make(map[string][]string),
	}
	for _, cat := range d.Categories() {
		out.Keywords[string(cat)] = d.Keywords(cat)
	}
	return out
}

// FormatDialectPretty prints a keyword table, one category per line.
// Keywords are quoted so that trailing spaces stay visible.
func FormatDialectPretty(w io.Writer, d *dialect.Dialect) error {
	header := d.Code()
	if d.Name() != "" {
		header += " " + d.Name()
		if d.Native() != "" && d.Native() != d.Name() {
			header += " / " + d.Native()
		}
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	width := 0
	cats := d.Categories()
	for _, c := range cats {
		width = max(width, len(c))
	}
	for _, c := range cats {
		quoted := make([]string, 0)
		for _, kw := range d.Keywords(c) {
			quoted = append(quoted, fmt.Sprintf("%q", kw))
		}
		if _, err := fmt.Fprintf(w, "  %-*s  %s\n", width, c, strings.Join(quoted, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatDialectJSON writes the dialect as indented JSON.
func FormatDialectJSON(w io.Writer, d *dialect.Dialect) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildDialect(d))
}

// FormatDialectYAML writes the dialect as YAML.
func FormatDialectYAML(w io.Writer, d *dialect.Dialect) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildDialect(d)); err != nil {
		return err
	}
	return enc.Close()
}

// FormatLanguages lists the registry codes, one per line. verbose adds the
// names.
func FormatLanguages(w io.Writer, reg *dialect.Registry, verbose bool) error {
	for _, code := range reg.Languages() {
		line := code
		if verbose {
			d, err := reg.Dialect(code, nil)
			if err != nil {
				return err
			}
			line = fmt.Sprintf("%-8s %s", code, d.Name())
			if d.Native() != "" && d.Native() != d.Name() {
				line += " (" + d.Native() + ")"
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
