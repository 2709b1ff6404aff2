package dialect

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of dialect data.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported dialect file extension %q (expected .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

type rawDialects map[string]map[string]any

func decodeRaw(r io.Reader, format Format) (rawDialects, error) {
	var raw rawDialects
	switch format {
	case FormatJSON, FormatYAML:
		// JSON является подмножеством YAML, один декодер на оба формата
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty dialect data")
			}
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %d", format)
	}
	if len(raw) == 0 {
		return nil, errors.New("no languages defined")
	}
	return raw, nil
}

func buildDialects(raw rawDialects) (map[string]*Dialect, error) {
	out := make(map[string]*Dialect, len(raw))
	for code, table := range raw {
		key := strings.ToLower(strings.TrimSpace(code))
		if key == "" {
			return nil, errors.New("empty language code")
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate language code %q", key)
		}
		d, err := buildDialect(key, table)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", code, err)
		}
		out[key] = d
	}
	return out, nil
}

func buildDialect(code string, table map[string]any) (*Dialect, error) {
	d := &Dialect{
		code:     code,
		keywords: make(map[Category][]string, len(table)),
	}
	for cat, v := range table {
		if cat == keyName || cat == keyNative {
			s, err := metadataString(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cat, err)
			}
			if cat == keyName {
				d.name = s
			} else {
				d.native = s
			}
			continue
		}
		kws, err := keywordList(v)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat, err)
		}
		d.keywords[Category(cat)] = kws
	}
	return d, nil
}

func metadataString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []any:
		kws, err := keywordList(x)
		if err != nil || len(kws) == 0 {
			return "", errors.New("expected a string")
		}
		return kws[0], nil
	default:
		return "", fmt.Errorf("expected a string, got %T", v)
	}
}

func keywordList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of keywords, got %T", v)
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("keyword #%d: expected a string, got %T", i, it)
		}
		out = append(out, s)
	}
	return slices.Clip(out), nil
}
