package project

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied when neither the manifest nor a flag sets a value.
const (
	DefaultLanguage       = "en"
	DefaultMaxDiagnostics = 100
)

// Manifest is a parsed gherkin.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Dialect  DialectConfig  `toml:"dialect"`
	Tokenize TokenizeConfig `toml:"tokenize"`
}

type DialectConfig struct {
	Default string `toml:"default"`
	File    string `toml:"file"` // relative to the manifest
}

type TokenizeConfig struct {
	Jobs           int   `toml:"jobs"`
	MaxDiagnostics int   `toml:"max_diagnostics"`
	Cache          *bool `toml:"cache"`
	NFC            bool  `toml:"nfc"`
}

// LoadManifest finds gherkin.toml above startDir and parses it. ok is false
// when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("dialect", "default") && strings.TrimSpace(cfg.Dialect.Default) == "" {
		return Config{}, fmt.Errorf("%s: [dialect].default is empty", path)
	}
	if meta.IsDefined("dialect", "file") && strings.TrimSpace(cfg.Dialect.File) == "" {
		return Config{}, fmt.Errorf("%s: [dialect].file is empty", path)
	}
	if cfg.Tokenize.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [tokenize].jobs must be >= 0", path)
	}
	if cfg.Tokenize.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [tokenize].max_diagnostics must be >= 0", path)
	}
	if !meta.IsDefined("tokenize", "max_diagnostics") {
		cfg.Tokenize.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return cfg, nil
}

// Settings are the effective options after defaults, manifest and flags.
type Settings struct {
	Language       string
	DialectFile    string // absolute, or empty for the builtin dialects
	Jobs           int
	MaxDiagnostics int
	Cache          bool
	NFC            bool
}

// Overrides carries the flags the user set explicitly. nil means unset.
type Overrides struct {
	Language       *string
	DialectFile    *string
	Jobs           *int
	MaxDiagnostics *int
	NoCache        bool
	NFC            *bool
}

// Resolve merges the manifest (which may be nil) with flag overrides.
func Resolve(m *Manifest, o Overrides) Settings {
	s := Settings{
		Language:       DefaultLanguage,
		MaxDiagnostics: DefaultMaxDiagnostics,
		Cache:          true,
	}
	if m != nil {
		c := m.Config
		if c.Dialect.Default != "" {
			s.Language = strings.TrimSpace(c.Dialect.Default)
		}
		if c.Dialect.File != "" {
			s.DialectFile = filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(c.Dialect.File)))
		}
		s.Jobs = c.Tokenize.Jobs
		s.MaxDiagnostics = c.Tokenize.MaxDiagnostics
		if c.Tokenize.Cache != nil {
			s.Cache = *c.Tokenize.Cache
		}
		s.NFC = c.Tokenize.NFC
	}

	if o.Language != nil && *o.Language != "" {
		s.Language = *o.Language
	}
	if o.DialectFile != nil && *o.DialectFile != "" {
		if abs, err := filepath.Abs(*o.DialectFile); err == nil {
			s.DialectFile = abs
		} else {
			s.DialectFile = *o.DialectFile
		}
	}
	if o.Jobs != nil {
		s.Jobs = *o.Jobs
	}
	if o.MaxDiagnostics != nil {
		s.MaxDiagnostics = *o.MaxDiagnostics
	}
	if o.NoCache {
		s.Cache = false
	}
	if o.NFC != nil {
		s.NFC = *o.NFC
	}
	if s.Jobs <= 0 {
		s.Jobs = runtime.GOMAXPROCS(0)
	}
	return s
}
