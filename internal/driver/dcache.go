package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"gherkin/internal/diag"
	"gherkin/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты токенизации на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of a TokenizeResult. Positions are stored
// without a FileID and re-anchored on load.
type DiskPayload struct {
	Schema   uint16
	Language string
	Tokens   []Token
	Diags    []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity diag.Severity
	Code     diag.Code
	Message  string
	Line     uint32
	Col      uint32
	Notes    []cachedNote
}

type cachedNote struct {
	Line uint32
	Col  uint32
	Msg  string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func newDiskPayload(res *TokenizeResult) *DiskPayload {
	payload := &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Language: res.Language,
		Tokens:   res.Tokens,
	}
	items := res.Bag.Items()
	payload.Diags = make([]cachedDiagnostic, len(items))
	for i, d := range items {
		cd := cachedDiagnostic{
			Severity: d.Severity,
			Code:     d.Code,
			Message:  d.Message,
			Line:     d.Primary.Line,
			Col:      d.Primary.Col,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Line: n.Pos.Line, Col: n.Pos.Col, Msg: n.Msg})
		}
		payload.Diags[i] = cd
	}
	return payload
}

// restore fills res from the payload. A payload that does not fit the file
// (wrong line count, positions past the end) is rejected and res is left as is.
func (p *DiskPayload) restore(res *TokenizeResult) error {
	lines := res.File.LineCount()
	if len(p.Tokens) != lines {
		return fmt.Errorf("cached %d lines, file has %d", len(p.Tokens), lines)
	}
	limit, err := safecast.Conv[uint32](max(lines, 1))
	if err != nil {
		return err
	}
	pos := func(line, col uint32) (source.Position, error) {
		if line > limit {
			return source.Position{}, fmt.Errorf("cached position %d:%d is past line %d", line, col, limit)
		}
		return source.Position{File: res.File.ID, LineCol: source.LineCol{Line: line, Col: col}}, nil
	}

	diags := make([]diag.Diagnostic, 0, len(p.Diags))
	for _, cd := range p.Diags {
		primary, err := pos(cd.Line, cd.Col)
		if err != nil {
			return err
		}
		d := diag.New(cd.Severity, cd.Code, primary, cd.Message)
		for _, n := range cd.Notes {
			at, err := pos(n.Line, n.Col)
			if err != nil {
				return err
			}
			d = d.WithNote(at, n.Msg)
		}
		diags = append(diags, d)
	}

	res.Cached = true
	res.Language = p.Language
	res.Tokens = p.Tokens
	for _, d := range diags {
		res.Bag.Add(d)
	}
	return nil
}
