package driver

import (
	"context"
	"fmt"
	"strconv"

	"gherkin/internal/diag"
	"gherkin/internal/dialect"
	"gherkin/internal/observ"
	"gherkin/internal/source"
	"gherkin/internal/trace"
)

// Options configure Tokenize and TokenizeDir.
type Options struct {
	// Registry resolves language markers. nil uses dialect.Builtin().
	Registry *dialect.Registry
	// Language is the dialect in effect before any marker. "" uses the
	// registry default.
	Language       string
	MaxDiagnostics int
	NFC            bool
	Cache          *DiskCache
	// Timings appends an ObsTimings diagnostic to every result.
	Timings bool
	// Progress receives per-file events from TokenizeFiles.
	Progress ProgressSink
}

type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Language string // dialect in effect at the end of the file
	Tokens   []Token
	Bag      *diag.Bag
	Cached   bool
}

// Tokenize loads path and classifies its lines.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.LoadWithOptions(path, source.LoadOptions{NFC: opts.NFC})
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, fileID, opts)
}

// TokenizeFile classifies the lines of a file already in fs.
func TokenizeFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	reg, start, err := opts.resolveDialect()
	if err != nil {
		return nil, err
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "tokenize", trace.CurrentSpan(ctx).SpanID)
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	key := cacheKey(file.Hash, reg.Fingerprint(), start.Code(), opts.MaxDiagnostics)

	if opts.Cache != nil {
		done := timer.Track("cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			// битый файл кэша просто пересчитываем
			trace.Error(tr, "cache_get", err)
		}
		if hit && payload.Schema == diskCacheSchemaVersion {
			if err := payload.restore(res); err != nil {
				trace.Error(tr, "cache_restore", err)
			}
		}
		if res.Cached {
			trace.Point(tr, trace.ScopeFile, "cache_hit", file.Path, span.ID())
			done("hit")
		} else {
			trace.Point(tr, trace.ScopeFile, "cache_miss", file.Path, span.ID())
			done("miss")
		}
	}

	if !res.Cached {
		done := timer.Track("tokenize")
		sc := newScanner(file, reg, start, diag.BagReporter{Bag: res.Bag}, tr, span.ID())
		if err := sc.run(ctx); err != nil {
			span.End("cancelled")
			return nil, err
		}
		res.Tokens = sc.tokens
		res.Language = sc.dialect.Code()
		done(fmt.Sprintf("%d lines", len(res.Tokens)))

		if opts.Cache != nil {
			if err := opts.Cache.Put(key, newDiskPayload(res)); err != nil {
				trace.Error(tr, "cache_put", err)
			}
		}
	}

	if timer != nil {
		appendTimingDiagnostic(res.Bag, file, timer.Report())
	}
	span.WithExtra("lines", strconv.Itoa(len(res.Tokens))).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End(file.Path)
	return res, nil
}

func (o Options) resolveDialect() (*dialect.Registry, *dialect.Dialect, error) {
	reg := o.Registry
	if reg == nil {
		var err error
		if reg, err = dialect.Builtin(); err != nil {
			return nil, nil, err
		}
	}
	if o.Language == "" {
		d, err := reg.DefaultDialect()
		return reg, d, err
	}
	d, err := reg.Dialect(o.Language, nil)
	return reg, d, err
}
