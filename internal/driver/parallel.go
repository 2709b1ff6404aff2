package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"gherkin/internal/diag"
	"gherkin/internal/source"
	"gherkin/internal/trace"
)

// FeatureExt is the extension TokenizeDir looks for.
const FeatureExt = ".feature"

// ListFeatureFiles возвращает отсортированный список всех *.feature файлов в директории
func ListFeatureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), FeatureExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.feature файлы в директории параллельно.
// Results follow the sorted file order. A file that fails to load yields a
// result with no tokens and an IOLoadFileError diagnostic.
func TokenizeDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []*TokenizeResult, error) {
	files, err := ListFeatureFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return TokenizeFiles(ctx, dir, files, opts, jobs)
}

// TokenizeFiles is TokenizeDir over an explicit file list. Paths are shown
// relative to baseDir.
func TokenizeFiles(ctx context.Context, baseDir string, files []string, opts Options, jobs int) (*source.FileSet, []*TokenizeResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Registry резолвим один раз до запуска горутин
	reg, _, err := opts.resolveDialect()
	if err != nil {
		return nil, nil, err
	}
	opts.Registry = reg

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "tokenize_files", trace.CurrentSpan(ctx).SpanID)
	defer span.WithExtra("files", strconv.Itoa(len(files))).End(baseDir)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.LoadWithOptions(path, source.LoadOptions{NFC: opts.NFC})
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
		emitProgress(opts.Progress, path, StatusQueued, 0)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*TokenizeResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emitProgress(opts.Progress, files[i], StatusWorking, 0)
			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Position{File: fileIDs[i]},
					"failed to load file: "+loadErr.Error()))
				trace.Error(tr, "load", loadErr)
				results[i] = &TokenizeResult{
					FileSet: fileSet,
					File:    fileSet.Get(fileIDs[i]),
					Bag:     bag,
				}
				emitProgress(opts.Progress, files[i], StatusError, 0)
				return nil
			}

			res, err := TokenizeFile(gctx, fileSet, fileIDs[i], opts)
			if err != nil {
				emitProgress(opts.Progress, files[i], StatusError, 0)
				return err
			}
			results[i] = res
			emitProgress(opts.Progress, files[i], resultStatus(res), len(res.Tokens))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
