package diagfmt

import (
	"path/filepath"

	"gherkin/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	var p string
	switch mode {
	case PathModeAbsolute:
		p = f.FormatPath("absolute", "")
	case PathModeRelative:
		p = f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		p = f.FormatPath("basename", "")
	default:
		p = f.FormatPath("auto", "")
	}
	return filepath.ToSlash(p)
}
