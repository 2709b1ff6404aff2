package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addInlineSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.feature файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".feature") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addInlineSeeds covers the corners a random corpus rarely reaches.
func addInlineSeeds(f *testing.F) {
	for _, s := range []string{
		"",
		"\n",
		"Feature: x\n",
		"| a | b |\n| c |\n",
		"  | x \\\n",
		"| a\\|b | \\\\ | \\n |\n",
		"@a @b\t@c\n",
		"\"\"\"\n| inside\n\"\"\"\n",
		"```\n# language: fr\n",
		"# language: zz\n| a |\n",
		"#language:ru\nФункция: x\n",
		"　| 東京 | Zoë |\n",
		"\xff\xfe| \x80 |\n",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
