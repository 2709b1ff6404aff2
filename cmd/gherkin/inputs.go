package main

import (
	"fmt"
	"os"
	"sort"

	"gherkin/internal/driver"
)

// expandInputs turns file and directory arguments into a sorted, duplicate
// free list of files. Directories contribute their *.feature files.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	seen := make(map[string]struct{})
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		found := []string{arg}
		if st.IsDir() {
			if found, err = driver.ListFeatureFiles(arg); err != nil {
				return nil, err
			}
		}
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}
