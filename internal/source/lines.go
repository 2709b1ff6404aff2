package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineCount returns the number of physical lines. A trailing newline does not
// open a new line; empty content has no lines.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx)
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) из файла без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// Lines returns every physical line of the file without terminators.
func (f *File) Lines() []string {
	n := f.LineCount()
	out := make([]string, 0, n)
	start := 0
	for _, nl := range f.LineIdx {
		out = append(out, string(f.Content[start:nl]))
		start = int(nl) + 1
	}
	if start < len(f.Content) {
		out = append(out, string(f.Content[start:]))
	}
	return out
}

// Pos builds a Position in this file.
func (f *File) Pos(line, col int) Position {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	c, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return Position{File: f.ID, LineCol: LineCol{Line: l, Col: c}}
}
