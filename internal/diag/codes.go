package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Строки и таблицы
	LineInfo               Code = 1000
	LineDanglingEscape     Code = 1001
	TableCellCountMismatch Code = 1002

	// Диалекты
	DialectInfo            Code = 2000
	DialectUnknownLanguage Code = 2001
	DialectLoadFailed      Code = 2002

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LineInfo:               "Line information",
	LineDanglingEscape:     "Table row ends with an unfinished escape",
	TableCellCountMismatch: "Table rows have different cell counts",
	DialectInfo:            "Dialect information",
	DialectUnknownLanguage: "Unknown language",
	DialectLoadFailed:      "Dialect data could not be loaded",
	IOLoadFileError:        "I/O load file error",
	ObsInfo:                "Observability information",
	ObsTimings:             "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LIN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DLC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
