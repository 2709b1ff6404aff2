package driver

import "gherkin/internal/line"

// Kind is the class of a physical line, picked the way a document parser
// would pick its tokenizer call.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindComment
	KindLanguage // "# language: xx"
	KindTag
	KindTableRow
	KindDocStringFence
	KindDocString // line inside a doc string, passed through
	KindOther
)

var kindNames = [...]string{
	KindEmpty:          "empty",
	KindComment:        "comment",
	KindLanguage:       "language",
	KindTag:            "tags",
	KindTableRow:       "row",
	KindDocStringFence: "fence",
	KindDocString:      "docstring",
	KindOther:          "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one classified line.
type Token struct {
	Line     int         `msgpack:"l" json:"line"`
	Kind     Kind        `msgpack:"k" json:"-"`
	Indent   int         `msgpack:"i" json:"indent"`
	Text     string      `msgpack:"t" json:"text"`
	Language string      `msgpack:"g,omitempty" json:"language,omitempty"`
	Tags     []line.Span `msgpack:"a,omitempty" json:"tags,omitempty"`
	Cells    []line.Span `msgpack:"c,omitempty" json:"cells,omitempty"`
}
