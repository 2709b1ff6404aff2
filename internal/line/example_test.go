package line_test

import (
	"fmt"

	"gherkin/internal/line"
)

func ExampleLine_TableCells() {
	l := line.New(`      | name | pipe \| inside |`)
	for _, c := range l.TableCells() {
		fmt.Printf("%d %q\n", c.Column, c.Text)
	}
	// Output:
	// 9 "name"
	// 16 "pipe | inside"
}

func ExampleLine_Tags() {
	l := line.New("  @smoke @slow")
	fmt.Println(l.Indent(), l.Tags())
	// Output:
	// 2 [3:"@smoke" 10:"@slow"]
}
