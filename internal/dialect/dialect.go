package dialect

import (
	"slices"
)

// Category names a group of keywords in a dialect.
type Category string

const (
	Feature         Category = "feature"
	Rule            Category = "rule"
	Background      Category = "background"
	Scenario        Category = "scenario"
	ScenarioOutline Category = "scenarioOutline"
	Examples        Category = "examples"
	Given           Category = "given"
	When            Category = "when"
	Then            Category = "then"
	And             Category = "and"
	But             Category = "but"
)

// metadata keys holding plain strings instead of keyword lists
const (
	keyName   = "name"
	keyNative = "native"
)

var stepCategories = []Category{Given, When, Then, And, But}

// Dialect is the keyword table of one language. It is immutable.
type Dialect struct {
	code     string
	name     string
	native   string
	keywords map[Category][]string
}

// Code returns the lowercase language code.
func (d *Dialect) Code() string { return d.code }

// Name returns the English name of the language, if the data had one.
func (d *Dialect) Name() string { return d.name }

// Native returns the language's own name for itself, if the data had one.
func (d *Dialect) Native() string { return d.native }

// Keywords returns a copy of the keywords of cat in source order. The first
// one is canonical. Unknown categories yield nil.
func (d *Dialect) Keywords(cat Category) []string {
	return slices.Clone(d.keywords[cat])
}

// Has reports whether the dialect defines cat.
func (d *Dialect) Has(cat Category) bool {
	_, ok := d.keywords[cat]
	return ok
}

// Categories returns the defined categories in sorted order.
func (d *Dialect) Categories() []Category {
	out := make([]Category, 0, len(d.keywords))
	for c := range d.keywords {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (d *Dialect) FeatureKeywords() []string         { return d.Keywords(Feature) }
func (d *Dialect) RuleKeywords() []string            { return d.Keywords(Rule) }
func (d *Dialect) BackgroundKeywords() []string      { return d.Keywords(Background) }
func (d *Dialect) ScenarioKeywords() []string        { return d.Keywords(Scenario) }
func (d *Dialect) ScenarioOutlineKeywords() []string { return d.Keywords(ScenarioOutline) }
func (d *Dialect) ExamplesKeywords() []string        { return d.Keywords(Examples) }
func (d *Dialect) GivenKeywords() []string           { return d.Keywords(Given) }
func (d *Dialect) WhenKeywords() []string            { return d.Keywords(When) }
func (d *Dialect) ThenKeywords() []string            { return d.Keywords(Then) }
func (d *Dialect) AndKeywords() []string             { return d.Keywords(And) }
func (d *Dialect) ButKeywords() []string             { return d.Keywords(But) }

// StepKeywords returns the union of given, when, then, and and but keywords,
// in that order, without duplicates.
func (d *Dialect) StepKeywords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cat := range stepCategories {
		for _, kw := range d.keywords[cat] {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
