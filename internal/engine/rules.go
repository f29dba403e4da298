package engine

import (
	"fmt"
	"strings"
)

// Status labels.
const (
	StatusEmbedded     = "Embedded within MGE"
	CategoryTransposon = "Transposon-Associated"
	CategoryPlasmid    = "Plasmid-Associated"
	CategoryGeneric    = "MGE-Associated"
)

// Rule is one entry of the status taxonomy. Rules are evaluated top-down and
// the first whose Match returns true supplies the label.
type Rule struct {
	Name  string
	Match func(rel Relation, mgeName string) bool
	Label func(rel Relation) string
}

// EmbeddedRule matches any overlap regardless of the MGE name.
func EmbeddedRule() Rule {
	return Rule{
		Name:  "embedded",
		Match: func(rel Relation, _ string) bool { return rel.Embedded() },
		Label: func(Relation) string { return StatusEmbedded },
	}
}

// KeywordRule matches when the MGE name contains any of exact
// (case-sensitive) or any of folded (case-insensitive). The label is
// "<category> (<relation>)".
func KeywordRule(category string, exact, folded []string) Rule {
	lowered := make([]string, len(folded))
	for i, k := range folded {
		lowered[i] = strings.ToLower(k)
	}
	return Rule{
		Name: category,
		Match: func(_ Relation, name string) bool {
			for _, k := range exact {
				if strings.Contains(name, k) {
					return true
				}
			}
			if len(lowered) == 0 {
				return false
			}
			ln := strings.ToLower(name)
			for _, k := range lowered {
				if strings.Contains(ln, k) {
					return true
				}
			}
			return false
		},
		Label: categoryLabel(category),
	}
}

// FallbackRule matches everything.
func FallbackRule(category string) Rule {
	return Rule{
		Name:  category,
		Match: func(Relation, string) bool { return true },
		Label: categoryLabel(category),
	}
}

func categoryLabel(category string) func(Relation) string {
	return func(rel Relation) string { return fmt.Sprintf("%s (%s)", category, rel) }
}

// DefaultRules is the stock taxonomy.
func DefaultRules() []Rule {
	return []Rule{
		EmbeddedRule(),
		KeywordRule(CategoryTransposon, []string{"Transposase", "Integrase"}, nil),
		KeywordRule(CategoryPlasmid, []string{"rep"}, []string{"plasmid"}),
		FallbackRule(CategoryGeneric),
	}
}

// Classify returns the label of the first matching rule. A rule list
// without a catch-all falls back to the generic MGE category.
func Classify(rules []Rule, rel Relation, mgeName string) string {
	for _, r := range rules {
		if r.Match(rel, mgeName) {
			return r.Label(rel)
		}
	}
	return categoryLabel(CategoryGeneric)(rel)
}
