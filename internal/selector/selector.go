// Package selector parses the selector subset understood by themecss and
// matches it against any type implementing Element.
package selector

import (
	"strings"
)

// Combinator relates a compound to the compound on its left.
type Combinator int

const (
	// None marks the leftmost compound.
	None Combinator = iota
	// Descendant is whitespace: `window label`.
	Descendant
	// Child is `>`: `window > label`.
	Child
)

// Attribute is one attribute test of a compound. Class and id selectors are
// stored as attributes too.
type Attribute struct {
	Name     string
	Operator AttributeOperator
}

// Compound is a sequence of simple selectors without combinators,
// e.g. `label#title.big:hover`.
type Compound struct {
	Local         string // type name; empty for `*` or when omitted
	Attributes    []Attribute
	PseudoClasses []PseudoClass
	Combinator    Combinator
}

// ID returns the value of the first `#id` test, if any.
func (c Compound) ID() (string, bool) {
	for _, a := range c.Attributes {
		if a.Name == "id" && a.Operator.Kind == Matches {
			return a.Operator.Value, true
		}
	}
	return "", false
}

// Classes returns the `.class` tests in source order.
func (c Compound) Classes() []string {
	var classes []string
	for _, a := range c.Attributes {
		if a.Name == "class" && a.Operator.Kind == Contains {
			classes = append(classes, a.Operator.Value)
		}
	}
	return classes
}

func (c Compound) matches(e Element) bool {
	if c.Local != "" && !e.HasLocalName(c.Local) {
		return false
	}
	for _, a := range c.Attributes {
		if !e.AttributeMatches(a.Name, a.Operator) {
			return false
		}
	}
	for _, pc := range c.PseudoClasses {
		if !e.PseudoClassMatches(pc) {
			return false
		}
	}
	return true
}

func (c Compound) String() string {
	var sb strings.Builder
	if c.Local != "" {
		sb.WriteString(c.Local)
	}
	for _, a := range c.Attributes {
		switch {
		case a.Name == "id" && a.Operator.Kind == Matches:
			sb.WriteString("#" + a.Operator.Value)
		case a.Name == "class" && a.Operator.Kind == Contains:
			sb.WriteString("." + a.Operator.Value)
		default:
			sb.WriteString("[" + a.Name + a.Operator.String() + "]")
		}
	}
	for _, pc := range c.PseudoClasses {
		sb.WriteString(":" + pc.String())
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Specificity is (id count, class/attribute/pseudo-class count, type count).
type Specificity [3]int

// Selector is a complex selector: compounds joined by combinators.
// A Selector owns its strings and is safe to share between goroutines.
type Selector struct {
	raw       string
	compounds []Compound
	spec      Specificity
}

// String returns the selector text as written, whitespace-normalized.
func (s Selector) String() string {
	return s.raw
}

// Compounds returns the compounds from left to right.
func (s Selector) Compounds() []Compound {
	out := make([]Compound, len(s.compounds))
	copy(out, s.compounds)
	return out
}

// Specificity returns the specificity computed at parse time.
func (s Selector) Specificity() Specificity {
	return s.spec
}

// Matches reports whether e is matched by the selector.
func (s Selector) Matches(e Element) bool {
	if len(s.compounds) == 0 || e == nil {
		return false
	}
	return matchAt(s.compounds, len(s.compounds)-1, e)
}

// matchAt matches compounds[i] against e and then walks ancestors for the
// compounds to the left.
func matchAt(compounds []Compound, i int, e Element) bool {
	c := compounds[i]
	if !c.matches(e) {
		return false
	}
	if i == 0 {
		return true
	}
	switch c.Combinator {
	case Child:
		parent, ok := e.ParentElement()
		return ok && matchAt(compounds, i-1, parent)
	case Descendant:
		for parent, ok := e.ParentElement(); ok; parent, ok = parent.ParentElement() {
			if matchAt(compounds, i-1, parent) {
				return true
			}
		}
	}
	return false
}

func computeSpecificity(compounds []Compound) Specificity {
	var spec Specificity
	for _, c := range compounds {
		if c.Local != "" {
			spec[2]++
		}
		for _, a := range c.Attributes {
			if a.Name == "id" {
				spec[0]++
			} else {
				spec[1]++
			}
		}
		spec[1] += len(c.PseudoClasses)
	}
	return spec
}
