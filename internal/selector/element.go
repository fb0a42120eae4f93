package selector

import "strings"

// OperatorKind is the comparison an attribute selector performs.
type OperatorKind int

const (
	// Exists matches `[attr]`.
	Exists OperatorKind = iota
	// Matches matches `[attr=value]` and `#id`.
	Matches
	// Contains matches `[attr~=value]` and `.class`: value is one of the
	// whitespace-separated words of the attribute.
	Contains
	// StartsWith matches `[attr|=value]`: value exactly or value followed by '-'.
	StartsWith
)

// AttributeOperator is passed to Element.AttributeMatches.
type AttributeOperator struct {
	Kind  OperatorKind
	Value string
}

// Match applies the operator to a concrete attribute value.
// Implementations of Element backed by real attribute strings can delegate here.
func (op AttributeOperator) Match(value string) bool {
	switch op.Kind {
	case Exists:
		return true
	case Matches:
		return value == op.Value
	case Contains:
		for _, word := range strings.Fields(value) {
			if word == op.Value {
				return true
			}
		}
		return false
	case StartsWith:
		return value == op.Value || strings.HasPrefix(value, op.Value+"-")
	}
	return false
}

func (op AttributeOperator) String() string {
	switch op.Kind {
	case Matches:
		return "=" + quote(op.Value)
	case Contains:
		return "~=" + quote(op.Value)
	case StartsWith:
		return "|=" + quote(op.Value)
	default:
		return ""
	}
}

// PseudoClass is a supported non-functional pseudo-class.
type PseudoClass int

const (
	FirstChild PseudoClass = iota
	Link
	Visited
	Hover
	Active
	Focus
)

var pseudoClassNames = [...]string{
	FirstChild: "first-child",
	Link:       "link",
	Visited:    "visited",
	Hover:      "hover",
	Active:     "active",
	Focus:      "focus",
}

// LookupPseudoClass resolves a pseudo-class name without the leading colon.
func LookupPseudoClass(name string) (PseudoClass, bool) {
	for pc, n := range pseudoClassNames {
		if strings.EqualFold(n, name) {
			return PseudoClass(pc), true
		}
	}
	return 0, false
}

func (p PseudoClass) String() string {
	if p < 0 || int(p) >= len(pseudoClassNames) {
		return "unknown"
	}
	return pseudoClassNames[p]
}

// Element is the query surface a selector is matched against.
//
// It is owned and implemented by the embedding application. Implementations
// must be read-only: matching never mutates an element.
type Element interface {
	// HasLocalName reports whether the element type name equals name.
	HasLocalName(name string) bool
	// AttributeMatches tests attribute name with op. Class selectors arrive as
	// ("class", Contains), id selectors as ("id", Matches).
	AttributeMatches(name string, op AttributeOperator) bool
	// PseudoClassMatches reports whether the element is in the given state.
	PseudoClassMatches(class PseudoClass) bool
	// ParentElement returns the immediate ancestor, or false at the root.
	ParentElement() (Element, bool)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
