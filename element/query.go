package element

import (
	"errors"
	"fmt"

	"github.com/yacobolo/themecss/internal/selector"
)

// ErrInvalidQuery is wrapped by every error returned from Parse.
var ErrInvalidQuery = errors.New("invalid element query")

// Parse builds an element chain from a selector-like query such as
// `window > vbox label#title.big:hover`. Each compound must name an element
// type and may only use ids, classes and the hover, active and focus states.
// Both combinators link to the parent. The innermost element is returned.
func Parse(query string) (*Element, error) {
	sel, err := selector.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var current *Element
	for _, c := range sel.Compounds() {
		if c.Local == "" {
			return nil, fmt.Errorf("%w: %q has no element name", ErrInvalidQuery, c.String())
		}
		e := New(c.Local).Parent(current)
		for _, a := range c.Attributes {
			switch {
			case a.Name == "id" && a.Operator.Kind == selector.Matches:
				e.ID(a.Operator.Value)
			case a.Name == "class" && a.Operator.Kind == selector.Contains:
				e.AddClass(a.Operator.Value)
			default:
				return nil, fmt.Errorf("%w: attribute [%s] is not supported", ErrInvalidQuery, a.Name)
			}
		}
		for _, pc := range c.PseudoClasses {
			switch pc {
			case selector.Hover:
				e.Hover(true)
			case selector.Active:
				e.Active(true)
			case selector.Focus:
				e.Focus(true)
			default:
				return nil, fmt.Errorf("%w: state :%s is not supported", ErrInvalidQuery, pc)
			}
		}
		current = e
	}
	return current, nil
}
