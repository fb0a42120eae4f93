// Package element provides ready-made implementations of themecss.Element:
// a builder-style widget element and an adapter over parsed HTML nodes.
package element

import (
	"slices"
	"strings"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/internal/selector"
)

// Element identifies a toolkit widget for styling. It carries no layout or
// rendering state.
type Element struct {
	parent  *Element
	local   string
	id      string
	classes []string
	hover   bool
	active  bool
	focus   bool
}

// New returns an element of the given type name.
func New(local string) *Element {
	return &Element{local: local}
}

// Window returns a top-level window element.
func Window() *Element { return New("window") }

// Native returns an element backed by a native toolkit widget.
func Native() *Element { return New("native") }

// Label returns a text label element.
func Label() *Element { return New("label") }

// VBox returns a vertical box container.
func VBox() *Element { return New("vbox") }

// HBox returns a horizontal box container.
func HBox() *Element { return New("hbox") }

// Panel returns a panel container.
func Panel() *Element { return New("panel") }

// ID sets the element id.
func (e *Element) ID(id string) *Element {
	e.id = id
	return e
}

// Classes replaces the class set with the whitespace-separated names in
// classes.
func (e *Element) Classes(classes string) *Element {
	e.classes = e.classes[:0]
	for _, class := range strings.Fields(classes) {
		e.AddClass(class)
	}
	return e
}

// Hover sets the :hover state.
func (e *Element) Hover(on bool) *Element {
	e.hover = on
	return e
}

// Active sets the :active state.
func (e *Element) Active(on bool) *Element {
	e.active = on
	return e
}

// Focus sets the :focus state.
func (e *Element) Focus(on bool) *Element {
	e.focus = on
	return e
}

// Parent sets the parent element.
func (e *Element) Parent(parent *Element) *Element {
	e.parent = parent
	return e
}

// AttachParent sets the parent element.
func (e *Element) AttachParent(parent *Element) {
	e.parent = parent
}

// AddClass adds class if it is not already present.
func (e *Element) AddClass(class string) {
	if !slices.Contains(e.classes, class) {
		e.classes = append(e.classes, class)
	}
}

// RemoveClass removes class if present.
func (e *Element) RemoveClass(class string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == class })
}

// ToggleClass adds class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
	} else {
		e.RemoveClass(class)
	}
}

// HasClass reports whether class is in the class set.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// Compute solves the element against rules.
func (e *Element) Compute(rules *themecss.Rules) themecss.ComputedProperties {
	return rules.Solve(e)
}

// String renders the element and its ancestors as a selector,
// e.g. `window > label#title.big:hover`.
func (e *Element) String() string {
	var sb strings.Builder
	if e.parent != nil {
		sb.WriteString(e.parent.String())
		sb.WriteString(" > ")
	}
	sb.WriteString(e.local)
	if e.id != "" {
		sb.WriteString("#" + e.id)
	}
	for _, class := range e.classes {
		sb.WriteString("." + class)
	}
	if e.hover {
		sb.WriteString(":hover")
	}
	if e.active {
		sb.WriteString(":active")
	}
	if e.focus {
		sb.WriteString(":focus")
	}
	return sb.String()
}

// HasLocalName reports whether the element type is name.
func (e *Element) HasLocalName(name string) bool {
	return e.local == name
}

// AttributeMatches supports class membership and id equality.
func (e *Element) AttributeMatches(name string, op themecss.AttributeOperator) bool {
	switch {
	case name == "class" && op.Kind == selector.Contains:
		return e.HasClass(op.Value)
	case name == "id" && op.Kind == selector.Matches:
		return e.id != "" && e.id == op.Value
	}
	return false
}

// PseudoClassMatches reports the hover, active and focus states.
func (e *Element) PseudoClassMatches(class themecss.PseudoClass) bool {
	switch class {
	case selector.Hover:
		return e.hover
	case selector.Active:
		return e.active
	case selector.Focus:
		return e.focus
	}
	return false
}

// ParentElement returns the parent set with Parent or AttachParent.
func (e *Element) ParentElement() (themecss.Element, bool) {
	if e.parent == nil {
		return nil, false
	}
	return e.parent, true
}
