package element

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/internal/selector"
)

// HTMLState marks the nodes that are hovered, active or focused.
// A nil *HTMLState marks nothing.
type HTMLState struct {
	Hover  *html.Node
	Active *html.Node
	Focus  *html.Node
}

// HTML adapts an element node of a parsed HTML document to themecss.Element.
type HTML struct {
	Node  *html.Node
	State *HTMLState
}

// NewHTML wraps n. It returns false when n is not an element node.
func NewHTML(n *html.Node, state *HTMLState) (HTML, bool) {
	if n == nil || n.Type != html.ElementNode {
		return HTML{}, false
	}
	return HTML{Node: n, State: state}, true
}

// ParseHTML parses an HTML document and returns its element nodes in
// document order.
func ParseHTML(r io.Reader) ([]HTML, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return WalkHTML(doc, nil), nil
}

// WalkHTML returns every element node below root, root included, in
// document order.
func WalkHTML(root *html.Node, state *HTMLState) []HTML {
	var out []HTML
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if e, ok := NewHTML(n, state); ok {
			out = append(out, e)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

func (h HTML) attr(name string) (string, bool) {
	for _, a := range h.Node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// HasLocalName compares the tag name case-insensitively.
func (h HTML) HasLocalName(name string) bool {
	return strings.EqualFold(h.Node.Data, name)
}

// AttributeMatches tests the node attribute name with op.
func (h HTML) AttributeMatches(name string, op themecss.AttributeOperator) bool {
	value, ok := h.attr(name)
	return ok && op.Match(value)
}

// PseudoClassMatches supports :first-child, :link and the states in State.
func (h HTML) PseudoClassMatches(class themecss.PseudoClass) bool {
	switch class {
	case selector.FirstChild:
		for s := h.Node.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode {
				return false
			}
		}
		return h.Node.Parent != nil
	case selector.Link:
		_, hasHref := h.attr("href")
		return hasHref && (h.Node.Data == "a" || h.Node.Data == "area" || h.Node.Data == "link")
	case selector.Hover:
		return h.State != nil && h.State.Hover == h.Node
	case selector.Active:
		return h.State != nil && h.State.Active == h.Node
	case selector.Focus:
		return h.State != nil && h.State.Focus == h.Node
	}
	return false
}

// ParentElement returns the nearest element ancestor.
func (h HTML) ParentElement() (themecss.Element, bool) {
	for p := h.Node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return HTML{Node: p, State: h.State}, true
		}
	}
	return nil, false
}

// String renders the node as `tag#id.class`.
func (h HTML) String() string {
	var sb strings.Builder
	sb.WriteString(h.Node.Data)
	if id, ok := h.attr("id"); ok && id != "" {
		sb.WriteString("#" + id)
	}
	if class, ok := h.attr("class"); ok {
		for _, c := range strings.Fields(class) {
			sb.WriteString("." + c)
		}
	}
	return sb.String()
}
