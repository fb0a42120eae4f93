package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrInvalidSelector is wrapped by every error returned from Parse and ParseList.
var ErrInvalidSelector = errors.New("invalid selector")

type token struct {
	tt   css.TokenType
	data string
}

// Parse parses a single complex selector such as `window > label.title:hover`.
func Parse(text string) (Selector, error) {
	list, err := ParseList(text)
	if err != nil {
		return Selector{}, err
	}
	if len(list) != 1 {
		return Selector{}, fmt.Errorf("%w: expected one selector in %q, got %d", ErrInvalidSelector, text, len(list))
	}
	return list[0], nil
}

// ParseList parses a comma-separated selector list. Any invalid member makes
// the whole list invalid.
func ParseList(text string) ([]Selector, error) {
	tokens := tokenize(text)

	var (
		list    []Selector
		current []token
	)
	for _, tok := range tokens {
		if tok.tt == css.CommaToken {
			sel, err := parseSelector(current)
			if err != nil {
				return nil, err
			}
			list = append(list, sel)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	sel, err := parseSelector(current)
	if err != nil {
		return nil, err
	}
	return append(list, sel), nil
}

func tokenize(text string) []token {
	lexer := css.NewLexer(parse.NewInputString(text))
	var tokens []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		if tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// selectorParser walks the tokens of one selector.
type selectorParser struct {
	tokens []token
	pos    int
}

func (p *selectorParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *selectorParser) skipWhitespace() bool {
	skipped := false
	for p.pos < len(p.tokens) && p.tokens[p.pos].tt == css.WhitespaceToken {
		p.pos++
		skipped = true
	}
	return skipped
}

func (p *selectorParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelector, fmt.Sprintf(format, args...))
}

func parseSelector(tokens []token) (Selector, error) {
	p := &selectorParser{tokens: tokens}
	p.skipWhitespace()
	if _, ok := p.peek(); !ok {
		return Selector{}, p.errorf("empty selector")
	}

	var compounds []Compound
	combinator := None
	for {
		c, err := p.parseCompound()
		if err != nil {
			return Selector{}, err
		}
		c.Combinator = combinator
		compounds = append(compounds, c)

		sawSpace := p.skipWhitespace()
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case tok.tt == css.DelimToken && tok.data == ">":
			p.pos++
			p.skipWhitespace()
			combinator = Child
		case tok.tt == css.DelimToken && (tok.data == "+" || tok.data == "~"):
			return Selector{}, p.errorf("sibling combinator %q is not supported", tok.data)
		case sawSpace:
			combinator = Descendant
		default:
			return Selector{}, p.errorf("unexpected %q", tok.data)
		}
	}

	parts := make([]string, len(compounds))
	for i, c := range compounds {
		switch c.Combinator {
		case Child:
			parts[i] = "> " + c.String()
		default:
			parts[i] = c.String()
		}
	}
	return Selector{
		raw:       strings.Join(parts, " "),
		compounds: compounds,
		spec:      computeSpecificity(compounds),
	}, nil
}

func (p *selectorParser) parseCompound() (Compound, error) {
	var c Compound
	start := p.pos

	if tok, ok := p.peek(); ok {
		switch {
		case tok.tt == css.IdentToken:
			c.Local = tok.data
			p.pos++
		case tok.tt == css.DelimToken && tok.data == "*":
			p.pos++
		}
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case tok.tt == css.HashToken:
			c.Attributes = append(c.Attributes, Attribute{
				Name:     "id",
				Operator: AttributeOperator{Kind: Matches, Value: strings.TrimPrefix(tok.data, "#")},
			})
			p.pos++
		case tok.tt == css.DelimToken && tok.data == ".":
			p.pos++
			name, ok := p.peek()
			if !ok || name.tt != css.IdentToken {
				return c, p.errorf("expected class name after '.'")
			}
			c.Attributes = append(c.Attributes, Attribute{
				Name:     "class",
				Operator: AttributeOperator{Kind: Contains, Value: name.data},
			})
			p.pos++
		case tok.tt == css.LeftBracketToken:
			p.pos++
			attr, err := p.parseAttribute()
			if err != nil {
				return c, err
			}
			c.Attributes = append(c.Attributes, attr)
		case tok.tt == css.ColonToken:
			p.pos++
			name, ok := p.peek()
			if !ok {
				return c, p.errorf("expected pseudo-class after ':'")
			}
			if name.tt != css.IdentToken {
				return c, p.errorf("pseudo-element or functional pseudo-class %q is not supported", name.data)
			}
			pc, known := LookupPseudoClass(name.data)
			if !known {
				return c, p.errorf("unknown pseudo-class %q", name.data)
			}
			c.PseudoClasses = append(c.PseudoClasses, pc)
			p.pos++
		default:
			if p.pos == start {
				return c, p.errorf("unexpected %q", tok.data)
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, p.errorf("expected selector")
	}
	return c, nil
}

func (p *selectorParser) parseAttribute() (Attribute, error) {
	p.skipWhitespace()
	name, ok := p.peek()
	if !ok || name.tt != css.IdentToken {
		return Attribute{}, p.errorf("expected attribute name")
	}
	p.pos++
	p.skipWhitespace()

	attr := Attribute{Name: name.data}
	tok, ok := p.peek()
	if !ok {
		return attr, p.errorf("unterminated attribute selector")
	}
	if tok.tt == css.RightBracketToken {
		p.pos++
		attr.Operator = AttributeOperator{Kind: Exists}
		return attr, nil
	}

	switch {
	case tok.tt == css.DelimToken && tok.data == "=":
		attr.Operator.Kind = Matches
	case tok.tt == css.IncludeMatchToken:
		attr.Operator.Kind = Contains
	case tok.tt == css.DashMatchToken:
		attr.Operator.Kind = StartsWith
	default:
		return attr, p.errorf("attribute operator %q is not supported", tok.data)
	}
	p.pos++
	p.skipWhitespace()

	value, ok := p.peek()
	if !ok {
		return attr, p.errorf("expected attribute value")
	}
	switch value.tt {
	case css.IdentToken:
		attr.Operator.Value = value.data
	case css.StringToken:
		attr.Operator.Value = unquote(value.data)
	default:
		return attr, p.errorf("unexpected attribute value %q", value.data)
	}
	p.pos++
	p.skipWhitespace()

	if end, ok := p.peek(); !ok || end.tt != css.RightBracketToken {
		return attr, p.errorf("unterminated attribute selector")
	}
	p.pos++
	return attr, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
