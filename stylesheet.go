package themecss

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/themecss/internal/selector"
)

// ErrUnexpectedEOF is wrapped by a ParseError when the source ends inside a
// selector prelude or a declaration block.
var ErrUnexpectedEOF = errors.New("unexpected end of stylesheet")

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ParseError is the only fatal error of a parse. Declaration and selector
// problems are reported as diagnostics instead.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "%d:%d:", e.Line, e.Column)
	}
	if sb.Len() > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Declaration is a raw `name: value` pair. Value has its whitespace collapsed
// and is not yet resolved or typed.
type Declaration struct {
	Name  string
	Value string
	Pos   Position
}

// StyleRule is one selector with the declarations of its block. A block with
// a selector list produces one StyleRule per selector.
type StyleRule struct {
	Selector     Selector
	Declarations []Declaration
	Pos          Position
}

// Stylesheet is the ordered list of rules parsed from one source text.
type Stylesheet struct {
	Rules []StyleRule
}

type token struct {
	tt     css.TokenType
	data   string
	offset int
}

// sheetParser turns the css lexer token stream into a Stylesheet.
type sheetParser struct {
	source string
	lexer  *css.Lexer
	offset int
	back   *token
	sink   Sink
	sheet  *Stylesheet
}

// ParseStylesheet parses source into a Stylesheet, reporting recoverable
// problems to sink. A nil sink discards them.
func ParseStylesheet(source string, sink Sink) (*Stylesheet, error) {
	if sink == nil {
		sink = Discard
	}
	p := &sheetParser{
		source: source,
		lexer:  css.NewLexer(parse.NewInputString(source)),
		sink:   sink,
		sheet:  &Stylesheet{},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.sheet, nil
}

func (p *sheetParser) next() token {
	if p.back != nil {
		t := *p.back
		p.back = nil
		return t
	}
	for {
		tt, data := p.lexer.Next()
		t := token{tt: tt, data: string(data), offset: p.offset}
		p.offset += len(data)
		if tt == css.CommentToken {
			continue
		}
		return t
	}
}

func (p *sheetParser) unread(t token) {
	p.back = &t
}

func (p *sheetParser) position(offset int) Position {
	line, col, _ := parse.Position(strings.NewReader(p.source), offset)
	return Position{Line: line, Column: col}
}

func (p *sheetParser) report(kind DiagnosticKind, offset int, format string, args ...any) {
	p.sink.Report(Diagnostic{
		Kind:     kind,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Pos:      p.position(offset),
	})
}

func (p *sheetParser) fatal(offset int, err error) error {
	pos := p.position(offset)
	return &ParseError{Line: pos.Line, Column: pos.Column, Err: err}
}

// eof returns a fatal error if the lexer stopped on anything but io.EOF.
func (p *sheetParser) eof(t token, what string, start int) error {
	if err := p.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
		return p.fatal(t.offset, err)
	}
	return p.fatal(start, fmt.Errorf("%w: unterminated %s", ErrUnexpectedEOF, what))
}

func (p *sheetParser) parse() error {
	for {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			if err := p.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return p.fatal(t.offset, err)
			}
			return nil
		case css.WhitespaceToken, css.CDOToken, css.CDCToken:
			continue
		case css.AtKeywordToken:
			p.report(UnsupportedAtRule, t.offset, "unsupported at-rule %s ignored", t.data)
			if err := p.skipAtRule(t.offset); err != nil {
				return err
			}
		default:
			p.unread(t)
			if err := p.parseRuleBlock(); err != nil {
				return err
			}
		}
	}
}

// skipAtRule consumes an at-rule up to its ';' or through its block.
func (p *sheetParser) skipAtRule(start int) error {
	for {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			return p.eof(t, "at-rule", start)
		case css.SemicolonToken:
			return nil
		case css.LeftBraceToken:
			return p.skipBlock(t.offset)
		}
	}
}

// skipBlock consumes tokens through the '}' matching an already consumed '{'.
func (p *sheetParser) skipBlock(start int) error {
	depth := 1
	for depth > 0 {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			return p.eof(t, "block", start)
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
	}
	return nil
}

func (p *sheetParser) parseRuleBlock() error {
	first := p.next()
	start := first.offset
	end := start
	p.unread(first)

	// Prelude runs up to the '{' of the declaration block.
	nesting := 0
prelude:
	for {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			return p.eof(t, "selector", start)
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			nesting++
		case css.RightParenthesisToken, css.RightBracketToken:
			if nesting > 0 {
				nesting--
			}
		case css.SemicolonToken:
			if nesting == 0 {
				p.report(Syntax, start, "stray %q without declaration block", strings.TrimSpace(p.source[start:t.offset]))
				return nil
			}
		case css.RightBraceToken:
			if nesting == 0 {
				p.report(Syntax, t.offset, "unexpected '}'")
				return nil
			}
		case css.LeftBraceToken:
			if nesting == 0 {
				end = t.offset
				break prelude
			}
		}
	}

	blockStart := end
	declarations, err := p.parseDeclarations(blockStart)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(p.source[start:end])
	selectors, err := selector.ParseList(text)
	if err != nil {
		p.report(InvalidSelector, start, "%v; rule dropped", err)
		return nil
	}

	pos := p.position(start)
	for _, sel := range selectors {
		p.sheet.Rules = append(p.sheet.Rules, StyleRule{
			Selector:     sel,
			Declarations: declarations,
			Pos:          pos,
		})
	}
	return nil
}

// parseDeclarations reads `name: value;` pairs through the closing '}'.
func (p *sheetParser) parseDeclarations(blockStart int) ([]Declaration, error) {
	var declarations []Declaration
	for {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			return nil, p.eof(t, "block", blockStart)
		case css.WhitespaceToken, css.SemicolonToken:
			continue
		case css.RightBraceToken:
			return declarations, nil
		case css.IdentToken, css.CustomPropertyNameToken:
			decl, ok, err := p.parseDeclaration(t, blockStart)
			if err != nil {
				return nil, err
			}
			if ok {
				declarations = append(declarations, decl)
			}
		default:
			p.report(Syntax, t.offset, "expected property name, found %q", t.data)
			p.unread(t)
			done, err := p.recover(blockStart)
			if err != nil {
				return nil, err
			}
			if done {
				return declarations, nil
			}
		}
	}
}

func (p *sheetParser) parseDeclaration(name token, blockStart int) (Declaration, bool, error) {
	t := p.next()
	for t.tt == css.WhitespaceToken {
		t = p.next()
	}
	if t.tt != css.ColonToken {
		p.report(Syntax, name.offset, "expected ':' after %q", name.data)
		p.unread(t)
		done, err := p.recover(blockStart)
		if err != nil || !done {
			return Declaration{}, false, err
		}
		p.unread(token{tt: css.RightBraceToken, data: "}", offset: p.offset})
		return Declaration{}, false, nil
	}

	var (
		value   strings.Builder
		nesting int
		space   bool
	)
	for {
		t = p.next()
		switch t.tt {
		case css.ErrorToken:
			return Declaration{}, false, p.eof(t, "block", blockStart)
		case css.WhitespaceToken:
			space = true
			continue
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			nesting++
		case css.RightParenthesisToken, css.RightBracketToken:
			if nesting > 0 {
				nesting--
			}
		case css.LeftBraceToken:
			p.report(Syntax, t.offset, "unexpected '{' in value of %q", name.data)
			return Declaration{}, false, p.skipBlock(t.offset)
		case css.SemicolonToken, css.RightBraceToken:
			if nesting == 0 {
				if t.tt == css.RightBraceToken {
					p.unread(t)
				}
				if value.Len() == 0 {
					p.report(Syntax, name.offset, "empty value for %q", name.data)
					return Declaration{}, false, nil
				}
				return Declaration{
					Name:  name.data,
					Value: value.String(),
					Pos:   p.position(name.offset),
				}, true, nil
			}
		}
		if space && value.Len() > 0 {
			value.WriteByte(' ')
		}
		space = false
		value.WriteString(t.data)
	}
}

// recover skips to the end of the current declaration: the next ';', a
// nested block, or the closing '}' of the enclosing block, in which case done
// is true.
func (p *sheetParser) recover(blockStart int) (bool, error) {
	for {
		t := p.next()
		switch t.tt {
		case css.ErrorToken:
			return false, p.eof(t, "block", blockStart)
		case css.SemicolonToken:
			return false, nil
		case css.RightBraceToken:
			return true, nil
		case css.LeftBraceToken:
			return false, p.skipBlock(t.offset)
		}
	}
}
