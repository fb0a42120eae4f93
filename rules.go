package themecss

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yacobolo/themecss/internal/selector"
)

type (
	// Element is the query surface that rules are matched against.
	Element = selector.Element
	// Selector is a parsed complex selector.
	Selector = selector.Selector
	// AttributeOperator is the attribute test passed to Element.AttributeMatches.
	AttributeOperator = selector.AttributeOperator
	// PseudoClass is a pseudo-class passed to Element.PseudoClassMatches.
	PseudoClass = selector.PseudoClass
)

// Rule is a compiled rule: a selector and the typed properties it sets.
type Rule struct {
	Selector   Selector
	Properties OptionalProperties
	Pos        Position
}

// Rules is a compiled stylesheet. It owns the source text it was parsed
// from and is never modified after construction, so one value may be solved
// from any number of goroutines.
type Rules struct {
	source      string
	path        string
	context     []string
	variables   map[string]string
	rules       []Rule
	diagnostics []Diagnostic
	sink        Sink
}

// Parser compiles stylesheets.
type Parser struct {
	log  *zap.Logger
	sink Sink
}

// NewParser returns a parser that logs through log. Diagnostics go to log
// until SetSink replaces the destination.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("themecss")
	return &Parser{log: log, sink: NewLogSink(log)}
}

// SetSink sets the destination for diagnostics of subsequent parses and of
// the Rules they produce. A nil sink discards them.
func (p *Parser) SetSink(sink Sink) {
	if sink == nil {
		sink = Discard
	}
	p.sink = sink
}

// ParseFile reads and compiles the stylesheet at path for the given system
// context tags.
func (p *Parser) ParseFile(path string, context []string) (*Rules, error) {
	// #nosec G304 - path comes from the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("read stylesheet: %w", err)}
	}
	rules, err := p.compile(string(content), path, context)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return rules, nil
}

// Parse compiles source for the given system context tags.
func (p *Parser) Parse(source string, context []string) (*Rules, error) {
	return p.compile(source, "", context)
}

func (p *Parser) compile(source, path string, context []string) (*Rules, error) {
	collector := &Collector{}
	sink := teeSink{collector, p.sink}

	sheet, err := ParseStylesheet(source, sink)
	if err != nil {
		return nil, err
	}

	vars := ExtractVariables(sheet, context)

	compiled := make([]Rule, 0, len(sheet.Rules))
	for _, rule := range sheet.Rules {
		if IsVariableBlock(rule.Selector) {
			continue
		}
		compiled = append(compiled, Rule{
			Selector:   rule.Selector,
			Properties: ResolveDeclarations(rule.Declarations, vars, sink),
			Pos:        rule.Pos,
		})
	}

	r := &Rules{
		source:      source,
		path:        path,
		context:     append([]string(nil), context...),
		variables:   vars,
		rules:       compiled,
		diagnostics: collector.Diagnostics(),
		sink:        p.sink,
	}
	p.log.Debug("Stylesheet compiled",
		zap.String("path", path),
		zap.Strings("context", context),
		zap.Int("blocks", len(sheet.Rules)),
		zap.Int("rules", len(compiled)),
		zap.Int("variables", len(vars)),
		zap.Int("diagnostics", len(r.diagnostics)),
	)
	return r, nil
}

// ParseFile compiles the stylesheet at path without logging.
func ParseFile(path string, context []string) (*Rules, error) {
	return NewParser(nil).ParseFile(path, context)
}

// Parse compiles source without logging.
func Parse(source string, context []string) (*Rules, error) {
	return NewParser(nil).Parse(source, context)
}

// Solve computes the properties of e: schema defaults, then every matching
// rule patched over them in document order. A later rule overrides an
// earlier one property by property, whatever their specificity.
// A nil Rules solves every element to the defaults.
func (r *Rules) Solve(e Element) ComputedProperties {
	props := DefaultProperties()
	if r == nil {
		return props
	}
	matched := false
	for i := range r.rules {
		rule := &r.rules[i]
		if rule.Selector.Matches(e) {
			matched = true
			props.PatchFrom(&rule.Properties)
		}
	}
	if !matched && r.sink != nil {
		r.sink.Report(Diagnostic{
			Kind:     NoMatchingRule,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("couldn't match any rules for element: %s", describe(e)),
		})
	}
	return props
}

// Match returns the rules matching e in document order.
func (r *Rules) Match(e Element) []Rule {
	if r == nil {
		return nil
	}
	var matched []Rule
	for _, rule := range r.rules {
		if rule.Selector.Matches(e) {
			matched = append(matched, rule)
		}
	}
	return matched
}

func describe(e Element) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}

// Len returns the number of compiled rules.
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rules)
}

// Rules returns a copy of the compiled rules in document order.
func (r *Rules) Rules() []Rule {
	if r == nil {
		return nil
	}
	return append([]Rule(nil), r.rules...)
}

// Variables returns a copy of the variable map resolved for Context.
func (r *Rules) Variables() map[string]string {
	vars := make(map[string]string)
	if r == nil {
		return vars
	}
	for k, v := range r.variables {
		vars[k] = v
	}
	return vars
}

// Context returns the system context tags the rules were compiled for.
func (r *Rules) Context() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.context...)
}

// Diagnostics returns the diagnostics reported while compiling.
func (r *Rules) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}
	return append([]Diagnostic(nil), r.diagnostics...)
}

// Source returns the text the rules were compiled from.
func (r *Rules) Source() string {
	if r == nil {
		return ""
	}
	return r.source
}

// Path returns the file the rules were read from, or "" for Parse.
func (r *Rules) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}
