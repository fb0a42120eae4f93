package themecss

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DiagnosticKind classifies a non-fatal problem found while parsing or solving.
type DiagnosticKind string

// Diagnostic kinds
const (
	UnknownProperty    DiagnosticKind = "unknown-property"
	InvalidValue       DiagnosticKind = "invalid-value"
	UnresolvedVariable DiagnosticKind = "unresolved-variable"
	DuplicateProperty  DiagnosticKind = "duplicate-property"
	InvalidSelector    DiagnosticKind = "invalid-selector"
	UnsupportedAtRule  DiagnosticKind = "unsupported-at-rule"
	Syntax             DiagnosticKind = "syntax"
	NoMatchingRule     DiagnosticKind = "no-matching-rule"
)

// Severity constants
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic is one entry on the diagnostics channel.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Property string         `json:"property,omitempty"` // Set for declaration-level problems
	Pos      Position       `json:"pos"`                // Zero for query-time diagnostics
}

func (d Diagnostic) String() string {
	if d.Pos.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
	}
	return d.Message
}

// Sink receives diagnostics. Implementations must be safe for concurrent use
// when the same Rules value is solved from several goroutines.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of diagnostics of the given kind.
func (c *Collector) Count(kind DiagnosticKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// logSink forwards diagnostics to a zap logger.
type logSink struct {
	log *zap.Logger
}

// NewLogSink returns a Sink writing each diagnostic as a structured log entry.
// Warnings are logged at Warn level, everything else at Debug.
func NewLogSink(log *zap.Logger) Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &logSink{log: log}
}

func (s *logSink) Report(d Diagnostic) {
	fields := []zap.Field{zap.String("kind", string(d.Kind))}
	if d.Property != "" {
		fields = append(fields, zap.String("property", d.Property))
	}
	if d.Pos.Line > 0 {
		fields = append(fields, zap.Int("line", d.Pos.Line), zap.Int("column", d.Pos.Column))
	}
	switch d.Severity {
	case SeverityWarning:
		s.log.Warn(d.Message, fields...)
	default:
		s.log.Debug(d.Message, fields...)
	}
}

// teeSink reports to every non-nil sink in order.
type teeSink []Sink

func (t teeSink) Report(d Diagnostic) {
	for _, s := range t {
		if s != nil {
			s.Report(d)
		}
	}
}
