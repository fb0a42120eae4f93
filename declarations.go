package themecss

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvedVariable is returned when a var() reference names a variable
// that no in-scope variables block defines.
var ErrUnresolvedVariable = errors.New("unresolved variable")

// variableReference returns NAME for a value of the exact form var(NAME).
func variableReference(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "var(") || !strings.HasSuffix(raw, ")") {
		return "", false
	}
	return strings.TrimSpace(raw[len("var(") : len(raw)-1]), true
}

// ResolveValue substitutes a var(NAME) reference from vars. Any other value is
// returned unchanged.
func ResolveValue(raw string, vars map[string]string) (string, error) {
	name, ok := variableReference(raw)
	if !ok {
		return raw, nil
	}
	value, ok := vars[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedVariable, name)
	}
	return value, nil
}

// ResolveDeclarations turns raw declarations into a sparse typed property
// set. Every failing declaration is reported to sink once and left absent;
// the remaining declarations are unaffected.
func ResolveDeclarations(decls []Declaration, vars map[string]string, sink Sink) OptionalProperties {
	if sink == nil {
		sink = Discard
	}
	var (
		props OptionalProperties
		seen  = make(map[string]bool, len(decls))
	)
	for _, decl := range decls {
		entry, ok := schemaIndex[decl.Name]
		if !ok {
			sink.Report(Diagnostic{
				Kind:     UnknownProperty,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("unknown property: %s", decl.Name),
				Property: decl.Name,
				Pos:      decl.Pos,
			})
			continue
		}

		// The first declaration of a property in a block wins.
		if seen[decl.Name] {
			sink.Report(Diagnostic{
				Kind:     DuplicateProperty,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("duplicate property %s ignored", decl.Name),
				Property: decl.Name,
				Pos:      decl.Pos,
			})
			continue
		}
		seen[decl.Name] = true

		value, err := ResolveValue(decl.Value, vars)
		if err != nil {
			sink.Report(Diagnostic{
				Kind:     UnresolvedVariable,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("can't resolve `%s` value: %v", decl.Name, err),
				Property: decl.Name,
				Pos:      decl.Pos,
			})
			continue
		}

		if err := entry.set(&props, value); err != nil {
			sink.Report(Diagnostic{
				Kind:     InvalidValue,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("can't parse `%s` value: %v", decl.Name, err),
				Property: decl.Name,
				Pos:      decl.Pos,
			})
		}
	}
	return props
}
