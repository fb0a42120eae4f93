package themecss

import (
	"github.com/yacobolo/themecss/internal/selector"
)

// variablesName is the reserved element name of variables blocks.
const variablesName = "variables"

// variablesProbe is a synthetic `variables` element used to classify rules
// and to select the variables blocks in scope for a system context.
//
// With scoped unset the probe behaves as if it had every attribute, so it
// matches `variables`, `variables.dark` and `variables#x` alike. With scoped
// set it only carries the context tags as classes.
type variablesProbe struct {
	scoped  bool
	classes map[string]bool
}

func (v variablesProbe) HasLocalName(name string) bool {
	return name == variablesName
}

func (v variablesProbe) AttributeMatches(name string, op selector.AttributeOperator) bool {
	if !v.scoped {
		return true
	}
	return name == "class" && op.Kind == selector.Contains && v.classes[op.Value]
}

func (v variablesProbe) PseudoClassMatches(selector.PseudoClass) bool { return false }

func (v variablesProbe) ParentElement() (selector.Element, bool) { return nil, false }

var unscopedProbe = variablesProbe{}

func scopedProbe(context []string) variablesProbe {
	classes := make(map[string]bool, len(context))
	for _, tag := range context {
		classes[tag] = true
	}
	return variablesProbe{scoped: true, classes: classes}
}

// IsVariableBlock reports whether sel targets the variables element. The
// type-name check keeps the universal selector, which matches the relaxed
// probe structurally but never names `variables`.
func IsVariableBlock(sel Selector) bool {
	return sel.Matches(unscopedProbe) && sel.Specificity()[2] != 0
}

// ExtractVariables collects the declarations of every rule whose selector
// matches the variables element carrying the context tags as classes. This
// includes rules that are not variables blocks, such as `*` or `.macos`.
// Rules are visited in document order and later definitions of a name
// replace earlier ones. Values are left unresolved.
func ExtractVariables(sheet *Stylesheet, context []string) map[string]string {
	vars := make(map[string]string)
	if sheet == nil {
		return vars
	}
	probe := scopedProbe(context)
	for _, rule := range sheet.Rules {
		if !rule.Selector.Matches(probe) {
			continue
		}
		for _, decl := range rule.Declarations {
			vars[decl.Name] = decl.Value
		}
	}
	return vars
}
