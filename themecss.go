// Package themecss is a small stylesheet engine for native widget toolkits.
//
// A stylesheet is CSS-like: `selector { name: value; }` blocks plus
// `variables` blocks that define values for `var(name)` references. Variables
// blocks are scoped by system context tags given as classes, so
// `variables.macos.dark {}` is only in scope when both tags are present.
//
// # Parsing
//
// Compile a stylesheet for the running system:
//
//	rules, err := themecss.ParseFile("theme.css", themecss.SystemContext(themecss.Dark))
//
// Parse and ParseFile discard diagnostics. Use NewParser with a zap logger, or
// Parser.SetSink, to receive them.
//
// # Solving
//
// Any type implementing Element can be solved:
//
//	props := rules.Solve(element.Label().Classes("title"))
//
// Every property starts at its default and matching rules are applied in
// document order. A later rule always overrides an earlier one for the
// properties both declare; selector specificity does not take part.
//
// # Hot reload
//
// Store publishes the current Rules to concurrent readers and Watcher
// re-parses the stylesheet when it changes on disk.
package themecss
