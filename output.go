package themecss

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// OutputFormat selects how computed properties are written.
type OutputFormat string

// Output formats
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// DetermineOutputFormat maps a --output-format value to an OutputFormat.
// Unknown or empty values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch strings.ToLower(formatFlag) {
	case "json":
		return OutputJSON
	case "yaml", "yml":
		return OutputYAML
	default:
		return OutputText
	}
}

// PropertyEntry is one key/value pair of a computed property bag in schema
// order.
type PropertyEntry struct {
	Key   string
	Value any
}

// Entries returns the properties in schema order. Infinite scalars are
// rendered as the string "inf" so every encoder can represent them.
func (p *ComputedProperties) Entries() []PropertyEntry {
	entries := make([]PropertyEntry, len(schema))
	for i, entry := range schema {
		entries[i] = PropertyEntry{Key: entry.key, Value: printable(entry.value(p))}
	}
	return entries
}

func printable(v any) any {
	if f, ok := v.(float32); ok && math.IsInf(float64(f), 0) {
		if f > 0 {
			return "inf"
		}
		return "-inf"
	}
	return v
}

// WriteOutput writes props in the given format.
func WriteOutput(w io.Writer, props ComputedProperties, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, props)
	case OutputYAML:
		return WriteYAML(w, props)
	default:
		return WriteText(w, props)
	}
}

// WriteText writes one aligned `key value` line per property.
func WriteText(w io.Writer, props ComputedProperties) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range props.Entries() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", e.Key, formatValue(e.Value)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case Sides:
		return fmt.Sprintf("%g %g %g %g", v.Top, v.Right, v.Bottom, v.Left)
	case Radius:
		return fmt.Sprintf("%g %g %g %g", v.NW, v.NE, v.SE, v.SW)
	case float32:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
