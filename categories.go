package themecss

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// PropertyCategory groups related properties for display.
type PropertyCategory string

// Property categories in display order
const (
	CategoryTypography PropertyCategory = "Typography"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryVisual     PropertyCategory = "Visual"
)

// Categories lists every category in display order.
var Categories = []PropertyCategory{CategoryTypography, CategoryLayout, CategoryVisual}

// propertyCategories maps property keys to categories
var propertyCategories = map[string]PropertyCategory{
	// Typography
	"font-size":           CategoryTypography,
	"font-family":         CategoryTypography,
	"italics":             CategoryTypography,
	"underline-width":     CategoryTypography,
	"underline-color":     CategoryTypography,
	"strikethrough-width": CategoryTypography,
	"strikethrough-color": CategoryTypography,

	// Layout
	"align":       CategoryLayout,
	"cross-align": CategoryLayout,
	"padding":     CategoryLayout,
	"margin":      CategoryLayout,
	"height":      CategoryLayout,
	"width":       CategoryLayout,
	"min-width":   CategoryLayout,
	"max-width":   CategoryLayout,
	"min-height":  CategoryLayout,
	"max-height":  CategoryLayout,
	"expansion":   CategoryLayout,

	// Visual
	"color":        CategoryVisual,
	"background":   CategoryVisual,
	"radius":       CategoryVisual,
	"border-width": CategoryVisual,
	"border-color": CategoryVisual,
	"stroke-width": CategoryVisual,
	"stroke-color": CategoryVisual,
}

// CategoryOf returns the category of a property key.
func CategoryOf(key string) (PropertyCategory, bool) {
	cat, ok := propertyCategories[key]
	return cat, ok
}

// Grouped returns the entries of p grouped by category, each group in
// schema order.
func (p *ComputedProperties) Grouped() map[PropertyCategory][]PropertyEntry {
	result := make(map[PropertyCategory][]PropertyEntry, len(Categories))
	for _, e := range p.Entries() {
		cat := propertyCategories[e.Key]
		result[cat] = append(result[cat], e)
	}
	return result
}

// WriteTextGrouped writes the text format with one titled section per
// category.
func WriteTextGrouped(w io.Writer, props ComputedProperties) error {
	groups := props.Grouped()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, cat := range Categories {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(string(cat)))
		for _, e := range groups[cat] {
			fmt.Fprintf(tw, "  %s\t%s\n", e.Key, formatValue(e.Value))
		}
	}
	return tw.Flush()
}
