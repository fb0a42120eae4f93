package themecss

import (
	"fmt"
	"math"
)

// FontFamily selects one of the toolkit font faces.
type FontFamily int

const (
	Regular FontFamily = iota
	Bold
	Mono
)

var fontFamilyNames = [...]string{Regular: "regular", Bold: "bold", Mono: "mono"}

func (f FontFamily) String() string {
	if f < 0 || int(f) >= len(fontFamilyNames) {
		return fmt.Sprintf("FontFamily(%d)", int(f))
	}
	return fontFamilyNames[f]
}

// MarshalText implements encoding.TextMarshaler.
func (f FontFamily) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Align positions content along an axis.
type Align int

const (
	Min Align = iota
	Center
	Max
)

var alignNames = [...]string{Min: "min", Center: "center", Max: "max"}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return fmt.Sprintf("Align(%d)", int(a))
	}
	return alignNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Sides holds four-sided box metrics such as padding and margin.
type Sides struct {
	Top    float32 `json:"top" yaml:"top"`
	Right  float32 `json:"right" yaml:"right"`
	Bottom float32 `json:"bottom" yaml:"bottom"`
	Left   float32 `json:"left" yaml:"left"`
}

// Radius holds corner radii.
type Radius struct {
	NW float32 `json:"nw" yaml:"nw"`
	NE float32 `json:"ne" yaml:"ne"`
	SW float32 `json:"sw" yaml:"sw"`
	SE float32 `json:"se" yaml:"se"`
}

// ComputedProperties is a fully populated property bag. It is the result of
// Rules.Solve.
type ComputedProperties struct {
	FontSize           float32
	FontFamily         FontFamily
	Color              Color
	Background         Color
	Italics            bool
	UnderlineWidth     float32
	UnderlineColor     Color
	StrikethroughWidth float32
	StrikethroughColor Color
	Align              Align
	CrossAlign         Align
	Padding            Sides
	Margin             Sides
	Radius             Radius
	Height             float32
	Width              float32
	MinWidth           float32
	MaxWidth           float32
	MinHeight          float32
	MaxHeight          float32
	BorderWidth        float32
	BorderColor        Color
	StrokeWidth        float32
	StrokeColor        Color
	Expansion          float32
}

// OptionalProperties is the sparse property set of one rule. A nil field means
// the rule does not touch that property.
type OptionalProperties struct {
	FontSize           *float32
	FontFamily         *FontFamily
	Color              *Color
	Background         *Color
	Italics            *bool
	UnderlineWidth     *float32
	UnderlineColor     *Color
	StrikethroughWidth *float32
	StrikethroughColor *Color
	Align              *Align
	CrossAlign         *Align
	Padding            *Sides
	Margin             *Sides
	Radius             *Radius
	Height             *float32
	Width              *float32
	MinWidth           *float32
	MaxWidth           *float32
	MinHeight          *float32
	MaxHeight          *float32
	BorderWidth        *float32
	BorderColor        *Color
	StrokeWidth        *float32
	StrokeColor        *Color
	Expansion          *float32
}

// DefaultProperties returns the schema defaults.
func DefaultProperties() ComputedProperties {
	inf := float32(math.Inf(1))
	return ComputedProperties{
		FontSize:           4,
		FontFamily:         Regular,
		Color:              InvalidColor,
		Background:         InvalidColor,
		UnderlineColor:     InvalidColor,
		StrikethroughColor: InvalidColor,
		Align:              Min,
		CrossAlign:         Min,
		MaxWidth:           inf,
		MaxHeight:          inf,
		BorderColor:        InvalidColor,
		StrokeColor:        InvalidColor,
	}
}

// PatchFrom overwrites every field that is present in props.
func (p *ComputedProperties) PatchFrom(props *OptionalProperties) {
	if props == nil {
		return
	}
	for _, entry := range schema {
		entry.patch(p, props)
	}
}

// Get returns the value of the property named key.
func (p *ComputedProperties) Get(key string) (any, bool) {
	entry, ok := schemaIndex[key]
	if !ok {
		return nil, false
	}
	return entry.value(p), true
}

// Has reports whether the property named key is present.
func (o *OptionalProperties) Has(key string) bool {
	entry, ok := schemaIndex[key]
	return ok && entry.present(o)
}

// Len returns the number of present properties.
func (o *OptionalProperties) Len() int {
	n := 0
	for _, entry := range schema {
		if entry.present(o) {
			n++
		}
	}
	return n
}

// PropertyKeys returns the schema keys in table order.
func PropertyKeys() []string {
	keys := make([]string, len(schema))
	for i, entry := range schema {
		keys[i] = entry.key
	}
	return keys
}

// IsProperty reports whether key names a schema property.
func IsProperty(key string) bool {
	_, ok := schemaIndex[key]
	return ok
}

// schemaEntry binds a property key to its parser and to its slots in
// ComputedProperties and OptionalProperties.
type schemaEntry struct {
	key     string
	set     func(o *OptionalProperties, raw string) error
	patch   func(p *ComputedProperties, o *OptionalProperties)
	value   func(p *ComputedProperties) any
	present func(o *OptionalProperties) bool
}

func prop[T any](
	key string,
	parse func(string) (T, error),
	computed func(*ComputedProperties) *T,
	optional func(*OptionalProperties) **T,
) schemaEntry {
	return schemaEntry{
		key: key,
		set: func(o *OptionalProperties, raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			*optional(o) = &v
			return nil
		},
		patch: func(p *ComputedProperties, o *OptionalProperties) {
			if v := *optional(o); v != nil {
				*computed(p) = *v
			}
		},
		value: func(p *ComputedProperties) any {
			return *computed(p)
		},
		present: func(o *OptionalProperties) bool {
			return *optional(o) != nil
		},
	}
}

var schema = []schemaEntry{
	prop("font-size", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.FontSize },
		func(o *OptionalProperties) **float32 { return &o.FontSize }),
	prop("font-family", ParseFontFamily,
		func(p *ComputedProperties) *FontFamily { return &p.FontFamily },
		func(o *OptionalProperties) **FontFamily { return &o.FontFamily }),
	prop("color", ParseColor,
		func(p *ComputedProperties) *Color { return &p.Color },
		func(o *OptionalProperties) **Color { return &o.Color }),
	prop("background", ParseColor,
		func(p *ComputedProperties) *Color { return &p.Background },
		func(o *OptionalProperties) **Color { return &o.Background }),
	prop("italics", ParseBool,
		func(p *ComputedProperties) *bool { return &p.Italics },
		func(o *OptionalProperties) **bool { return &o.Italics }),
	prop("underline-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.UnderlineWidth },
		func(o *OptionalProperties) **float32 { return &o.UnderlineWidth }),
	prop("underline-color", ParseColor,
		func(p *ComputedProperties) *Color { return &p.UnderlineColor },
		func(o *OptionalProperties) **Color { return &o.UnderlineColor }),
	prop("strikethrough-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.StrikethroughWidth },
		func(o *OptionalProperties) **float32 { return &o.StrikethroughWidth }),
	prop("strikethrough-color", ParseColor,
		func(p *ComputedProperties) *Color { return &p.StrikethroughColor },
		func(o *OptionalProperties) **Color { return &o.StrikethroughColor }),
	prop("align", ParseAlign,
		func(p *ComputedProperties) *Align { return &p.Align },
		func(o *OptionalProperties) **Align { return &o.Align }),
	prop("cross-align", ParseAlign,
		func(p *ComputedProperties) *Align { return &p.CrossAlign },
		func(o *OptionalProperties) **Align { return &o.CrossAlign }),
	prop("padding", ParseSides,
		func(p *ComputedProperties) *Sides { return &p.Padding },
		func(o *OptionalProperties) **Sides { return &o.Padding }),
	prop("margin", ParseSides,
		func(p *ComputedProperties) *Sides { return &p.Margin },
		func(o *OptionalProperties) **Sides { return &o.Margin }),
	prop("radius", ParseRadius,
		func(p *ComputedProperties) *Radius { return &p.Radius },
		func(o *OptionalProperties) **Radius { return &o.Radius }),
	prop("height", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.Height },
		func(o *OptionalProperties) **float32 { return &o.Height }),
	prop("width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.Width },
		func(o *OptionalProperties) **float32 { return &o.Width }),
	prop("min-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.MinWidth },
		func(o *OptionalProperties) **float32 { return &o.MinWidth }),
	prop("max-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.MaxWidth },
		func(o *OptionalProperties) **float32 { return &o.MaxWidth }),
	prop("min-height", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.MinHeight },
		func(o *OptionalProperties) **float32 { return &o.MinHeight }),
	prop("max-height", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.MaxHeight },
		func(o *OptionalProperties) **float32 { return &o.MaxHeight }),
	prop("border-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.BorderWidth },
		func(o *OptionalProperties) **float32 { return &o.BorderWidth }),
	prop("border-color", ParseColor,
		func(p *ComputedProperties) *Color { return &p.BorderColor },
		func(o *OptionalProperties) **Color { return &o.BorderColor }),
	prop("stroke-width", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.StrokeWidth },
		func(o *OptionalProperties) **float32 { return &o.StrokeWidth }),
	prop("stroke-color", ParseColor,
		func(p *ComputedProperties) *Color { return &p.StrokeColor },
		func(o *OptionalProperties) **Color { return &o.StrokeColor }),
	prop("expansion", ParseFloat,
		func(p *ComputedProperties) *float32 { return &p.Expansion },
		func(o *OptionalProperties) **float32 { return &o.Expansion }),
}

var schemaIndex = func() map[string]schemaEntry {
	index := make(map[string]schemaEntry, len(schema))
	for _, entry := range schema {
		index[entry.key] = entry
	}
	return index
}()
