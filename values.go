package themecss

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

// ErrInvalidValue is wrapped by every value parse failure.
var ErrInvalidValue = errors.New("invalid value")

// Color is an 8-bit RGB color with a floating point alpha channel.
type Color struct {
	R, G, B uint8
	A       float32
}

// InvalidColor is the default of every color property: opaque magenta, so
// that an unstyled element is easy to spot.
var InvalidColor = Color{R: 255, G: 0, B: 255, A: 1}

// String renders the color as #rrggbb when opaque and rgba() otherwise.
func (c Color) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(float64(c.A), 'g', -1, 32))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func invalid(kind, raw string) error {
	return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, raw, kind)
}

// ParseFloat parses a scalar.
func ParseFloat(raw string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return 0, invalid("number", raw)
	}
	return float32(v), nil
}

// ParseBool accepts exactly "true" or "false".
func ParseBool(raw string) (bool, error) {
	switch strings.TrimSpace(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, invalid("boolean", raw)
}

// ParseAlign accepts center, min, left, bottom, max, right and top.
func ParseAlign(raw string) (Align, error) {
	switch strings.TrimSpace(raw) {
	case "center":
		return Center, nil
	case "min", "left", "bottom":
		return Min, nil
	case "max", "right", "top":
		return Max, nil
	}
	return Min, invalid("alignment", raw)
}

// ParseFontFamily accepts bold, regular and mono in any letter case.
func ParseFontFamily(raw string) (FontFamily, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bold":
		return Bold, nil
	case "regular":
		return Regular, nil
	case "mono":
		return Mono, nil
	}
	return Regular, invalid("font family", raw)
}

func parseFloats(raw string) ([]float32, error) {
	fields := strings.Fields(raw)
	values := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		values[i] = float32(v)
	}
	return values, nil
}

// ParseSides parses 1, 2 or 4 whitespace-separated numbers:
// "a" sets every side, "v h" sets top/bottom and right/left,
// "t r b l" sets each side in that order.
func ParseSides(raw string) (Sides, error) {
	v, err := parseFloats(raw)
	if err != nil {
		return Sides{}, invalid("box metric", raw)
	}
	switch len(v) {
	case 1:
		return Sides{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}, nil
	case 2:
		return Sides{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}, nil
	case 4:
		return Sides{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
	}
	return Sides{}, invalid("box metric", raw)
}

// ParseRadius parses 1 or 4 numbers. Four values are nw, ne, se, sw.
func ParseRadius(raw string) (Radius, error) {
	v, err := parseFloats(raw)
	if err != nil {
		return Radius{}, invalid("radius", raw)
	}
	switch len(v) {
	case 1:
		return Radius{NW: v[0], NE: v[0], SE: v[0], SW: v[0]}, nil
	case 4:
		return Radius{NW: v[0], NE: v[1], SE: v[2], SW: v[3]}, nil
	}
	return Radius{}, invalid("radius", raw)
}

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), named colors,
// transparent, rgb(), rgba(), hsl() and hsla().
func ParseColor(raw string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHexColor(s); ok {
			return c, nil
		}
	case s == "transparent":
		return Color{}, nil
	case strings.HasSuffix(s, ")"):
		if c, ok := parseColorFunction(s); ok {
			return c, nil
		}
	default:
		if rgba, ok := colornames.Map[s]; ok {
			return Color{R: rgba.R, G: rgba.G, B: rgba.B, A: 1}, nil
		}
	}
	return Color{}, invalid("color", raw)
}

func parseHexColor(s string) (Color, bool) {
	if len(s) < 2 || strings.Trim(s[1:], "0123456789abcdef") != "" {
		return Color{}, false
	}
	alpha := float32(1)
	switch len(s) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(strings.Repeat(s[4:], 2), 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float32(a) / 255
		s = s[:4]
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float32(a) / 255
		s = s[:7]
	default:
		return Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, true
}

// colorArg is one numeric argument of a color function.
type colorArg struct {
	value   float64
	percent bool
}

func parseColorFunction(s string) (Color, bool) {
	lexer := css.NewLexer(parse.NewInputString(s))
	tt, data := lexer.Next()
	if tt != css.FunctionToken {
		return Color{}, false
	}
	name := strings.TrimSuffix(string(data), "(")

	var args []colorArg
	closed := false
	for !closed {
		tt, data = lexer.Next()
		switch tt {
		case css.WhitespaceToken, css.CommaToken:
		case css.DelimToken:
			if string(data) != "/" {
				return Color{}, false
			}
		case css.NumberToken:
			v, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return Color{}, false
			}
			args = append(args, colorArg{value: v})
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return Color{}, false
			}
			args = append(args, colorArg{value: v, percent: true})
		case css.DimensionToken:
			num, unit := splitDimension(string(data))
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || unit != "deg" {
				return Color{}, false
			}
			args = append(args, colorArg{value: v})
		case css.RightParenthesisToken:
			closed = true
		default:
			return Color{}, false
		}
	}
	if tt, _ := lexer.Next(); tt != css.ErrorToken {
		return Color{}, false
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}

	alpha := float32(1)
	if len(args) == 4 {
		a := args[3].value
		if args[3].percent {
			a /= 100
		}
		alpha = float32(clamp(a, 0, 1))
	}

	switch name {
	case "rgb", "rgba":
		channel := func(a colorArg) uint8 {
			v := a.value
			if a.percent {
				v = v * 255 / 100
			}
			return uint8(math.Round(clamp(v, 0, 255)))
		}
		return Color{R: channel(args[0]), G: channel(args[1]), B: channel(args[2]), A: alpha}, true
	case "hsl", "hsla":
		h := math.Mod(args[0].value, 360)
		if h < 0 {
			h += 360
		}
		sat := clamp(args[1].value/100, 0, 1)
		light := clamp(args[2].value/100, 0, 1)
		r, g, b := colorful.Hsl(h, sat, light).Clamped().RGB255()
		return Color{R: r, G: g, B: b, A: alpha}, true
	}
	return Color{}, false
}

func splitDimension(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	})
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
