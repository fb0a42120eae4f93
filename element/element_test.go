package element

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/themecss"
)

const theme = `
variables { pinky: #F06; }
variables.macos { os-padding: 6; }

label { color: var(pinky); padding: var(os-padding); }
window > label.title { font-size: 20; }
vbox label:hover { underline-width: 1; }
#main { background: white; }
`

func TestElementString(t *testing.T) {
	e := Label().ID("title").Classes("big  bold").Hover(true).Parent(VBox().Parent(Window()))
	assert.Equal(t, "window > vbox > label#title.big.bold:hover", e.String())

	e.RemoveClass("big")
	e.ToggleClass("faint", true)
	e.ToggleClass("bold", false)
	assert.Equal(t, "window > vbox > label#title.faint:hover", e.String())

	e.AddClass("faint")
	assert.Equal(t, "window > vbox > label#title.faint:hover", e.String())
}

func TestElementCompute(t *testing.T) {
	rules, err := themecss.Parse(theme, []string{"macos"})
	require.NoError(t, err)

	props := Label().Compute(rules)
	assert.Equal(t, themecss.Color{R: 255, G: 0, B: 102, A: 1}, props.Color)
	assert.Equal(t, themecss.Sides{Top: 6, Right: 6, Bottom: 6, Left: 6}, props.Padding)
	assert.Equal(t, float32(4), props.FontSize)

	title := Label().Classes("title").Parent(Window())
	assert.Equal(t, float32(20), title.Compute(rules).FontSize)

	nested := Label().Classes("title").Parent(Panel().Parent(Window()))
	assert.Equal(t, float32(4), nested.Compute(rules).FontSize)

	hovered := Label().Hover(true).Parent(VBox().Parent(Window()))
	assert.Equal(t, float32(1), hovered.Compute(rules).UnderlineWidth)
	hovered.Hover(false)
	assert.Zero(t, hovered.Compute(rules).UnderlineWidth)

	box := HBox().ID("main")
	box.AttachParent(Window())
	assert.Equal(t, themecss.Color{R: 255, G: 255, B: 255, A: 1}, box.Compute(rules).Background)

	linux, err := themecss.Parse(theme, []string{"linux"})
	require.NoError(t, err)
	assert.Equal(t, themecss.Sides{}, Label().Compute(linux).Padding)
}

func TestElementNoMatchMessage(t *testing.T) {
	var diags themecss.Collector
	parser := themecss.NewParser(nil)
	parser.SetSink(&diags)
	rules, err := parser.Parse(theme, nil)
	require.NoError(t, err)

	Native().Classes("hyperlink").Parent(Window()).Compute(rules)
	require.Equal(t, 1, diags.Count(themecss.NoMatchingRule))
	all := diags.Diagnostics()
	last := all[len(all)-1]
	assert.Equal(t, themecss.NoMatchingRule, last.Kind)
	assert.True(t, strings.HasSuffix(last.Message, "window > native.hyperlink"), last.Message)
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "label", want: "label"},
		{query: "window > vbox label#title.big:hover", want: "window > vbox > label#title.big:hover"},
		{query: "native.faint:active:focus", want: "native.faint:active:focus"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			e, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	for _, query := range []string{"", "*", ".big", "label[lang]", "label:first-child", "label + text"} {
		t.Run(query, func(t *testing.T) {
			_, err := Parse(query)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
