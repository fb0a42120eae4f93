package themecss

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := map[string]OutputFormat{
		"":      OutputText,
		"text":  OutputText,
		"json":  OutputJSON,
		"JSON":  OutputJSON,
		"yaml":  OutputYAML,
		"yml":   OutputYAML,
		"bogus": OutputText,
	}
	for input, want := range tests {
		assert.Equal(t, want, DetermineOutputFormat(input), input)
	}
}

func TestComputedPropertiesAccessors(t *testing.T) {
	props := DefaultProperties()
	props.PatchFrom(&OptionalProperties{})
	assert.Equal(t, DefaultProperties(), props)

	size := float32(9)
	opt := OptionalProperties{FontSize: &size}
	assert.True(t, opt.Has("font-size"))
	assert.False(t, opt.Has("color"))
	assert.False(t, opt.Has("nope"))
	assert.Equal(t, 1, opt.Len())

	props.PatchFrom(&opt)
	v, ok := props.Get("font-size")
	require.True(t, ok)
	assert.Equal(t, float32(9), v)

	_, ok = props.Get("nope")
	assert.False(t, ok)
	assert.True(t, IsProperty("stroke-color"))
	assert.False(t, IsProperty("stroke"))
}

func TestWriteJSON(t *testing.T) {
	props := DefaultProperties()
	props.Padding = Sides{Top: 1, Right: 2, Bottom: 3, Left: 4}
	props.FontFamily = Mono

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, props))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 25)
	assert.Equal(t, "inf", got["max-width"])
	assert.Equal(t, "#ff00ff", got["color"])
	assert.Equal(t, "mono", got["font-family"])
	assert.Equal(t, "min", got["align"])
	assert.Equal(t, false, got["italics"])
	assert.Equal(t, map[string]any{"top": 1.0, "right": 2.0, "bottom": 3.0, "left": 4.0}, got["padding"])
}

func TestWriteYAML(t *testing.T) {
	props := DefaultProperties()
	props.Radius = Radius{NW: 1, NE: 2, SE: 3, SW: 4}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, props))

	// Keys stay in schema order.
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "font-size: 4\nfont-family: regular\n"), out)
	assert.Less(t, strings.Index(out, "min-width:"), strings.Index(out, "max-width:"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "inf", got["max-height"])
	assert.Equal(t, map[string]any{"nw": 1, "ne": 2, "sw": 4, "se": 3}, got["radius"])
}

func TestWriteText(t *testing.T) {
	props := DefaultProperties()
	props.Margin = Sides{Top: 1, Right: 2, Bottom: 1, Left: 2}

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, props, OutputText))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 25)
	assert.Equal(t, "font-size", strings.Fields(lines[0])[0])
	assert.Contains(t, buf.String(), "margin               1 2 1 2\n")
	assert.Contains(t, buf.String(), "max-width            inf\n")
	assert.Contains(t, buf.String(), "color                #ff00ff\n")
}
