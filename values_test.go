package themecss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSides(t *testing.T) {
	tests := []struct {
		input   string
		want    Sides
		wantErr bool
	}{
		{input: "4", want: Sides{Top: 4, Right: 4, Bottom: 4, Left: 4}},
		{input: "1 2", want: Sides{Top: 1, Right: 2, Bottom: 1, Left: 2}},
		{input: "1 2 3 4", want: Sides{Top: 1, Right: 2, Bottom: 3, Left: 4}},
		{input: "  1.5   -2 ", want: Sides{Top: 1.5, Right: -2, Bottom: 1.5, Left: -2}},
		{input: "", wantErr: true},
		{input: "1 2 3", wantErr: true},
		{input: "1 2 3 4 5", wantErr: true},
		{input: "1 x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSides(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRadius(t *testing.T) {
	tests := []struct {
		input   string
		want    Radius
		wantErr bool
	}{
		{input: "5", want: Radius{NW: 5, NE: 5, SE: 5, SW: 5}},
		{input: "1 2 3 4", want: Radius{NW: 1, NE: 2, SE: 3, SW: 4}},
		{input: "1 2", wantErr: true},
		{input: "1 2 3", wantErr: true},
		{input: "big", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRadius(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{input: "#F06", want: Color{R: 255, G: 0, B: 102, A: 1}},
		{input: "#ff0066", want: Color{R: 255, G: 0, B: 102, A: 1}},
		{input: "#000000ff", want: Color{A: 1}},
		{input: "#0000", want: Color{A: 0}},
		{input: "red", want: Color{R: 255, A: 1}},
		{input: "CornflowerBlue", want: Color{R: 100, G: 149, B: 237, A: 1}},
		{input: "transparent", want: Color{}},
		{input: "rgb(255, 0, 102)", want: Color{R: 255, G: 0, B: 102, A: 1}},
		{input: "rgb(255 0 102 / 50%)", want: Color{R: 255, G: 0, B: 102, A: 0.5}},
		{input: "rgba(0,0,0,0.5)", want: Color{A: 0.5}},
		{input: "rgb(100%, 0%, 0%)", want: Color{R: 255, A: 1}},
		{input: "rgb(300, -5, 0)", want: Color{R: 255, A: 1}},
		{input: "hsl(0, 100%, 50%)", want: Color{R: 255, A: 1}},
		{input: "hsla(120deg, 100%, 50%, 1)", want: Color{G: 255, A: 1}},
		{input: "#12", wantErr: true},
		{input: "#ggg", wantErr: true},
		{input: "#12345z", wantErr: true},
		{input: "#f0g", wantErr: true},
		{input: "#ff00660z", wantErr: true},
		{input: "nocolor", wantErr: true},
		{input: "rgb(1, 2)", wantErr: true},
		{input: "rgb(1, 2, 3", wantErr: true},
		{input: "foo(1, 2, 3)", wantErr: true},
		{input: "hsl(1turn, 50%, 50%)", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#ff0066", Color{R: 255, B: 102, A: 1}.String())
	assert.Equal(t, "rgba(0, 0, 0, 0.5)", Color{A: 0.5}.String())
	assert.Equal(t, "#ff00ff", InvalidColor.String())
}

func TestParseScalars(t *testing.T) {
	f, err := ParseFloat(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, float32(12.5), f)

	_, err = ParseFloat("12px")
	assert.ErrorIs(t, err, ErrInvalidValue)

	b, err := ParseBool("true")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = ParseBool("True")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseBool("1")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseAlign(t *testing.T) {
	tests := map[string]Align{
		"center": Center,
		"min":    Min,
		"left":   Min,
		"bottom": Min,
		"max":    Max,
		"right":  Max,
		"top":    Max,
	}
	for input, want := range tests {
		got, err := ParseAlign(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseAlign("middle")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseAlign("Center")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseFontFamily(t *testing.T) {
	tests := map[string]FontFamily{
		"bold":    Bold,
		"BOLD":    Bold,
		"Regular": Regular,
		"mono":    Mono,
	}
	for input, want := range tests {
		got, err := ParseFontFamily(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseFontFamily("serif")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
