package instruction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheettint/domain/margin"
)

func TestParse_RoundTrip(t *testing.T) {
	opts, err := Parse("M 5.0 m 10.0 C g c r p 10.0 s b o 1 O 0")
	require.NoError(t, err)

	assert.Equal(t, Options{
		MarginUpper:  5.0,
		MarginLower:  10.0,
		ColourUpper:  margin.Green,
		ColourLower:  margin.Red,
		MajorityPct:  10.0,
		Mode:         margin.ModeBoth,
		RowOffset:    1,
		ColumnOffset: 0,
	}, opts)
}

func TestParse_OrderIsIrrelevant(t *testing.T) {
	a, err := Parse("M 5.0 m 10.0 C g c r p 10.0 s b o 1 O 0")
	require.NoError(t, err)
	b, err := Parse("O 0 o 1 s b p 10.0 c r C g m 10.0 M 5.0")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParse_StrayTokensAreIgnored(t *testing.T) {
	opts, err := Parse("hello M 5.0 m 10.0 world C g c r p 10.0 s b o 1 O 0 !!")
	require.NoError(t, err)
	assert.Equal(t, 5.0, opts.MarginUpper)
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	opts, err := Parse("M 5.0 M 7.5 m 10.0 C g c r p 10.0 s b o 1 O 0")
	require.NoError(t, err)
	assert.Equal(t, 7.5, opts.MarginUpper)
}

func TestParse_ModeVariants(t *testing.T) {
	tests := []struct {
		token string
		want  margin.Mode
	}{
		{token: "u", want: margin.ModeUpper},
		{token: "l", want: margin.ModeLower},
		{token: "b", want: margin.ModeBoth},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			opts, err := Parse("M 5 m 5 C g c r p 10 s " + tt.token + " o 0 O 0")
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Mode)
		})
	}
}

func TestParse_ColourMapping(t *testing.T) {
	// r maps to red, any other token maps to green
	opts, err := Parse("M 5 m 5 C r c anything p 10 s b o 0 O 0")
	require.NoError(t, err)
	assert.Equal(t, margin.Red, opts.ColourUpper)
	assert.Equal(t, margin.Green, opts.ColourLower)
}

func TestParse_ReportsAllMissingKeys(t *testing.T) {
	_, err := Parse("M 5.0 s b")
	require.ErrorIs(t, err, ErrInvalid)

	for _, key := range []string{"m", "C", "c", "p", "o", "O"} {
		assert.ErrorContains(t, err, `missing key "`+key+`"`)
	}
	assert.NotContains(t, err.Error(), `missing key "M"`)
	assert.NotContains(t, err.Error(), `missing key "s"`)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		wantContains string
	}{
		{
			name:         "non numeric margin",
			instructions: "M abc m 10 C g c r p 10 s b o 0 O 0",
			wantContains: `key "M" expects a number`,
		},
		{
			name:         "margin above 100",
			instructions: "M 101 m 10 C g c r p 10 s b o 0 O 0",
			wantContains: `key "M" expects a percentage in [0, 100]`,
		},
		{
			name:         "unknown mode",
			instructions: "M 5 m 10 C g c r p 10 s x o 0 O 0",
			wantContains: `key "s" expects one of u, l, b`,
		},
		{
			name:         "negative offset",
			instructions: "M 5 m 10 C g c r p 10 s b o -1 O 0",
			wantContains: `key "o" expects a non-negative offset`,
		},
		{
			name:         "fractional offset",
			instructions: "M 5 m 10 C g c r p 10 s b o 1.5 O 0",
			wantContains: `key "o" expects an integer`,
		},
		{
			name:         "key at end of string",
			instructions: "M 5 m 10 C g c r p 10 s b o 0 O",
			wantContains: `key "O" has no value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.instructions)
			require.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.wantContains)
		})
	}
}

func TestParse_EmptyString(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, `missing key "M"`)
}
