// Package instruction parses the compact formatting instruction string into
// a validated options record.
//
// The string is whitespace-tokenized. Each single-character key consumes
// exactly one following token; order is irrelevant; stray tokens are
// ignored; a repeated key overwrites the earlier value.
//
//	M <float>   upper margin percentage, 0..100
//	m <float>   lower margin percentage, 0..100
//	C <token>   upper margin colour: r -> red, anything else -> green
//	c <token>   lower margin colour: same mapping
//	p <float>   majority percentage, 0..100
//	s <u|l|b>   formatting mode: upper, lower, both
//	o <int>     row write-offset, >= 0
//	O <int>     column write-offset, >= 0
//
// All eight keys are mandatory. Parse validates the whole string up front
// and reports every missing key and invalid value at once, so a malformed
// instruction never reaches the formatting pass.
package instruction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sheettint/domain/margin"
)

// ErrInvalid is wrapped by every parse failure.
var ErrInvalid = errors.New("invalid instruction string")

// Options is the validated configuration parsed from an instruction string.
type Options struct {
	MarginUpper  float64
	MarginLower  float64
	ColourUpper  margin.Colour
	ColourLower  margin.Colour
	MajorityPct  float64
	Mode         margin.Mode
	RowOffset    int
	ColumnOffset int
}

const keys = "MmCcpsoO"

// Parse tokenizes and validates an instruction string.
func Parse(instructions string) (Options, error) {
	tokens := strings.Fields(instructions)

	var opts Options
	seen := make(map[byte]bool, len(keys))
	var problems []error

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if len(tok) != 1 || !strings.ContainsRune(keys, rune(tok[0])) {
			// stray token, ignored
			continue
		}
		key := tok[0]
		if i+1 >= len(tokens) {
			problems = append(problems, fmt.Errorf("key %q has no value", string(key)))
			seen[key] = true
			continue
		}
		i++
		value := tokens[i]

		if err := apply(&opts, key, value); err != nil {
			problems = append(problems, err)
		}
		seen[key] = true
	}

	for j := 0; j < len(keys); j++ {
		if !seen[keys[j]] {
			problems = append(problems, fmt.Errorf("missing key %q", string(keys[j])))
		}
	}

	if len(problems) > 0 {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return opts, nil
}

func apply(opts *Options, key byte, value string) error {
	switch key {
	case 'M':
		return parsePercent(value, "M", &opts.MarginUpper)
	case 'm':
		return parsePercent(value, "m", &opts.MarginLower)
	case 'C':
		opts.ColourUpper = parseColour(value)
	case 'c':
		opts.ColourLower = parseColour(value)
	case 'p':
		return parsePercent(value, "p", &opts.MajorityPct)
	case 's':
		switch value {
		case "u":
			opts.Mode = margin.ModeUpper
		case "l":
			opts.Mode = margin.ModeLower
		case "b":
			opts.Mode = margin.ModeBoth
		default:
			return fmt.Errorf("key \"s\" expects one of u, l, b, got %q", value)
		}
	case 'o':
		return parseOffset(value, "o", &opts.RowOffset)
	case 'O':
		return parseOffset(value, "O", &opts.ColumnOffset)
	}
	return nil
}

// parseColour maps a colour token: r is red, anything else is green. This
// lenient mapping is part of the public instruction contract.
func parseColour(value string) margin.Colour {
	if value == "r" {
		return margin.Red
	}
	return margin.Green
}

func parsePercent(value, key string, dst *float64) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("key %q expects a number, got %q", key, value)
	}
	if f < 0 || f > 100 {
		return fmt.Errorf("key %q expects a percentage in [0, 100], got %v", key, f)
	}
	*dst = f
	return nil
}

func parseOffset(value, key string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("key %q expects an integer, got %q", key, value)
	}
	if n < 0 {
		return fmt.Errorf("key %q expects a non-negative offset, got %d", key, n)
	}
	*dst = n
	return nil
}
