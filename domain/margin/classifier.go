package margin

import "fmt"

// Colour is a style tag for the output sink. The sink maps it to an actual
// visual style; the domain only knows the two classes.
type Colour int

const (
	Green Colour = iota
	Red
)

func (c Colour) String() string {
	if c == Red {
		return "red"
	}
	return "green"
}

// Mode selects which margins are colourized.
type Mode int

const (
	ModeUpper Mode = iota
	ModeLower
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeUpper:
		return "upper"
	case ModeLower:
		return "lower"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// includesUpper reports whether the mode colourizes the upper margin.
func (m Mode) includesUpper() bool {
	return m == ModeUpper || m == ModeBoth
}

// includesLower reports whether the mode colourizes the lower margin.
func (m Mode) includesLower() bool {
	return m == ModeLower || m == ModeBoth
}

// Directive is one write instruction for the output sink: overwrite the cell
// at (Row, Col) with Value and the style mapped from Colour. Directives are
// ephemeral output, consumed immediately.
type Directive struct {
	Row    int
	Col    int
	Value  float64
	Colour Colour
}

// Classifier decides margin eligibility for the cells of one column, given
// the column's precomputed bounds and extremes.
type Classifier struct {
	Bounds   Bounds
	Extremes Extremes
	Mode     Mode
}

// Classify reports whether v falls in the upper and/or lower margin. The
// upper rule is bounds.Upper <= v <= max, with a strict inequality against
// max when the max is a majority value; the lower rule is symmetric against
// min and bounds.Lower. Checks outside the active mode always report false.
// A value may satisfy both checks in a narrow column.
func (c Classifier) Classify(v float64) (upper, lower bool) {
	if c.Mode.includesUpper() {
		if c.Extremes.MaxMajority {
			upper = c.Extremes.Max > v && v >= c.Bounds.Upper
		} else {
			upper = c.Extremes.Max >= v && v >= c.Bounds.Upper
		}
	}
	if c.Mode.includesLower() {
		if c.Extremes.MinMajority {
			lower = c.Extremes.Min < v && v <= c.Bounds.Lower
		} else {
			lower = c.Extremes.Min <= v && v <= c.Bounds.Lower
		}
	}
	return upper, lower
}
