// Package divination implements the hexagram algebra for I Ching readings:
// the three-coin line caster, the King Wen codec, the input normalizer, and
// the reading builder.
package divination

import (
	"errors"
	"fmt"
)

// Polarity is the yin/yang value of a single hexagram line.
type Polarity int

const (
	PolarityUnspecified Polarity = iota
	PolarityYin
	PolarityYang
)

func (p Polarity) String() string {
	switch p {
	case PolarityYin:
		return "Yin"
	case PolarityYang:
		return "Yang"
	default:
		return "Unspecified"
	}
}

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity {
	switch p {
	case PolarityYin:
		return PolarityYang
	case PolarityYang:
		return PolarityYin
	default:
		return PolarityUnspecified
	}
}

// LineValue is the traditional numeric value of a cast line. The three-coin
// method maps heads counts to values: three heads is old yang (9), two heads
// young yin (8), one head young yang (7), no heads old yin (6).
type LineValue int

const (
	OldYin    LineValue = 6
	YoungYang LineValue = 7
	YoungYin  LineValue = 8
	OldYang   LineValue = 9
)

// ErrInvalidLineValue indicates a line value outside {6, 7, 8, 9}.
var ErrInvalidLineValue = errors.New("line value must be 6, 7, 8, or 9")

// Valid reports whether the value is one of the four traditional values.
func (v LineValue) Valid() bool {
	return v >= OldYin && v <= OldYang
}

// Polarity returns the yin/yang polarity of the line. Old yin (6) and young
// yin (8) are yin; young yang (7) and old yang (9) are yang.
func (v LineValue) Polarity() Polarity {
	switch v {
	case OldYin, YoungYin:
		return PolarityYin
	case YoungYang, OldYang:
		return PolarityYang
	default:
		return PolarityUnspecified
	}
}

// Changing reports whether the line is an old (moving) line that flips
// polarity in the transformed hexagram.
func (v LineValue) Changing() bool {
	return v == OldYin || v == OldYang
}

func (v LineValue) String() string {
	switch v {
	case OldYin:
		return "old yin"
	case YoungYang:
		return "young yang"
	case YoungYin:
		return "young yin"
	case OldYang:
		return "old yang"
	default:
		return fmt.Sprintf("invalid(%d)", int(v))
	}
}

// Symbol renders the line in traditional notation, with a marker on
// changing lines.
func (v LineValue) Symbol() string {
	switch v {
	case YoungYang:
		return "━━━━━━"
	case YoungYin:
		return "━━  ━━"
	case OldYang:
		return "━━━━━━ ○"
	case OldYin:
		return "━━  ━━ ×"
	default:
		return "?"
	}
}

// lineFor reconstructs a stable or changing line from its polarity. Stable
// yang is 7 and stable yin is 8; a changing line carries the polarity it had
// before the change, so changing yang is 9 and changing yin is 6.
func lineFor(polarity Polarity, changing bool) LineValue {
	if polarity == PolarityYang {
		if changing {
			return OldYang
		}
		return YoungYang
	}
	if changing {
		return OldYin
	}
	return YoungYin
}

// Vector is an ordered sequence of six line polarities, index 0 holding the
// bottom line. A Vector is only meaningful when every position is yin or
// yang; partial vectors do not occur.
type Vector [6]Polarity
