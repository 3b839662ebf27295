package divination

import (
	"errors"
	"fmt"
)

// ErrIdenticalTransition indicates a transition notation whose two hexagrams
// are the same, leaving no changing line to derive.
var ErrIdenticalTransition = errors.New("transition requires two distinct hexagrams")

// Reading is the immutable result of one divination request: the six cast
// lines, the primary hexagram they encode, the 1-indexed positions of the
// changing lines, and the hexagram those changes lead to. Transformed is
// zero when no line is changing.
type Reading struct {
	Lines       [6]LineValue
	Primary     int
	Changing    []int
	Transformed int
}

// HasChanging reports whether any line of the reading is changing.
func (r Reading) HasChanging() bool {
	return len(r.Changing) > 0
}

// Vector returns the polarities of the primary hexagram, bottom line first.
func (r Reading) Vector() Vector {
	var vector Vector
	for i, line := range r.Lines {
		vector[i] = line.Polarity()
	}
	return vector
}

// LowerTrigram returns the polarities of lines 1-3.
func (r Reading) LowerTrigram() [3]Polarity {
	vector := r.Vector()
	return [3]Polarity{vector[0], vector[1], vector[2]}
}

// UpperTrigram returns the polarities of lines 4-6.
func (r Reading) UpperTrigram() [3]Polarity {
	vector := r.Vector()
	return [3]Polarity{vector[3], vector[4], vector[5]}
}

// BuildFromLines derives a complete reading from six cast line values. The
// primary hexagram comes from the line polarities; every old line is a
// changing line, and flipping polarity at exactly those positions yields the
// transformed hexagram.
func BuildFromLines(lines [6]LineValue) (Reading, error) {
	var vector Vector
	var changing []int
	for i, line := range lines {
		if !line.Valid() {
			return Reading{}, fmt.Errorf("%w: got %d at position %d", ErrInvalidLineValue, int(line), i+1)
		}
		vector[i] = line.Polarity()
		if line.Changing() {
			changing = append(changing, i+1)
		}
	}

	primary, err := NumberOf(vector)
	if err != nil {
		return Reading{}, err
	}

	reading := Reading{
		Lines:    lines,
		Primary:  primary,
		Changing: changing,
	}
	if len(changing) == 0 {
		return reading, nil
	}

	transformed := vector
	for _, position := range changing {
		transformed[position-1] = transformed[position-1].Flip()
	}
	reading.Transformed, err = NumberOf(transformed)
	if err != nil {
		return Reading{}, err
	}
	return reading, nil
}

// BuildFromTransition reconstructs a reading from a primary and transformed
// hexagram pair. Positions where the two vectors agree become stable lines
// (7 for yang, 8 for yin); positions where they differ become changing lines
// carrying the primary polarity (9 for yang collapsing to yin, 6 for yin
// rising to yang).
//
// The reconstruction is lossy by nature of the notation: the coin history
// behind each stable line is gone, but polarity and changing status are
// fully determined by which hexagram is primary and which is transformed.
func BuildFromTransition(primary, transformed int) (Reading, error) {
	if primary == transformed {
		return Reading{}, fmt.Errorf("%w: %d", ErrIdenticalTransition, primary)
	}
	primaryVector, err := VectorOf(primary)
	if err != nil {
		return Reading{}, err
	}
	transformedVector, err := VectorOf(transformed)
	if err != nil {
		return Reading{}, err
	}

	var lines [6]LineValue
	for i := range lines {
		lines[i] = lineFor(primaryVector[i], primaryVector[i] != transformedVector[i])
	}
	return BuildFromLines(lines)
}
