package divination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedLineSequence indicates a comma-separated line notation with the
// wrong number of values or a value outside {6, 7, 8, 9}.
var ErrMalformedLineSequence = errors.New("malformed line sequence")

// ErrMalformedTransition indicates a transition notation whose sides do not
// resolve to hexagrams.
var ErrMalformedTransition = errors.New("malformed transition")

// ErrUnknownNotation indicates raw input matching none of the accepted forms.
var ErrUnknownNotation = errors.New("input is not a recognized hexagram notation")

// Notation is the canonical form of one raw input string: either six line
// values, or a primary hexagram number with an optional transformed number
// for transition notation.
type Notation struct {
	Lines       []LineValue
	Primary     int
	Transformed int
}

// transitionArrows are the accepted separators for changing-hexagram
// notation, e.g. "32→34" or "32->34".
var transitionArrows = []string{"→", "->"}

// ParseNotation normalizes one of the four accepted notations:
//
//   - a hexagram number in 1-64, e.g. "32"
//   - a Unicode hexagram glyph, e.g. "䷟"
//   - six comma-separated line values, e.g. "7,8,9,6,7,8"
//   - a transition between two hexagram references, e.g. "32→34" or "䷀->䷁"
//
// The offending raw input is preserved in every parse error.
func ParseNotation(raw string) (Notation, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Notation{}, fmt.Errorf("%w: empty input", ErrUnknownNotation)
	}

	for _, arrow := range transitionArrows {
		if index := strings.Index(input, arrow); index >= 0 {
			return parseTransition(input, input[:index], input[index+len(arrow):])
		}
	}

	if strings.Contains(input, ",") {
		return parseLineSequence(input)
	}

	if number, err := strconv.Atoi(input); err == nil {
		if number < 1 || number > 64 {
			return Notation{}, fmt.Errorf("%w: %q", ErrOutOfRange, input)
		}
		return Notation{Primary: number}, nil
	}

	if utf8.RuneCountInString(input) == 1 {
		glyph, _ := utf8.DecodeRuneInString(input)
		number, err := NumberOfGlyph(glyph)
		if err != nil {
			return Notation{}, err
		}
		return Notation{Primary: number}, nil
	}

	return Notation{}, fmt.Errorf("%w: %q", ErrUnknownNotation, raw)
}

// Build turns a canonical notation into a reading via the matching builder
// path.
func Build(notation Notation) (Reading, error) {
	if len(notation.Lines) > 0 {
		var lines [6]LineValue
		copy(lines[:], notation.Lines)
		return BuildFromLines(lines)
	}
	if notation.Transformed != 0 {
		return BuildFromTransition(notation.Primary, notation.Transformed)
	}
	return BuildFromNumber(notation.Primary)
}

// Parse normalizes a raw notation and builds its reading.
func Parse(raw string) (Reading, error) {
	notation, err := ParseNotation(raw)
	if err != nil {
		return Reading{}, err
	}
	return Build(notation)
}

// BuildFromNumber builds the all-stable reading for a hexagram number: every
// line is young, so the reading has no changing lines and no transformed
// hexagram.
func BuildFromNumber(number int) (Reading, error) {
	vector, err := VectorOf(number)
	if err != nil {
		return Reading{}, err
	}
	var lines [6]LineValue
	for i := range lines {
		lines[i] = lineFor(vector[i], false)
	}
	return BuildFromLines(lines)
}

// parseLineSequence parses exactly six comma-separated line values.
func parseLineSequence(input string) (Notation, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 6 {
		return Notation{}, fmt.Errorf("%w: expected 6 line values, got %d", ErrMalformedLineSequence, len(parts))
	}
	lines := make([]LineValue, 0, 6)
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Notation{}, fmt.Errorf("%w: %q at position %d is not an integer", ErrMalformedLineSequence, strings.TrimSpace(part), i+1)
		}
		line := LineValue(value)
		if !line.Valid() {
			return Notation{}, fmt.Errorf("%w: value %d at position %d must be 6, 7, 8, or 9", ErrMalformedLineSequence, value, i+1)
		}
		lines = append(lines, line)
	}
	return Notation{Lines: lines}, nil
}

// parseTransition parses a changing-hexagram notation. Either side may be a
// hexagram number or a glyph.
func parseTransition(raw, from, to string) (Notation, error) {
	primary, err := resolveReference(from)
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q: %v", ErrMalformedTransition, raw, err)
	}
	transformed, err := resolveReference(to)
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q: %v", ErrMalformedTransition, raw, err)
	}
	if primary == transformed {
		return Notation{}, fmt.Errorf("%w: %q", ErrIdenticalTransition, raw)
	}
	return Notation{Primary: primary, Transformed: transformed}, nil
}

// resolveReference resolves a single hexagram reference, numeric or glyph.
func resolveReference(raw string) (int, error) {
	input := strings.TrimSpace(raw)
	if number, err := strconv.Atoi(input); err == nil {
		if number < 1 || number > 64 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, number)
		}
		return number, nil
	}
	if utf8.RuneCountInString(input) == 1 {
		glyph, _ := utf8.DecodeRuneInString(input)
		return NumberOfGlyph(glyph)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNotation, input)
}
