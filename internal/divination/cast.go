package divination

import (
	"math/rand"
)

// CastRequest describes a request to cast a full six-line reading.
type CastRequest struct {
	Seed int64
}

// CastLine casts a single line with three coins. Each coin is an independent
// fair draw; the count of heads selects the line value (three heads is old
// yang, none is old yin). The three draws are performed one by one rather
// than collapsed into a single draw over eight outcomes: the per-coin draw
// is the unit of the rite.
func CastLine(rng *rand.Rand) LineValue {
	heads := 0
	for i := 0; i < 3; i++ {
		heads += rng.Intn(2)
	}
	switch heads {
	case 3:
		return OldYang
	case 2:
		return YoungYin
	case 1:
		return YoungYang
	default:
		return OldYin
	}
}

// Cast casts six lines bottom to top and builds the resulting reading.
//
// Cast is deterministic with respect to the Seed field: the same seed always
// produces the same reading. Callers wanting an unpredictable reading obtain
// a seed from the random package first.
func Cast(request CastRequest) (Reading, error) {
	rng := rand.New(rand.NewSource(request.Seed))
	var lines [6]LineValue
	for i := range lines {
		lines[i] = CastLine(rng)
	}
	return BuildFromLines(lines)
}

// LineOdds counts, for each line value, the number of three-coin outcomes
// that produce it out of the 8 equally likely tosses. The counts follow the
// binomial(3, 1/2) distribution over heads: 1 for old yin, 3 for young
// yang, 3 for young yin, 1 for old yang.
func LineOdds() map[LineValue]int {
	return map[LineValue]int{
		OldYin:    1,
		YoungYang: 3,
		YoungYin:  3,
		OldYang:   1,
	}
}
