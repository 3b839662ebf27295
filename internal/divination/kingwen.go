package divination

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a hexagram number outside the King Wen range 1-64.
var ErrOutOfRange = errors.New("hexagram number must be between 1 and 64")

// ErrUnrecognizedGlyph indicates a rune outside the Unicode hexagram block.
var ErrUnrecognizedGlyph = errors.New("rune is not a hexagram glyph")

// ErrPartialVector indicates a vector with an unspecified polarity.
var ErrPartialVector = errors.New("vector must be yin or yang at every position")

// glyphBase is the first codepoint of the Unicode hexagram block, which is
// laid out in King Wen order (U+4DC0 is HEXAGRAM FOR THE CREATIVE HEAVEN).
const glyphBase rune = 0x4DC0

// kingWenBits maps each King Wen sequence number (index+1) to its line
// pattern. Bit 0 is the bottom line and a set bit is yang. The King Wen
// ordering is historical, not arithmetic, so the table is golden data: it is
// verified against the traditional trigram pairings and never computed.
var kingWenBits = [64]uint8{
	63, // 1  Qian, the Creative (heaven over heaven)
	0,  // 2  Kun, the Receptive (earth over earth)
	17, // 3  Zhun, Difficulty at the Beginning
	34, // 4  Meng, Youthful Folly
	23, // 5  Xu, Waiting
	58, // 6  Song, Conflict
	2,  // 7  Shi, the Army
	16, // 8  Bi, Holding Together
	55, // 9  Xiao Chu, the Taming Power of the Small
	59, // 10 Lü, Treading
	7,  // 11 Tai, Peace
	56, // 12 Pi, Standstill
	61, // 13 Tong Ren, Fellowship with Men
	47, // 14 Da You, Possession in Great Measure
	4,  // 15 Qian, Modesty
	8,  // 16 Yu, Enthusiasm
	25, // 17 Sui, Following
	38, // 18 Gu, Work on What Has Been Spoiled
	3,  // 19 Lin, Approach
	48, // 20 Guan, Contemplation
	41, // 21 Shi He, Biting Through
	37, // 22 Bi, Grace
	32, // 23 Bo, Splitting Apart
	1,  // 24 Fu, Return
	57, // 25 Wu Wang, Innocence
	39, // 26 Da Chu, the Taming Power of the Great
	33, // 27 Yi, the Corners of the Mouth
	30, // 28 Da Guo, Preponderance of the Great
	18, // 29 Kan, the Abysmal Water
	45, // 30 Li, the Clinging Fire
	28, // 31 Xian, Influence
	14, // 32 Heng, Duration
	60, // 33 Dun, Retreat
	15, // 34 Da Zhuang, the Power of the Great
	40, // 35 Jin, Progress
	5,  // 36 Ming Yi, Darkening of the Light
	53, // 37 Jia Ren, the Family
	43, // 38 Kui, Opposition
	20, // 39 Jian, Obstruction
	10, // 40 Xie, Deliverance
	35, // 41 Sun, Decrease
	49, // 42 Yi, Increase
	31, // 43 Guai, Breakthrough
	62, // 44 Gou, Coming to Meet
	24, // 45 Cui, Gathering Together
	6,  // 46 Sheng, Pushing Upward
	26, // 47 Kun, Oppression
	22, // 48 Jing, the Well
	29, // 49 Ge, Revolution
	46, // 50 Ding, the Cauldron
	9,  // 51 Zhen, the Arousing Thunder
	36, // 52 Gen, Keeping Still Mountain
	52, // 53 Jian, Development
	11, // 54 Gui Mei, the Marrying Maiden
	13, // 55 Feng, Abundance
	44, // 56 Lü, the Wanderer
	54, // 57 Xun, the Gentle Wind
	27, // 58 Dui, the Joyous Lake
	50, // 59 Huan, Dispersion
	19, // 60 Jie, Limitation
	51, // 61 Zhong Fu, Inner Truth
	12, // 62 Xiao Guo, Preponderance of the Small
	21, // 63 Ji Ji, After Completion
	42, // 64 Wei Ji, Before Completion
}

// bitsToNumber is the reverse index of kingWenBits, built once at init.
var bitsToNumber [64]int

func init() {
	for i, bits := range kingWenBits {
		bitsToNumber[bits] = i + 1
	}
}

// VectorOf returns the line polarities of the hexagram with the given King
// Wen sequence number.
func VectorOf(number int) (Vector, error) {
	if number < 1 || number > 64 {
		return Vector{}, fmt.Errorf("%w: %d", ErrOutOfRange, number)
	}
	bits := kingWenBits[number-1]
	var vector Vector
	for i := range vector {
		if bits&(1<<i) != 0 {
			vector[i] = PolarityYang
		} else {
			vector[i] = PolarityYin
		}
	}
	return vector, nil
}

// NumberOf returns the King Wen sequence number of the hexagram with the
// given line polarities.
func NumberOf(vector Vector) (int, error) {
	var bits uint8
	for i, polarity := range vector {
		switch polarity {
		case PolarityYang:
			bits |= 1 << i
		case PolarityYin:
		default:
			return 0, fmt.Errorf("%w: position %d", ErrPartialVector, i+1)
		}
	}
	return bitsToNumber[bits], nil
}

// GlyphOf returns the Unicode glyph for the hexagram with the given King Wen
// sequence number.
func GlyphOf(number int) (rune, error) {
	if number < 1 || number > 64 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, number)
	}
	return glyphBase + rune(number-1), nil
}

// NumberOfGlyph returns the King Wen sequence number for a Unicode hexagram
// glyph.
func NumberOfGlyph(glyph rune) (int, error) {
	if glyph < glyphBase || glyph > glyphBase+63 {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedGlyph, glyph)
	}
	return int(glyph-glyphBase) + 1, nil
}
