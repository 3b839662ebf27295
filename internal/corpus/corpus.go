// Package corpus holds the interpretive text for hexagrams and trigrams.
// The text is a read-only key→text store keyed by King Wen number and, for
// line commentary, by line position. The engine itself never reads it; only
// the rendering and interpretation layers do.
package corpus

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

//go:embed data/hexagrams.json data/trigrams.json
var dataFS embed.FS

// ErrNotFound indicates a corpus key with no text.
//
// TODO: ingest the remaining per-line commentary from the Legge translation;
// today only hexagrams 1 and 2 carry line text.
var ErrNotFound = errors.New("corpus entry not found")

// Hexagram is one interpretive corpus entry.
type Hexagram struct {
	Number       int               `json:"number"`
	Name         string            `json:"name"`
	Chinese      string            `json:"chinese"`
	Pinyin       string            `json:"pinyin"`
	LowerTrigram string            `json:"lower_trigram"`
	UpperTrigram string            `json:"upper_trigram"`
	Judgment     string            `json:"judgment"`
	Image        string            `json:"image"`
	Lines        map[string]string `json:"lines,omitempty"`
}

// Trigram is one of the eight three-line figures referenced by hexagram
// entries.
type Trigram struct {
	Chinese   string `json:"chinese"`
	Pinyin    string `json:"pinyin"`
	Attribute string `json:"attribute"`
	Image     string `json:"image"`
	Lines     string `json:"lines"`
}

// Data is the fully loaded corpus.
type Data struct {
	hexagrams map[string]Hexagram
	trigrams  map[string]Trigram
}

// Load parses the embedded corpus.
func Load() (*Data, error) {
	hexagramsRaw, err := dataFS.ReadFile("data/hexagrams.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded hexagrams: %w", err)
	}
	trigramsRaw, err := dataFS.ReadFile("data/trigrams.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded trigrams: %w", err)
	}

	hexagrams := make(map[string]Hexagram)
	if err := json.Unmarshal(hexagramsRaw, &hexagrams); err != nil {
		return nil, fmt.Errorf("parse hexagrams: %w", err)
	}
	trigrams := make(map[string]Trigram)
	if err := json.Unmarshal(trigramsRaw, &trigrams); err != nil {
		return nil, fmt.Errorf("parse trigrams: %w", err)
	}
	if len(hexagrams) != 64 {
		return nil, fmt.Errorf("corpus has %d hexagrams, want 64", len(hexagrams))
	}
	if len(trigrams) != 8 {
		return nil, fmt.Errorf("corpus has %d trigrams, want 8", len(trigrams))
	}

	return &Data{hexagrams: hexagrams, trigrams: trigrams}, nil
}

// Hexagram returns the corpus entry for a King Wen number.
func (d *Data) Hexagram(number int) (Hexagram, error) {
	entry, ok := d.hexagrams[strconv.Itoa(number)]
	if !ok {
		return Hexagram{}, fmt.Errorf("%w: hexagram %d", ErrNotFound, number)
	}
	return entry, nil
}

// LineText returns the commentary for one line of a hexagram, positions 1-6
// counted from the bottom.
func (d *Data) LineText(number, position int) (string, error) {
	entry, err := d.Hexagram(number)
	if err != nil {
		return "", err
	}
	text, ok := entry.Lines[strconv.Itoa(position)]
	if !ok {
		return "", fmt.Errorf("%w: hexagram %d line %d", ErrNotFound, number, position)
	}
	return text, nil
}

// Trigram returns a trigram entry by its corpus key ("heaven", "lake", ...).
func (d *Data) Trigram(name string) (Trigram, error) {
	entry, ok := d.trigrams[name]
	if !ok {
		return Trigram{}, fmt.Errorf("%w: trigram %q", ErrNotFound, name)
	}
	return entry, nil
}

// Hexagrams returns all entries, for seeding stores.
func (d *Data) Hexagrams() []Hexagram {
	entries := make([]Hexagram, 0, len(d.hexagrams))
	for _, entry := range d.hexagrams {
		entries = append(entries, entry)
	}
	return entries
}

// Trigrams returns all trigram entries keyed by name, for seeding stores.
func (d *Data) Trigrams() map[string]Trigram {
	entries := make(map[string]Trigram, len(d.trigrams))
	for name, entry := range d.trigrams {
		entries[name] = entry
	}
	return entries
}
