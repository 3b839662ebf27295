// Package render formats readings for the CLI front end. It is pure string
// assembly over the engine's Reading and a corpus text source.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/threemachines/i-ching/internal/corpus"
	"github.com/threemachines/i-ching/internal/divination"
)

// TextSource supplies interpretive text for hexagrams and trigrams.
type TextSource interface {
	Hexagram(ctx context.Context, number int) (corpus.Hexagram, error)
	LineText(ctx context.Context, number, position int) (string, error)
	Trigram(ctx context.Context, name string) (corpus.Trigram, error)
}

// Format selects an output rendering.
type Format string

const (
	FormatBrief   Format = "brief"
	FormatFull    Format = "full"
	FormatJSON    Format = "json"
	FormatNumbers Format = "numbers"
	FormatMotd    Format = "motd"
)

// ErrUnknownFormat indicates a format name outside the supported set.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case FormatBrief, FormatFull, FormatJSON, FormatNumbers, FormatMotd:
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Render formats a reading. The question may be empty.
func Render(ctx context.Context, source TextSource, reading divination.Reading, question string, format Format) (string, error) {
	switch format {
	case FormatBrief:
		return renderBrief(ctx, source, reading, question)
	case FormatFull:
		return renderFull(ctx, source, reading, question)
	case FormatJSON:
		return renderJSON(ctx, source, reading, question)
	case FormatNumbers:
		return renderNumbers(reading), nil
	case FormatMotd:
		return renderMotd(ctx, source, reading)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// lineNumbers returns the traditional numeric values of the six lines.
func lineNumbers(reading divination.Reading) []int {
	numbers := make([]int, len(reading.Lines))
	for i, line := range reading.Lines {
		numbers[i] = int(line)
	}
	return numbers
}

func glyphString(number int) string {
	glyph, err := divination.GlyphOf(number)
	if err != nil {
		return "?"
	}
	return string(glyph)
}

func renderNumbers(reading divination.Reading) string {
	return fmt.Sprint(lineNumbers(reading))
}

func renderBrief(ctx context.Context, source TextSource, reading divination.Reading, question string) (string, error) {
	var b strings.Builder
	if question != "" {
		fmt.Fprintf(&b, "Q: %s\n", question)
	}

	primary, err := source.Hexagram(ctx, reading.Primary)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "%s %d %s", glyphString(reading.Primary), reading.Primary, primary.Name)

	if reading.HasChanging() {
		transformed, err := source.Hexagram(ctx, reading.Transformed)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " → %s %d %s", glyphString(reading.Transformed), reading.Transformed, transformed.Name)
		fmt.Fprintf(&b, " (lines: %v)", reading.Changing)
	}
	return b.String(), nil
}

func renderMotd(ctx context.Context, source TextSource, reading divination.Reading) (string, error) {
	primary, err := source.Hexagram(ctx, reading.Primary)
	if err != nil {
		return "", err
	}
	if !reading.HasChanging() {
		return fmt.Sprintf("%s %d %s", glyphString(reading.Primary), reading.Primary, strings.ToUpper(primary.Name)), nil
	}
	transformed, err := source.Hexagram(ctx, reading.Transformed)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s→%s %d %s CHANGING INTO %d %s",
		glyphString(reading.Primary),
		glyphString(reading.Transformed),
		reading.Primary,
		strings.ToUpper(primary.Name),
		reading.Transformed,
		strings.ToUpper(transformed.Name),
	), nil
}

func renderFull(ctx context.Context, source TextSource, reading divination.Reading, question string) (string, error) {
	var b strings.Builder
	if question != "" {
		fmt.Fprintf(&b, "Question: %s\n\n", question)
	}

	primary, err := source.Hexagram(ctx, reading.Primary)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "Hexagram %d %s\n", reading.Primary, glyphString(reading.Primary))
	// Top line first, the way a hexagram is drawn.
	for i := len(reading.Lines) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%d: %s\n", i+1, reading.Lines[i].Symbol())
	}

	fmt.Fprintf(&b, "\nTraditional numbers: %v\n", lineNumbers(reading))
	if err := writeTrigram(ctx, source, &b, "Upper trigram", primary.UpperTrigram); err != nil {
		return "", err
	}
	if err := writeTrigram(ctx, source, &b, "Lower trigram", primary.LowerTrigram); err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "\n=== %s %s ===\n", glyphString(reading.Primary), primary.Name)
	fmt.Fprintf(&b, "Chinese: %s (%s)\n", primary.Chinese, primary.Pinyin)
	fmt.Fprintf(&b, "\nJudgment: %s\n", primary.Judgment)
	fmt.Fprintf(&b, "\nImage: %s\n", primary.Image)

	if reading.HasChanging() {
		fmt.Fprintf(&b, "\n=== Changing Lines ===\n")
		for _, position := range reading.Changing {
			text, err := source.LineText(ctx, reading.Primary, position)
			if errors.Is(err, corpus.ErrNotFound) {
				fmt.Fprintf(&b, "Line %d: (no commentary recorded)\n", position)
				continue
			}
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "Line %d: %s\n", position, text)
		}

		transformed, err := source.Hexagram(ctx, reading.Transformed)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n=== Transforms to %s %s ===\n", glyphString(reading.Transformed), transformed.Name)
		fmt.Fprintf(&b, "Chinese: %s (%s)\n", transformed.Chinese, transformed.Pinyin)
		fmt.Fprintf(&b, "Judgment: %s\n", transformed.Judgment)
	}

	return b.String(), nil
}

func writeTrigram(ctx context.Context, source TextSource, b *strings.Builder, label, name string) error {
	trigram, err := source.Trigram(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "%s: %s %s (%s)\n", label, trigram.Chinese, name, trigram.Attribute)
	return nil
}

// JSONHexagram is the JSON rendering of one hexagram's corpus entry.
type JSONHexagram struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Chinese  string `json:"chinese"`
	Pinyin   string `json:"pinyin"`
	Glyph    string `json:"glyph"`
	Judgment string `json:"judgment"`
	Image    string `json:"image"`
}

// JSONLine is the JSON rendering of one changing line.
type JSONLine struct {
	Position int    `json:"position"`
	Text     string `json:"text,omitempty"`
}

// JSONReading is the JSON rendering of a full reading.
type JSONReading struct {
	Question      string        `json:"question,omitempty"`
	Lines         []int         `json:"lines"`
	Primary       JSONHexagram  `json:"primary_hexagram"`
	ChangingLines []JSONLine    `json:"changing_lines"`
	Transformed   *JSONHexagram `json:"transformed_hexagram,omitempty"`
	UpperTrigram  string        `json:"upper_trigram"`
	LowerTrigram  string        `json:"lower_trigram"`
}

func jsonHexagram(entry corpus.Hexagram) JSONHexagram {
	return JSONHexagram{
		Number:   entry.Number,
		Name:     entry.Name,
		Chinese:  entry.Chinese,
		Pinyin:   entry.Pinyin,
		Glyph:    glyphString(entry.Number),
		Judgment: entry.Judgment,
		Image:    entry.Image,
	}
}

// BuildJSONReading assembles the JSON payload for a reading. The MCP
// interpret tool shares it with the CLI's json format.
func BuildJSONReading(ctx context.Context, source TextSource, reading divination.Reading, question string) (JSONReading, error) {
	primary, err := source.Hexagram(ctx, reading.Primary)
	if err != nil {
		return JSONReading{}, err
	}

	payload := JSONReading{
		Question:      question,
		Lines:         lineNumbers(reading),
		Primary:       jsonHexagram(primary),
		ChangingLines: make([]JSONLine, 0, len(reading.Changing)),
		UpperTrigram:  primary.UpperTrigram,
		LowerTrigram:  primary.LowerTrigram,
	}

	for _, position := range reading.Changing {
		line := JSONLine{Position: position}
		text, err := source.LineText(ctx, reading.Primary, position)
		if err != nil && !errors.Is(err, corpus.ErrNotFound) {
			return JSONReading{}, err
		}
		if err == nil {
			line.Text = text
		}
		payload.ChangingLines = append(payload.ChangingLines, line)
	}

	if reading.HasChanging() {
		transformed, err := source.Hexagram(ctx, reading.Transformed)
		if err != nil {
			return JSONReading{}, err
		}
		entry := jsonHexagram(transformed)
		payload.Transformed = &entry
	}

	return payload, nil
}

func renderJSON(ctx context.Context, source TextSource, reading divination.Reading, question string) (string, error) {
	payload, err := BuildJSONReading(ctx, source, reading, question)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal reading: %w", err)
	}
	return string(data), nil
}
