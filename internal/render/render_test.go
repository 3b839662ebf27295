package render

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/threemachines/i-ching/internal/corpus"
	"github.com/threemachines/i-ching/internal/divination"
)

// corpusSource adapts the embedded corpus to the TextSource interface so
// render tests need no database.
type corpusSource struct {
	data *corpus.Data
}

func (s corpusSource) Hexagram(_ context.Context, number int) (corpus.Hexagram, error) {
	return s.data.Hexagram(number)
}

func (s corpusSource) LineText(_ context.Context, number, position int) (string, error) {
	return s.data.LineText(number, position)
}

func (s corpusSource) Trigram(_ context.Context, name string) (corpus.Trigram, error) {
	return s.data.Trigram(name)
}

func newSource(t *testing.T) corpusSource {
	t.Helper()
	data, err := corpus.Load()
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	return corpusSource{data: data}
}

func mustReading(t *testing.T, notation string) divination.Reading {
	t.Helper()
	reading, err := divination.Parse(notation)
	if err != nil {
		t.Fatalf("parse %q: %v", notation, err)
	}
	return reading
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"brief", "full", "json", "numbers", "motd", " Full ", "JSON"} {
		if _, err := ParseFormat(name); err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("fancy"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderNumbers(t *testing.T) {
	reading := mustReading(t, "7,8,9,6,7,8")
	got, err := Render(context.Background(), newSource(t), reading, "", FormatNumbers)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[7 8 9 6 7 8]" {
		t.Fatalf("numbers output = %q", got)
	}
}

func TestRenderBrief(t *testing.T) {
	reading := mustReading(t, "7,8,9,6,7,8")
	got, err := Render(context.Background(), newSource(t), reading, "should I?", FormatBrief)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Q: should I?", "䷾ 63", "→", "䷐ 17", "(lines: [3 4])"} {
		if !strings.Contains(got, want) {
			t.Fatalf("brief output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderBriefStable(t *testing.T) {
	reading := mustReading(t, "2")
	got, err := Render(context.Background(), newSource(t), reading, "", FormatBrief)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "→") {
		t.Fatalf("stable brief output should have no transition:\n%s", got)
	}
	if !strings.Contains(got, "䷁ 2") {
		t.Fatalf("brief output missing hexagram reference:\n%s", got)
	}
}

func TestRenderMotd(t *testing.T) {
	reading := mustReading(t, "32→34")
	got, err := Render(context.Background(), newSource(t), reading, "", FormatMotd)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "32") || !strings.Contains(got, "CHANGING INTO") || !strings.Contains(got, "34") {
		t.Fatalf("motd output = %q", got)
	}
	if !strings.Contains(got, "DURATION") {
		t.Fatalf("motd output should shout hexagram names: %q", got)
	}
}

func TestRenderFull(t *testing.T) {
	reading := mustReading(t, "9,7,7,7,7,7")
	got, err := Render(context.Background(), newSource(t), reading, "what next", FormatFull)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Question: what next",
		"Hexagram 1",
		"━━━━━━ ○",
		"Traditional numbers: [9 7 7 7 7 7]",
		"Upper trigram",
		"Lower trigram",
		"Judgment:",
		"Image:",
		"=== Changing Lines ===",
		"Line 1:",
		"=== Transforms to",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("full output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderFullMissingLineCommentary(t *testing.T) {
	// Hexagram 3 carries no per-line commentary yet.
	reading := mustReading(t, "9,8,8,8,7,8")
	if reading.Primary != 3 {
		t.Fatalf("primary = %d, want 3", reading.Primary)
	}
	got, err := Render(context.Background(), newSource(t), reading, "", FormatFull)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "(no commentary recorded)") {
		t.Fatalf("full output should note missing commentary:\n%s", got)
	}
}

func TestRenderJSON(t *testing.T) {
	reading := mustReading(t, "9,7,7,7,7,7")
	got, err := Render(context.Background(), newSource(t), reading, "what next", FormatJSON)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var payload JSONReading
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if payload.Question != "what next" {
		t.Fatalf("question = %q", payload.Question)
	}
	if payload.Primary.Number != 1 || payload.Primary.Glyph != "䷀" {
		t.Fatalf("primary = %+v", payload.Primary)
	}
	if len(payload.ChangingLines) != 1 || payload.ChangingLines[0].Position != 1 {
		t.Fatalf("changing lines = %+v", payload.ChangingLines)
	}
	if payload.ChangingLines[0].Text == "" {
		t.Fatalf("hexagram 1 line 1 should carry commentary")
	}
	if payload.Transformed == nil || payload.Transformed.Number != 44 {
		t.Fatalf("transformed = %+v", payload.Transformed)
	}
	if payload.UpperTrigram != "heaven" || payload.LowerTrigram != "heaven" {
		t.Fatalf("trigrams = %q over %q", payload.UpperTrigram, payload.LowerTrigram)
	}
}

func TestBuildJSONReadingStable(t *testing.T) {
	reading := mustReading(t, "64")
	payload, err := BuildJSONReading(context.Background(), newSource(t), reading, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if payload.Transformed != nil {
		t.Fatalf("stable reading has transformed %+v", payload.Transformed)
	}
	if len(payload.ChangingLines) != 0 {
		t.Fatalf("stable reading has changing lines %+v", payload.ChangingLines)
	}
	if payload.Primary.Number != 64 {
		t.Fatalf("primary = %+v", payload.Primary)
	}
}
