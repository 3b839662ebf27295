package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/threemachines/i-ching/internal/divination"
	"github.com/threemachines/i-ching/internal/platform/random"
	"github.com/threemachines/i-ching/internal/render"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/threemachines/i-ching/internal/services/mcp/domain")

// HexagramRef identifies one hexagram in a tool result.
type HexagramRef struct {
	Number int    `json:"number" jsonschema:"King Wen sequence number, 1 through 64"`
	Name   string `json:"name" jsonschema:"traditional English name"`
	Glyph  string `json:"glyph" jsonschema:"Unicode hexagram character"`
}

// CastInput represents the MCP tool input for casting a reading.
type CastInput struct {
	Question string `json:"question,omitempty" jsonschema:"optional question to record with the reading"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for a deterministic cast"`
	Lines    []int  `json:"lines,omitempty" jsonschema:"optional six pre-cast line values (6-9, bottom first); skips the coin toss"`
}

// CastResult represents the MCP tool output for casting a reading.
type CastResult struct {
	Question    string       `json:"question,omitempty" jsonschema:"question recorded with the reading"`
	Lines       []int        `json:"lines" jsonschema:"six traditional line values, bottom line first"`
	Primary     HexagramRef  `json:"primary" jsonschema:"hexagram formed by the cast lines"`
	Changing    []int        `json:"changing" jsonschema:"one-indexed positions of changing lines"`
	Transformed *HexagramRef `json:"transformed,omitempty" jsonschema:"hexagram after changing lines flip"`
	SeedUsed    int64        `json:"seed_used" jsonschema:"seed value used by the caster"`
}

// InterpretInput represents the MCP tool input for interpreting a reading.
type InterpretInput struct {
	Reading  string `json:"reading" jsonschema:"reading in any supported notation: sequence number, glyph, six line values, or a transition like 32→34"`
	Question string `json:"question,omitempty" jsonschema:"optional question to record with the reading"`
}

// InterpretResult represents the MCP tool output for interpreting a reading.
type InterpretResult struct {
	Reading render.JSONReading `json:"reading" jsonschema:"full reading with corpus text"`
}

// LineOddsInput represents the MCP tool input for line odds.
type LineOddsInput struct{}

// LineOdds represents the cast probability of one line value.
type LineOdds struct {
	Value   int    `json:"value" jsonschema:"traditional line value, 6 through 9"`
	Name    string `json:"name" jsonschema:"line value name"`
	Chances int    `json:"chances" jsonschema:"favorable outcomes out of eight"`
	OutOf   int    `json:"out_of" jsonschema:"total equally likely coin outcomes"`
}

// LineOddsResult represents the MCP tool output for line odds.
type LineOddsResult struct {
	Method   string     `json:"method" jsonschema:"divination method the odds describe"`
	Outcomes []LineOdds `json:"outcomes" jsonschema:"per-value probabilities"`
}

// CastTool defines the MCP tool schema for casting a reading.
func CastTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "iching_cast",
		Description: "Casts a six-line I Ching reading with the three-coin method",
	}
}

// InterpretTool defines the MCP tool schema for interpreting a reading.
func InterpretTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "iching_interpret",
		Description: "Interprets a reading given in any supported notation",
	}
}

// LineOddsTool defines the MCP tool schema for line odds.
func LineOddsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "iching_line_odds",
		Description: "Describes the three-coin probability of each line value",
	}
}

func hexagramRef(ctx context.Context, source render.TextSource, number int) (HexagramRef, error) {
	entry, err := source.Hexagram(ctx, number)
	if err != nil {
		return HexagramRef{}, fmt.Errorf("look up hexagram %d: %w", number, err)
	}
	glyph, err := divination.GlyphOf(number)
	if err != nil {
		return HexagramRef{}, err
	}
	return HexagramRef{Number: number, Name: entry.Name, Glyph: string(glyph)}, nil
}

// castReading resolves the cast for a tool input: pre-cast lines when the
// client already tossed its own coins, a seeded coin cast otherwise.
func castReading(input CastInput) (divination.Reading, int64, error) {
	if len(input.Lines) > 0 {
		if len(input.Lines) != 6 {
			return divination.Reading{}, 0, fmt.Errorf("expected 6 line values, got %d", len(input.Lines))
		}
		var lines [6]divination.LineValue
		for i, value := range input.Lines {
			lines[i] = divination.LineValue(value)
		}
		reading, err := divination.BuildFromLines(lines)
		if err != nil {
			return divination.Reading{}, 0, err
		}
		return reading, 0, nil
	}

	seed := int64(0)
	if input.Seed != nil {
		seed = *input.Seed
	} else {
		generated, err := random.NewSeed()
		if err != nil {
			return divination.Reading{}, 0, err
		}
		seed = generated
	}
	reading, err := divination.Cast(divination.CastRequest{Seed: seed})
	if err != nil {
		return divination.Reading{}, 0, fmt.Errorf("cast reading: %w", err)
	}
	return reading, seed, nil
}

// CastHandler casts a fresh reading, seeding from the OS unless the client
// supplies a seed or pre-cast lines.
func CastHandler(source render.TextSource) mcp.ToolHandlerFor[CastInput, CastResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CastInput) (*mcp.CallToolResult, CastResult, error) {
		ctx, span := tracer.Start(ctx, "iching.cast")
		defer span.End()

		reading, seed, err := castReading(input)
		if err != nil {
			return nil, CastResult{}, err
		}

		primary, err := hexagramRef(ctx, source, reading.Primary)
		if err != nil {
			return nil, CastResult{}, err
		}

		result := CastResult{
			Question: input.Question,
			Lines:    make([]int, len(reading.Lines)),
			Primary:  primary,
			Changing: reading.Changing,
			SeedUsed: seed,
		}
		for i, line := range reading.Lines {
			result.Lines[i] = int(line)
		}

		if reading.HasChanging() {
			transformed, err := hexagramRef(ctx, source, reading.Transformed)
			if err != nil {
				return nil, CastResult{}, err
			}
			result.Transformed = &transformed
		}

		return nil, result, nil
	}
}

// InterpretHandler resolves any supported notation into a reading with corpus
// text attached.
func InterpretHandler(source render.TextSource) mcp.ToolHandlerFor[InterpretInput, InterpretResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InterpretInput) (*mcp.CallToolResult, InterpretResult, error) {
		ctx, span := tracer.Start(ctx, "iching.interpret")
		defer span.End()

		reading, err := divination.Parse(input.Reading)
		if err != nil {
			return nil, InterpretResult{}, fmt.Errorf("parse reading %q: %w", input.Reading, err)
		}

		payload, err := render.BuildJSONReading(ctx, source, reading, input.Question)
		if err != nil {
			return nil, InterpretResult{}, err
		}
		return nil, InterpretResult{Reading: payload}, nil
	}
}

// LineOddsHandler reports the three-coin probability model.
func LineOddsHandler() mcp.ToolHandlerFor[LineOddsInput, LineOddsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ LineOddsInput) (*mcp.CallToolResult, LineOddsResult, error) {
		odds := divination.LineOdds()
		result := LineOddsResult{Method: "three-coin"}
		for _, value := range []divination.LineValue{divination.OldYin, divination.YoungYang, divination.YoungYin, divination.OldYang} {
			result.Outcomes = append(result.Outcomes, LineOdds{
				Value:   int(value),
				Name:    value.String(),
				Chances: odds[value],
				OutOf:   8,
			})
		}
		return nil, result, nil
	}
}
