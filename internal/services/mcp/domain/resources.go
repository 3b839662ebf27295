package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/threemachines/i-ching/internal/render"
)

const hexagramURIPrefix = "iching://hexagram/"

// HexagramResourceTemplate defines the readable hexagram resource.
func HexagramResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "hexagram",
		Description: "Corpus entry for one hexagram by King Wen number",
		URITemplate: "iching://hexagram/{number}",
		MIMEType:    "application/json",
	}
}

// parseHexagramNumberFromURI extracts the sequence number from a URI of the
// form iching://hexagram/{number}.
func parseHexagramNumberFromURI(uri string) (int, error) {
	rest, ok := strings.CutPrefix(uri, hexagramURIPrefix)
	if !ok {
		return 0, fmt.Errorf("unexpected resource URI %q; use format %s{number}", uri, hexagramURIPrefix)
	}
	number, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("parse hexagram number from %q: %w", uri, err)
	}
	return number, nil
}

// HexagramResourceHandler returns a readable hexagram corpus resource.
func HexagramResourceHandler(source render.TextSource) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("hexagram number is required; use URI format %s{number}", hexagramURIPrefix)
		}
		uri := req.Params.URI

		number, err := parseHexagramNumberFromURI(uri)
		if err != nil {
			return nil, err
		}

		entry, err := source.Hexagram(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("hexagram lookup failed: %w", err)
		}

		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal hexagram: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
