// Package domain translates MCP tool calls into divination engine commands.
//
// The package is intentionally explicit about that mapping:
// - parse MCP tool input into engine requests,
// - run the cast or notation lookup against the local engine,
// - and surface structured outputs that MCP clients can render.
//
// Handlers hold no transport state, so tests call them directly.
package domain
