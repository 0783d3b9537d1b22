// Package schema contains the core contracts shared across newshound packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every interface definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all LLM-callable tools must satisfy.
//
// Execute must never return an error for expected failure modes (bad
// arguments, upstream fetch failures): those are reported inside the returned
// JSON payload so the dialogue loop always appends a well-formed tool result.
// The error return is reserved for faults the tool itself cannot express.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ToolDefinition is the flattened description surface of a tool, consumed by
// the LLM provider when building the function-calling request.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}
