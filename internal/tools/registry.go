// Package tools implements the LLM-callable capabilities and their registry.
package tools

import (
	"github.com/newshound/newshound/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
//
// The registry is a fixed mapping: adding a capability means extending this
// enumeration and NewRegistry together.
type ToolName string

const (
	ToolFetchTopNews ToolName = "fetch_top_news"
	ToolReadArticle  ToolName = "read_article"
)

// Registry holds the fixed set of named tools and exposes them for lookup
// and for the model's tool-description surface.
type Registry struct {
	tools map[string]schema.Tool
	order []string
}

// NewRegistry builds a registry from the given tools, preserving their order
// for the definitions list.
func NewRegistry(ts ...schema.Tool) *Registry {
	r := &Registry{tools: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return r
}

// Get returns the tool with the given name, or nil if not registered.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// Definitions returns the description surface of every registered tool, in
// registration order.
func (r *Registry) Definitions() []schema.ToolDefinition {
	defs := make([]schema.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, schema.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}
