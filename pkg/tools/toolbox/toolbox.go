package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolBox orchestrates an ordered collection of tools. It allows registering,
// retrieving, listing, and calling tools. Transports use ToolBox to answer
// list and call requests.
type ToolBox struct {
	tools      map[string]Tool
	order      []string
	middleware []Middleware
}

// New creates a new ToolBox ready for use. Middleware is applied to every
// handler at call time, outermost first.
func New(mw ...Middleware) *ToolBox {
	return &ToolBox{
		tools:      make(map[string]Tool),
		middleware: mw,
	}
}

// Register adds one or more tools to the ToolBox. If a tool with the same name
// already exists, it is replaced in place and keeps its original position.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		if _, exists := tb.tools[t.Name]; !exists {
			tb.order = append(tb.order, t.Name)
		}
		tb.tools[t.Name] = t
	}
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Merge registers all tools from another ToolBox into this one, in the other
// ToolBox's order. If a tool with the same name already exists, it is replaced.
func (tb *ToolBox) Merge(other *ToolBox) {
	tb.Register(other.Tools()...)
}

// Tools returns all registered tools in registration order.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		result = append(result, tb.tools[name])
	}

	return result
}

// Call executes the named tool and returns a Result. Call never fails: an
// unknown tool, a handler error, or a handler panic all produce a Result with
// IsError set to true.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) Result {
	t, ok := tb.tools[name]
	if !ok {
		return ErrorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	h := Chain(tb.middleware...)(name, t.Handler)

	result, err := h(ctx, args)
	if err != nil {
		return ErrorResult(err.Error())
	}

	return TextResult(result)
}
