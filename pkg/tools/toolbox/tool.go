package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON input and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool represents an executable tool with a name, description, JSON Schema, and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// Result is the envelope returned for every tool call, successful or not.
type Result struct {
	Content []string
	IsError bool
}

// Text joins the content blocks with newlines.
func (r Result) Text() string {
	switch len(r.Content) {
	case 0:
		return ""
	case 1:
		return r.Content[0]
	}

	n := 0
	for _, c := range r.Content {
		n += len(c) + 1
	}

	b := make([]byte, 0, n)
	for i, c := range r.Content {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, c...)
	}

	return string(b)
}

// TextResult returns a successful single-block Result.
func TextResult(text string) Result {
	return Result{Content: []string{text}}
}

// ErrorResult returns a failed single-block Result.
func ErrorResult(text string) Result {
	return Result{Content: []string{text}, IsError: true}
}
