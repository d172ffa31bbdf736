package hubtools

import (
	"context"
	"encoding/json"

	"github.com/germanamz/hubmcp/pkg/hub"
	"github.com/germanamz/hubmcp/pkg/tools/toolbox"
)

// HubTools provides the cataloged tools backed by a hub client.
type HubTools struct {
	hub hub.Doer
}

// New creates HubTools that send every request through d.
func New(d hub.Doer) *HubTools {
	return &HubTools{hub: d}
}

// Tools returns a ToolBox containing every cataloged tool in catalog order,
// with mw applied to each call.
func (h *HubTools) Tools(mw ...toolbox.Middleware) *toolbox.ToolBox {
	tb := toolbox.New(mw...)

	for _, e := range catalog {
		tb.Register(toolbox.Tool{
			Name:        e.Name,
			Description: e.Description,
			InputSchema: e.Schema(),
			Handler:     h.handler(e),
		})
	}

	return tb
}

func (h *HubTools) handler(e entry) toolbox.Handler {
	return func(ctx context.Context, input json.RawMessage) (string, error) {
		req, err := e.build(input)
		if err != nil {
			return "", err
		}

		result, err := h.hub.Do(ctx, req)
		if err != nil {
			return "", err
		}

		return e.Label + ": " + string(result), nil
	}
}
