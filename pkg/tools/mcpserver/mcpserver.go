package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/germanamz/hubmcp/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer serves a ToolBox over the MCP protocol using the official MCP Go SDK.
type MCPServer struct {
	server *mcp.Server
	tools  *toolbox.ToolBox
}

// New creates a new MCPServer with the given name and version that answers
// tool calls from tb.
func New(name, version string, tb *toolbox.ToolBox) *MCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	s := &MCPServer{server: server, tools: tb}

	for _, t := range tb.Tools() {
		server.AddTool(toSDKTool(t), s.callHandler(t.Name))
	}

	server.AddReceivingMiddleware(s.unknownTools)

	return s
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// Handler returns an http.Handler serving the streamable HTTP transport.
func (s *MCPServer) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// unknownTools answers tools/call for names the server does not know with an
// error result instead of the SDK's protocol error, so every call gets the
// same envelope.
func (s *MCPServer) unknownTools(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}

		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil {
			return next(ctx, method, req)
		}

		if _, known := s.tools.Get(call.Params.Name); known {
			return next(ctx, method, req)
		}

		return toSDKResult(s.tools.Call(ctx, call.Params.Name, call.Params.Arguments)), nil
	}
}

// callHandler routes a tool call through the ToolBox so middleware and error
// handling apply uniformly.
func (s *MCPServer) callHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}

		return toSDKResult(s.tools.Call(ctx, name, args)), nil
	}
}

// toSDKTool converts a toolbox.Tool to an SDK *mcp.Tool.
func toSDKTool(t toolbox.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// toSDKResult converts a toolbox.Result to an SDK *mcp.CallToolResult.
func toSDKResult(r toolbox.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(r.Content))
	for _, text := range r.Content {
		content = append(content, &mcp.TextContent{Text: text})
	}

	return &mcp.CallToolResult{
		Content: content,
		IsError: r.IsError,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
