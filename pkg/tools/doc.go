// Package tools provides tool execution and MCP (Model Context Protocol) serving.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/hubmcp/pkg/tools/toolbox] — Tool and Result types, middleware, and the ToolBox registry that turns every call into one Result
//   - [github.com/germanamz/hubmcp/pkg/tools/mcpserver] — MCP server using the official MCP Go SDK for exposing a ToolBox over stdio or streamable HTTP
//
// The toolbox sub-package is the foundation layer and knows nothing about MCP.
// The mcpserver package is a thin wrapper around the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk).
package tools
