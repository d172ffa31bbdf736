package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/germanamz/hubmcp/pkg/tools/mcpserver"
	"github.com/gin-gonic/gin"
)

// mcpPath is where the streamable HTTP transport is mounted.
const mcpPath = "/mcp"

// newRouter mounts the MCP handler and a health probe on a gin engine.
func newRouter(srv *mcpserver.MCPServer, log *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := gin.WrapH(srv.Handler())
	engine.Any(mcpPath, h)

	return engine
}

// requestLogger logs each HTTP request at debug level.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.DebugContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
