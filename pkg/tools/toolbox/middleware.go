package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Middleware wraps the handler of the named tool, returning a new Handler
// with added behaviour.
type Middleware func(name string, next Handler) Handler

// Chain composes middleware so that the first one is the outermost.
func Chain(mw ...Middleware) Middleware {
	return func(name string, next Handler) Handler {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](name, next)
		}

		return next
	}
}

// --- Recovery middleware ---

// Recovery returns a Middleware that catches handler panics and converts them
// to errors.
func Recovery() Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (result string, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: tool panicked: %v", name, r)
				}
			}()

			return next(ctx, input)
		}
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs every call with a correlation ID, its
// duration, and its error if any. Inputs and outputs are not logged.
func Logger(log *slog.Logger) Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (string, error) {
			callID := uuid.NewString()

			log.DebugContext(ctx, "tool call started", "tool", name, "call_id", callID)

			start := time.Now()

			result, err := next(ctx, input)

			duration := time.Since(start)

			if err != nil {
				log.WarnContext(ctx, "tool call failed",
					"tool", name,
					"call_id", callID,
					"duration", duration,
					"error", err,
				)
			} else {
				log.InfoContext(ctx, "tool call finished",
					"tool", name,
					"call_id", callID,
					"duration", duration,
				)
			}

			return result, err
		}
	}
}
