package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPToolLoggingMiddleware creates middleware that logs every tools/call
// request with its outcome and duration. Other methods pass through
// untouched.
func MCPToolLoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodToolsCall {
				return next(ctx, method, req)
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			attrs := []any{
				"tool", toolNameFromRequest(req),
				"duration_ms", duration.Milliseconds(),
			}
			switch {
			case err != nil:
				logger.ErrorContext(ctx, "tool call failed", append(attrs, "error", err)...)
			case errorMessageFromResult(result) != "":
				logger.WarnContext(ctx, "tool call returned error", append(attrs, "error", errorMessageFromResult(result))...)
			default:
				logger.InfoContext(ctx, "tool call", attrs...)
			}

			return result, err
		}
	}
}
