package middleware

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hub/pkg/audit"
)

// MCPAuditMiddleware creates middleware that records an audit event for
// every tools/call request. Events are logged asynchronously so a slow audit
// sink never delays the response.
func MCPAuditMiddleware(logger audit.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodToolsCall {
				return next(ctx, method, req)
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			event := buildAuditEvent(req, result, err, duration)
			go func() {
				_ = logger.Log(context.Background(), event)
			}()

			return result, err
		}
	}
}

// buildAuditEvent assembles an audit event from a tools/call exchange. The
// backend and capability fields are taken from the call arguments when
// present, which covers the routed invoke_capability tool.
func buildAuditEvent(req mcp.Request, result mcp.Result, err error, duration time.Duration) audit.Event {
	event := audit.NewEvent(toolNameFromRequest(req))

	args := argumentsFromRequest(req)
	event.WithParameters(args)
	if args != nil {
		backend, _ := args["backend"].(string)
		capability, _ := args["capability"].(string)
		event.WithTarget(backend, capability)
	}

	success := err == nil
	errorMsg := ""
	if err != nil {
		errorMsg = err.Error()
	} else if msg := errorMessageFromResult(result); msg != "" {
		success = false
		errorMsg = msg
	}
	event.WithResult(success, errorMsg, duration.Milliseconds())

	return *event
}
