package audit

import (
	"time"

	"github.com/google/uuid"
)

// NewEvent creates a new audit event for a tool call.
func NewEvent(toolName string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		ToolName:  toolName,
	}
}

// WithTarget adds the backend and capability the call was routed to.
func (e *Event) WithTarget(backend, capability string) *Event {
	e.Backend = backend
	e.Capability = capability
	return e
}

// WithParameters adds the call parameters to the event.
func (e *Event) WithParameters(params map[string]any) *Event {
	e.Parameters = params
	return e
}

// WithResult adds result information to the event.
func (e *Event) WithResult(success bool, errorMsg string, durationMS int64) *Event {
	e.Success = success
	e.ErrorMessage = errorMsg
	e.DurationMS = durationMS
	return e
}
