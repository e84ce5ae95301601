// Package providers wraps the external conversational-agent runtime: an
// opaque capability that takes a query, a user id, and a session id and
// yields a stream of response/tool-call events.
package providers

import (
	"context"
	"errors"
	"strings"
)

// Runtime is the interface to the external agent runtime.
type Runtime interface {
	// CreateSession registers a conversational session with the runtime.
	CreateSession(ctx context.Context, userID, sessionID string) error

	// Run submits a query and returns the runtime's event stream. A closed
	// channel without a Final event means the stream ended early; stream
	// failures after connect are delivered as an Event with Err set.
	// Session loss is reported at connect time as ErrSessionNotFound.
	Run(ctx context.Context, userID, sessionID, text string) (<-chan Event, error)

	// Name returns the runtime identifier.
	Name() string
}

// Event is one element of a run's event stream.
type Event struct {
	// ToolCall is set when the agent requests a function invocation.
	// Checked before Final: a tool call short-circuits the stream.
	ToolCall *ToolCall

	// Final marks the terminal response event; Content carries its text.
	Final   bool
	Content string

	// Escalate flags an agent-side escalation; ErrorMessage carries its
	// reason. Surfaced as text, not as an error.
	Escalate     bool
	ErrorMessage string

	// Err reports a stream-level failure after the connect phase.
	Err error
}

// ToolCall is a function invocation requested by the agent.
type ToolCall struct {
	Name      string
	Arguments map[string]interface{}
}

// ErrSessionNotFound indicates the runtime no longer knows the session id.
// The gateway reacts by discarding its mapping and retrying once with a
// fresh session.
var ErrSessionNotFound = errors.New("agent runtime: session not found")

// rate-limit indicators recognized across runtime backends
var rateLimitMarkers = []string{"429", "rate limit", "quota", "resource exhausted"}

// IsRateLimited reports whether err looks like a quota/rate-limit condition.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
