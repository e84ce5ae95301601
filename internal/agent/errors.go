package agent

import "fmt"

// AgentError means the external agent runtime failed or returned an unusable
// result. Caught at the dispatch boundary and converted into the keyword
// fallback; never surfaced to the user.
type AgentError struct {
	Message string
	Err     error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent: %s: %v", e.Message, e.Err)
	}
	return "agent: " + e.Message
}

func (e *AgentError) Unwrap() error { return e.Err }

// ToolExecutionError means a tool invoked by the agent failed.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// SessionError means session creation or lookup failed.
type SessionError struct {
	UserID string
	Err    error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session for user %s: %v", e.UserID, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
