// Package agent wraps the external conversational-agent runtime: session
// lifecycle, tool-call execution, response normalization, and rate-limit
// translation.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vibpath/vibgate/internal/providers"
)

// BusyMessage is the fixed user-facing reply for recognized rate-limit
// conditions. Deliberate UX decision: a quota error reads as "busy", never
// as a technical failure.
const BusyMessage = "⚠️ AI 服務目前繁忙中，請稍後再試或聯絡技術人員。"

const replyPrefix = "AI客服阿弦:\n"

// Gateway owns the user→session mapping and normalizes the runtime's event
// stream into a tagged Response. One active session per user; a session the
// runtime no longer knows is recreated and the call retried exactly once.
type Gateway struct {
	runtime providers.Runtime
	tools   map[string]ToolFunc
	tracer  trace.Tracer

	mu       sync.Mutex
	sessions map[string]string // userID → sessionID
}

func NewGateway(runtime providers.Runtime, tools map[string]ToolFunc) *Gateway {
	if tools == nil {
		tools = DefaultTools()
	}
	return &Gateway{
		runtime:  runtime,
		tools:    tools,
		tracer:   otel.Tracer("vibgate/agent"),
		sessions: make(map[string]string),
	}
}

// Call submits the query for userID and returns the normalized response.
// Session-loss triggers one recreate-and-retry; a second failure surfaces as
// *AgentError. Recognized rate limiting returns BusyMessage with nil error.
func (g *Gateway) Call(ctx context.Context, query, userID string) (Response, error) {
	ctx, span := g.tracer.Start(ctx, "agent.call",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	sessionID, err := g.sessionFor(ctx, userID)
	if err != nil {
		return Response{}, &SessionError{UserID: userID, Err: err}
	}

	events, err := g.runtime.Run(ctx, userID, sessionID, query)
	if errors.Is(err, providers.ErrSessionNotFound) {
		// The runtime lost the session. Discard the mapping, start fresh,
		// retry exactly once; a second failure propagates instead of looping.
		slog.Info("agent session lost, recreating", "user_id", userID, "session_id", sessionID)
		g.dropSession(userID)

		sessionID, err = g.sessionFor(ctx, userID)
		if err != nil {
			return Response{}, &SessionError{UserID: userID, Err: err}
		}
		events, err = g.runtime.Run(ctx, userID, sessionID, query)
		if err != nil {
			if providers.IsRateLimited(err) {
				return TextResponse(BusyMessage), nil
			}
			return Response{}, &AgentError{Message: "run failed after session recreate", Err: err}
		}
	} else if err != nil {
		if providers.IsRateLimited(err) {
			slog.Warn("agent rate limited", "user_id", userID, "error", err)
			return TextResponse(BusyMessage), nil
		}
		return Response{}, &AgentError{Message: "run failed", Err: err}
	}

	return g.processEvents(events, userID)
}

// processEvents consumes the stream. A tool call short-circuits: the tool's
// result is the call's result and no further events are read. Otherwise the
// first final event's text is cleaned up and returned; an escalation becomes
// the textual result rather than an error.
func (g *Gateway) processEvents(events <-chan providers.Event, userID string) (Response, error) {
	defer drain(events)

	for ev := range events {
		switch {
		case ev.Err != nil:
			if providers.IsRateLimited(ev.Err) {
				slog.Warn("agent rate limited mid-stream", "user_id", userID, "error", ev.Err)
				return TextResponse(BusyMessage), nil
			}
			return Response{}, &AgentError{Message: "event stream failed", Err: ev.Err}

		case ev.ToolCall != nil:
			resp, err := g.executeTool(ev.ToolCall)
			if err != nil {
				// Tool failures are logged and the stream continues; the
				// agent may still produce a usable final response.
				slog.Error("tool execution failed", "tool", ev.ToolCall.Name, "error", err)
				continue
			}
			slog.Info("tool executed", "tool", ev.ToolCall.Name, "user_id", userID)
			return resp, nil

		case ev.Escalate:
			msg := ev.ErrorMessage
			if msg == "" {
				msg = "No specific message."
			}
			return TextResponse("Agent escalated: " + msg), nil

		case ev.Final:
			return TextWithQuickReplyResponse(replyPrefix + CleanText(ev.Content)), nil
		}
	}

	return Response{}, &AgentError{Message: "stream ended without a final response"}
}

func (g *Gateway) executeTool(call *providers.ToolCall) (Response, error) {
	fn, ok := g.tools[call.Name]
	if !ok {
		return Response{}, &ToolExecutionError{Tool: call.Name, Err: fmt.Errorf("unknown tool")}
	}
	resp, err := fn(call.Arguments)
	if err != nil {
		return Response{}, &ToolExecutionError{Tool: call.Name, Err: err}
	}
	return resp, nil
}

// sessionFor returns the active session for userID, creating one through the
// runtime on first contact. The map lock is never held across the network call.
func (g *Gateway) sessionFor(ctx context.Context, userID string) (string, error) {
	g.mu.Lock()
	if id, ok := g.sessions[userID]; ok {
		g.mu.Unlock()
		return id, nil
	}
	g.mu.Unlock()

	sessionID := "session_" + uuid.NewString()
	if err := g.runtime.CreateSession(ctx, userID, sessionID); err != nil {
		return "", err
	}

	g.mu.Lock()
	g.sessions[userID] = sessionID
	g.mu.Unlock()
	slog.Info("agent session created", "user_id", userID, "session_id", sessionID)
	return sessionID, nil
}

func (g *Gateway) dropSession(userID string) {
	g.mu.Lock()
	delete(g.sessions, userID)
	g.mu.Unlock()
}

// drain consumes leftover events so the producer goroutine can finish after
// an early return.
func drain(events <-chan providers.Event) {
	go func() {
		for range events {
		}
	}()
}

// TextWithQuickReplyResponse builds a text response that carries the
// detailed quick-reply row when sent.
func TextWithQuickReplyResponse(text string) Response {
	return Response{Kind: KindTextWithQuickReply, Text: text}
}
