package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vibpath/vibgate/internal/providers"
)

// fakeRuntime scripts CreateSession/Run outcomes per call.
type fakeRuntime struct {
	createCalls int
	runCalls    int
	createErr   error
	// runErrs[i] is the error for the i-th Run call; nil means success with
	// the scripted events.
	runErrs []error
	events  []providers.Event
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) CreateSession(ctx context.Context, userID, sessionID string) error {
	f.createCalls++
	return f.createErr
}

func (f *fakeRuntime) Run(ctx context.Context, userID, sessionID, text string) (<-chan providers.Event, error) {
	idx := f.runCalls
	f.runCalls++
	if idx < len(f.runErrs) && f.runErrs[idx] != nil {
		return nil, f.runErrs[idx]
	}
	ch := make(chan providers.Event, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func finalEvent(content string) providers.Event {
	return providers.Event{Final: true, Content: content}
}

func TestGateway_FinalResponse(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{finalEvent("hello **there**")}}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "hi", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind != KindTextWithQuickReply {
		t.Fatalf("Kind = %v, want text with quick reply", resp.Kind)
	}
	if !strings.HasPrefix(resp.Text, replyPrefix) {
		t.Fatalf("reply missing prefix: %q", resp.Text)
	}
	if strings.Contains(resp.Text, "**") {
		t.Fatalf("markdown not stripped: %q", resp.Text)
	}
	if rt.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", rt.createCalls)
	}
}

func TestGateway_SessionReuse(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{finalEvent("ok")}}
	g := NewGateway(rt, DefaultTools())
	ctx := context.Background()

	if _, err := g.Call(ctx, "one", "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Call(ctx, "two", "u1"); err != nil {
		t.Fatal(err)
	}
	if rt.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1 (session must be reused)", rt.createCalls)
	}
}

func TestGateway_SessionLostRecreateAndRetryOnce(t *testing.T) {
	rt := &fakeRuntime{
		runErrs: []error{providers.ErrSessionNotFound, nil},
		events:  []providers.Event{finalEvent("recovered")},
	}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "hi", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Text, "recovered") {
		t.Fatalf("Text = %q", resp.Text)
	}
	if rt.createCalls != 2 {
		t.Fatalf("createCalls = %d, want 2 (recreate after loss)", rt.createCalls)
	}
	if rt.runCalls != 2 {
		t.Fatalf("runCalls = %d, want 2 (exactly one retry)", rt.runCalls)
	}
}

func TestGateway_SecondSessionFailureSurfaces(t *testing.T) {
	rt := &fakeRuntime{
		runErrs: []error{providers.ErrSessionNotFound, errors.New("still broken")},
	}
	g := NewGateway(rt, DefaultTools())

	_, err := g.Call(context.Background(), "hi", "u1")
	var agentErr *AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("err = %v, want *AgentError", err)
	}
	if rt.runCalls != 2 {
		t.Fatalf("runCalls = %d, want 2 (no retry loop)", rt.runCalls)
	}
}

func TestGateway_RateLimitedReturnsBusyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"http 429", errors.New("agent run request failed: status 429")},
		{"quota", errors.New("quota exceeded for project")},
		{"resource exhausted", errors.New("rpc error: resource exhausted")},
		{"rate limit", errors.New("rate limit hit")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &fakeRuntime{runErrs: []error{tt.err}}
			g := NewGateway(rt, DefaultTools())

			resp, err := g.Call(context.Background(), "hi", "u1")
			if err != nil {
				t.Fatalf("rate limit must not surface as error, got %v", err)
			}
			if resp.Text != BusyMessage {
				t.Fatalf("Text = %q, want busy message", resp.Text)
			}
		})
	}
}

func TestGateway_RateLimitedMidStream(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{{Err: errors.New("429 too many requests")}}}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "hi", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != BusyMessage {
		t.Fatalf("Text = %q, want busy message", resp.Text)
	}
}

func TestGateway_ToolCallShortCircuits(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{
		{ToolCall: &providers.ToolCall{Name: "show_service_menu"}},
		finalEvent("should not be reached"),
	}}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "menu", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Kind != KindFlex {
		t.Fatalf("Kind = %v, want flex from tool", resp.Kind)
	}
}

func TestGateway_UnknownToolContinuesToFinal(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{
		{ToolCall: &providers.ToolCall{Name: "no_such_tool"}},
		finalEvent("fallback text"),
	}}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "hi", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Text, "fallback text") {
		t.Fatalf("Text = %q", resp.Text)
	}
}

func TestGateway_Escalation(t *testing.T) {
	rt := &fakeRuntime{events: []providers.Event{{Escalate: true, ErrorMessage: "needs human"}}}
	g := NewGateway(rt, DefaultTools())

	resp, err := g.Call(context.Background(), "hi", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "Agent escalated: needs human" {
		t.Fatalf("Text = %q", resp.Text)
	}
}

func TestGateway_EmptyStreamIsError(t *testing.T) {
	rt := &fakeRuntime{}
	g := NewGateway(rt, DefaultTools())

	_, err := g.Call(context.Background(), "hi", "u1")
	var agentErr *AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("err = %v, want *AgentError for stream without final event", err)
	}
}

func TestGateway_CreateSessionFailure(t *testing.T) {
	rt := &fakeRuntime{createErr: errors.New("agent unreachable")}
	g := NewGateway(rt, DefaultTools())

	_, err := g.Call(context.Background(), "hi", "u1")
	var sessErr *SessionError
	if !errors.As(err, &sessErr) {
		t.Fatalf("err = %v, want *SessionError", err)
	}
	if sessErr.UserID != "u1" {
		t.Fatalf("UserID = %q", sessErr.UserID)
	}
}
