package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ADKClient implements Runtime against an ADK-compatible agent server
// (the api_server surface: session CRUD plus an SSE run endpoint).
type ADKClient struct {
	baseURL string
	apiKey  string
	appName string
	client  *http.Client
}

// NewADKClient creates a client for the agent server at baseURL.
func NewADKClient(baseURL, apiKey, appName string, timeout time.Duration) *ADKClient {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &ADKClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		appName: appName,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *ADKClient) Name() string { return "adk" }

func (c *ADKClient) CreateSession(ctx context.Context, userID, sessionID string) error {
	url := fmt.Sprintf("%s/apps/%s/users/%s/sessions/%s", c.baseURL, c.appName, userID, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("build session request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	// 409: session already exists on the runtime side — fine for our purposes.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("create session: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// runRequest is the /run_sse payload.
type runRequest struct {
	AppName    string     `json:"app_name"`
	UserID     string     `json:"user_id"`
	SessionID  string     `json:"session_id"`
	NewMessage runContent `json:"new_message"`
	Streaming  bool       `json:"streaming"`
}

type runContent struct {
	Role  string    `json:"role"`
	Parts []runPart `json:"parts"`
}

type runPart struct {
	Text         string                 `json:"text,omitempty"`
	FunctionCall *adkFunctionCall       `json:"functionCall,omitempty"`
	FunctionResp map[string]interface{} `json:"functionResponse,omitempty"`
}

type adkFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

// adkEvent is the wire shape of one streamed runtime event.
type adkEvent struct {
	Content      *runContent `json:"content"`
	Partial      bool        `json:"partial"`
	TurnComplete bool        `json:"turnComplete"`
	Actions      *struct {
		Escalate bool `json:"escalate"`
	} `json:"actions"`
	ErrorMessage string `json:"errorMessage"`
}

func (c *ADKClient) Run(ctx context.Context, userID, sessionID, text string) (<-chan Event, error) {
	payload, err := json.Marshal(runRequest{
		AppName:   c.appName,
		UserID:    userID,
		SessionID: sessionID,
		NewMessage: runContent{
			Role:  "user",
			Parts: []runPart{{Text: text}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/run_sse", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build run request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run agent: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		msg := strings.TrimSpace(string(body))
		if resp.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(msg), "session not found") {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("run agent: status %d: %s", resp.StatusCode, msg)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer resp.Body.Close()
		c.scanEvents(resp.Body, events)
	}()
	return events, nil
}

// scanEvents parses the SSE body into Events. Partial chunks are skipped;
// only whole events are forwarded.
func (c *ADKClient) scanEvents(body io.Reader, out chan<- Event) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "" || data == "[DONE]" {
			continue
		}

		var ev adkEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			out <- Event{Err: fmt.Errorf("decode agent event: %w", err)}
			return
		}
		if ev.Partial {
			continue
		}
		out <- translateEvent(ev)
	}
	if err := scanner.Err(); err != nil {
		out <- Event{Err: fmt.Errorf("read agent stream: %w", err)}
	}
}

func translateEvent(ev adkEvent) Event {
	if ev.Content != nil {
		for _, part := range ev.Content.Parts {
			if part.FunctionCall != nil {
				return Event{ToolCall: &ToolCall{
					Name:      part.FunctionCall.Name,
					Arguments: part.FunctionCall.Args,
				}}
			}
		}
	}

	if ev.Actions != nil && ev.Actions.Escalate {
		return Event{Escalate: true, ErrorMessage: ev.ErrorMessage}
	}

	var text string
	if ev.Content != nil {
		for _, part := range ev.Content.Parts {
			text += part.Text
		}
	}
	return Event{Final: ev.TurnComplete || text != "", Content: text}
}

func (c *ADKClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
