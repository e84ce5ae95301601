// Package httpapi exposes the inbound surfaces: the platform webhook and a
// small management REST API.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/vibpath/vibgate/internal/dispatch"
)

// WebhookHandler verifies inbound callbacks and hands events to the
// dispatcher off the request goroutine.
type WebhookHandler struct {
	channelSecret string
	dispatcher    *dispatch.Dispatcher
	wg            sync.WaitGroup
}

func NewWebhookHandler(channelSecret string, d *dispatch.Dispatcher) *WebhookHandler {
	return &WebhookHandler{channelSecret: channelSecret, dispatcher: d}
}

// Handle is the gin handler for POST /callback. The platform expects a fast
// 200; event processing continues asynchronously after the response.
func (h *WebhookHandler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			slog.Warn("invalid webhook signature")
			c.Status(http.StatusBadRequest)
			return
		}
		slog.Error("webhook parse failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)

	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in webhook event processing", "panic", r)
			}
		}()
		ctx := context.Background()
		for _, ev := range events {
			h.processEvent(ctx, ev)
		}
	}()
}

func (h *WebhookHandler) processEvent(ctx context.Context, event webhook.EventInterface) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			slog.Debug("ignoring non-text message", "type", e.Message.GetType())
			return
		}
		h.dispatcher.HandleText(ctx, dispatch.TextEvent{
			UserID:     userID(e.Source),
			ReplyToken: e.ReplyToken,
			Text:       text.Text,
		})
	case webhook.PostbackEvent:
		h.dispatcher.HandlePostback(ctx, userID(e.Source), e.ReplyToken, e.Postback.Data)
	case webhook.FollowEvent:
		h.dispatcher.HandleFollow(ctx, userID(e.Source), e.ReplyToken)
	case webhook.UnfollowEvent:
		slog.Info("user unfollowed", "user_id", userID(e.Source))
	default:
		slog.Debug("unsupported event type", "event", event.GetType())
	}
}

// Shutdown waits for in-flight event processing, bounded by ctx.
func (h *WebhookHandler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func userID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case *webhook.UserSource:
		return s.UserId
	}
	return ""
}
