// Package line wraps the LINE Messaging API client used for outbound replies.
package line

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"golang.org/x/time/rate"
)

// Client sends replies through the LINE reply API, addressed by per-event
// reply tokens. Outbound calls are paced by a token-bucket limiter as a
// courtesy to the platform API.
type Client struct {
	api     *messaging_api.MessagingApiAPI
	limiter *rate.Limiter
}

// NewClient builds the messaging API client from the channel token.
func NewClient(channelToken string) (*Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging API client: %w", err)
	}
	return &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(20), 20),
	}, nil
}

// Reply sends messages for one reply token. Each event yields at most one
// Reply call; the token is single-use on the platform side.
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...messaging_api.MessageInterface) error {
	if replyToken == "" || len(messages) == 0 {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if _, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}); err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// ShowLoading starts the typing-indicator animation for a one-on-one chat,
// bounded to 60 seconds by the platform. Best effort: failures are logged
// and swallowed, never failing the parent request.
func (c *Client) ShowLoading(chatID string) {
	if chatID == "" {
		return
	}
	if _, err := c.api.ShowLoadingAnimation(&messaging_api.ShowLoadingAnimationRequest{
		ChatId:         chatID,
		LoadingSeconds: 60,
	}); err != nil {
		slog.Warn("loading animation failed", "chat_id", chatID, "error", err)
	}
}
