package dispatch

import (
	"context"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/vibpath/vibgate/internal/templates"
)

// PostbackHandler produces the reply for one postback action key.
type PostbackHandler func(ctx context.Context, userID string) []messaging_api.MessageInterface

// PostbackRegistry maps exact action keys to handlers. Unlike the text
// chain there is no priority order; unknown keys hit the fallback.
type PostbackRegistry struct {
	handlers map[string]PostbackHandler
	fallback PostbackHandler
}

// DefaultPostbacks registers the explanation keys carried by the rich-card
// postback buttons.
func DefaultPostbacks() *PostbackRegistry {
	r := &PostbackRegistry{
		handlers: make(map[string]PostbackHandler),
		fallback: func(ctx context.Context, userID string) []messaging_api.MessageInterface {
			return []messaging_api.MessageInterface{&messaging_api.TextMessage{
				Text:       "抱歉，目前沒有相關說明資訊。請聯繫客服獲得更多幫助。",
				QuickReply: templates.QuickReplyDetailed(),
			}}
		},
	}
	for _, key := range []string{
		"explain_company",
		"explain_frequency",
		"explain_7_83hz",
		"explain_13freq",
		"explain_40hz",
		"explain_double_freq",
	} {
		r.Register(key, explanationHandler(key))
	}
	return r
}

// Register binds a handler to an exact key, replacing any previous binding.
func (r *PostbackRegistry) Register(key string, h PostbackHandler) {
	r.handlers[key] = h
}

// Handle dispatches the action key, falling back for unknown keys.
func (r *PostbackRegistry) Handle(ctx context.Context, key, userID string) []messaging_api.MessageInterface {
	if h, ok := r.handlers[key]; ok {
		return h(ctx, userID)
	}
	return r.fallback(ctx, userID)
}

func explanationHandler(key string) PostbackHandler {
	return func(ctx context.Context, userID string) []messaging_api.MessageInterface {
		text, ok := templates.Explanation(key)
		if !ok {
			return nil
		}
		return []messaging_api.MessageInterface{&messaging_api.TextMessage{
			Text:       text,
			QuickReply: templates.QuickReplyDetailed(),
		}}
	}
}
