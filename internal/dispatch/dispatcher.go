// Package dispatch is the event-driven decision engine: given an inbound
// event it selects exactly one response strategy — admin command, silent drop
// during pause, AI toggle, AI agent call, or keyword-based template — and
// sends at most one reply per event.
package dispatch

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vibpath/vibgate/internal/admin"
	"github.com/vibpath/vibgate/internal/agent"
	"github.com/vibpath/vibgate/internal/intent"
	"github.com/vibpath/vibgate/internal/templates"
)

// Replier sends outbound messages for one reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages ...messaging_api.MessageInterface) error
	// ShowLoading starts the typing indicator; best effort.
	ShowLoading(chatID string)
}

// AgentCaller is the AI-Agent Gateway surface dispatch depends on.
type AgentCaller interface {
	Call(ctx context.Context, query, userID string) (agent.Response, error)
}

// PreferenceService is the per-user AI-enablement surface dispatch depends on.
type PreferenceService interface {
	IsAIReplyEnabled(ctx context.Context, userID string) bool
	ToggleAIReply(ctx context.Context, userID string) bool
}

// TextEvent is one inbound text message.
type TextEvent struct {
	UserID     string
	ReplyToken string
	Text       string
}

// Dispatcher routes inbound events. All collaborators are injected; the
// pause controller and the sessions map inside the gateway are the only
// shared mutable state, each with its own locking.
//
// No per-user ordering is guaranteed: two rapid messages from one user may
// be answered out of order. Accepted limitation, matching the platform's
// own delivery semantics.
type Dispatcher struct {
	isAdmin   func(userID string) bool
	pause     *admin.PauseController
	prefs     PreferenceService
	agent     AgentCaller
	replier   Replier
	postbacks *PostbackRegistry
	tracer    trace.Tracer
}

func NewDispatcher(
	isAdmin func(string) bool,
	pause *admin.PauseController,
	prefSvc PreferenceService,
	agentGw AgentCaller,
	replier Replier,
) *Dispatcher {
	return &Dispatcher{
		isAdmin:   isAdmin,
		pause:     pause,
		prefs:     prefSvc,
		agent:     agentGw,
		replier:   replier,
		postbacks: DefaultPostbacks(),
		tracer:    otel.Tracer("vibgate/dispatch"),
	}
}

// HandleText runs the text chain top to bottom, short-circuiting on the
// first matching strategy.
func (d *Dispatcher) HandleText(ctx context.Context, ev TextEvent) {
	ctx, span := d.tracer.Start(ctx, "dispatch.text",
		trace.WithAttributes(attribute.String("user.id", ev.UserID)))
	defer span.End()

	// 1. Admin commands (pause/resume/status/help), admins only. A non-admin
	// sending 暫停 falls through and is treated as ordinary text.
	if d.isAdmin(ev.UserID) && d.handleAdminCommand(ctx, ev) {
		return
	}

	// 2. Global pause: silent drop. Evaluating the status may auto-resume an
	// expired pause.
	if d.pause.IsPaused() {
		slog.Debug("paused, dropping message", "user_id", ev.UserID)
		return
	}

	// 3. Explicit AI toggle / status commands, any user.
	if d.handleToggleCommand(ctx, ev) {
		return
	}

	// 4. Classify and look up AI enablement.
	tag := intent.Detect(ev.Text)
	aiEnabled := d.prefs.IsAIReplyEnabled(ctx, ev.UserID)
	span.SetAttributes(
		attribute.String("intent", string(tag)),
		attribute.Bool("ai_enabled", aiEnabled),
	)

	// 5. AI agent attempt. Failures are logged and converted into the
	// keyword fallback; the user never sees a raw error.
	if aiEnabled {
		d.replier.ShowLoading(ev.UserID)

		resp, err := d.agent.Call(ctx, ev.Text, ev.UserID)
		if err == nil {
			d.reply(ctx, ev.ReplyToken, agentMessage(resp))
			return
		}
		slog.Error("agent call failed, falling back to templates", "user_id", ev.UserID, "error", err)
	}

	// 6. Keyword fallback.
	if msg := templateFor(tag); msg != nil {
		d.reply(ctx, ev.ReplyToken, msg)
		return
	}
	if !aiEnabled {
		// AI off and nothing matched: intentional silence, not a canned error.
		slog.Info("ai disabled and no keyword match, not replying", "user_id", ev.UserID)
		return
	}
	d.reply(ctx, ev.ReplyToken, templates.ApologyMessage())
}

// HandleFollow greets a new subscriber.
func (d *Dispatcher) HandleFollow(ctx context.Context, userID, replyToken string) {
	slog.Info("new follower", "user_id", userID)
	d.reply(ctx, replyToken, templates.WelcomeMessages()...)
}

// HandlePostback decodes the action identifier and dispatches it through the
// registry: an exact key→handler map, not a priority chain.
func (d *Dispatcher) HandlePostback(ctx context.Context, userID, replyToken, data string) {
	slog.Info("postback received", "user_id", userID, "data", data)
	d.reply(ctx, replyToken, d.postbacks.Handle(ctx, data, userID)...)
}

func (d *Dispatcher) handleAdminCommand(ctx context.Context, ev TextEvent) bool {
	if minutes, ok := admin.ParsePauseCommand(ev.Text); ok {
		d.pause.Pause(minutes, ev.UserID)
		info := d.pause.Info()
		d.reply(ctx, ev.ReplyToken, &messaging_api.TextMessage{
			Text: "✅ Bot 已暫停\n⏰ 暫停時間: " + formatMinutes(minutes) +
				"\n📅 恢復時間: " + info.PauseUntil.Format("2006-01-02 15:04:05"),
		})
		return true
	}

	if admin.ParseResumeCommand(ev.Text) {
		d.pause.Resume(ev.UserID)
		d.reply(ctx, ev.ReplyToken, &messaging_api.TextMessage{Text: "✅ Bot 已恢復運作"})
		return true
	}

	if admin.ParseStatusCommand(ev.Text) {
		info := d.pause.Info()
		text := "✅ Bot 目前正常運作"
		if info.Paused {
			text = "⏸️ Bot 目前暫停中\n⏰ 剩餘時間: " + formatMinutes(info.RemainingMinutes) +
				"\n📅 恢復時間: " + info.PauseUntil.Format("2006-01-02 15:04:05")
		}
		d.reply(ctx, ev.ReplyToken, &messaging_api.TextMessage{Text: text})
		return true
	}

	if admin.ParseHelpCommand(ev.Text) {
		d.reply(ctx, ev.ReplyToken, &messaging_api.TextMessage{Text: admin.HelpMessage()})
		return true
	}

	return false
}

func (d *Dispatcher) handleToggleCommand(ctx context.Context, ev TextEvent) bool {
	switch strings.ToLower(strings.TrimSpace(ev.Text)) {
	case "ai開關", "ai設定":
		enabled := d.prefs.ToggleAIReply(ctx, ev.UserID)
		d.reply(ctx, ev.ReplyToken, toggleMessage(enabled))
		return true
	case "ai狀態", "ai status":
		enabled := d.prefs.IsAIReplyEnabled(ctx, ev.UserID)
		d.reply(ctx, ev.ReplyToken, statusMessage(enabled))
		return true
	}
	return false
}

func (d *Dispatcher) reply(ctx context.Context, replyToken string, messages ...messaging_api.MessageInterface) {
	if err := d.replier.Reply(ctx, replyToken, messages...); err != nil {
		slog.Error("reply failed", "error", err)
	}
}

// agentMessage converts the gateway's tagged response into an outbound message.
func agentMessage(resp agent.Response) messaging_api.MessageInterface {
	switch resp.Kind {
	case agent.KindFlex:
		return &messaging_api.FlexMessage{AltText: resp.AltText, Contents: resp.Flex}
	case agent.KindTextWithQuickReply:
		return &messaging_api.TextMessage{Text: resp.Text, QuickReply: templates.QuickReplyDetailed()}
	default:
		return &messaging_api.TextMessage{Text: resp.Text, QuickReply: templates.QuickReplyDetailed()}
	}
}

// templateFor returns the template reply for template-backed intents, nil
// for general.
func templateFor(tag intent.Intent) messaging_api.MessageInterface {
	switch tag {
	case intent.Menu:
		msg := templates.ServiceMenu()
		msg.QuickReply = templates.QuickReplyBasic()
		return msg
	case intent.Help:
		return templates.HelpMessage()
	case intent.Frequency:
		msg := templates.FrequencyServicesCarousel()
		msg.QuickReply = templates.QuickReplyDetailed()
		return msg
	case intent.Business:
		msg := templates.CompanyIntroduction()
		msg.QuickReply = templates.QuickReplyBasic()
		return msg
	case intent.Manual:
		msg := templates.ManualDownloadCard()
		msg.QuickReply = templates.QuickReplyBasic()
		return msg
	}
	return nil
}

func toggleMessage(enabled bool) *messaging_api.TextMessage {
	text := "⏸️ AI 自動回覆已關閉\n\n我將不會使用 AI 自動回答問題。\n您仍然可以使用快速回覆按鈕查看服務資訊。\n如需開啟，請再次點擊此按鈕。"
	if enabled {
		text = "✅ AI 自動回覆已開啟\n\n我會使用 AI 來回答您的問題。\n如需關閉，請再次點擊此按鈕。"
	}
	return &messaging_api.TextMessage{Text: text, QuickReply: templates.QuickReplyBasic()}
}

func statusMessage(enabled bool) *messaging_api.TextMessage {
	state := "⏸️ 已關閉"
	if enabled {
		state = "✅ 已開啟"
	}
	return &messaging_api.TextMessage{
		Text:       "ℹ️ AI 自動回覆狀態\n\n目前狀態：" + state,
		QuickReply: templates.QuickReplyBasic(),
	}
}

func formatMinutes(m int) string {
	return strconv.Itoa(m) + " 分鐘"
}
