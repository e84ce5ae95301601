// Package templates builds the fixed Flex/quick-reply messages the
// dispatcher and the agent tools reply with. Pure presentation data: no
// state, no algorithmic content.
package templates

import "github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

func text(s, size, weight string) messaging_api.FlexText {
	return messaging_api.FlexText{Text: s, Size: size, Weight: messaging_api.FlexTextWEIGHT(weight), Wrap: true}
}

func bodyBubble(contents ...messaging_api.FlexComponentInterface) *messaging_api.FlexBubble {
	return &messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{
			Layout:   "vertical",
			Spacing:  "md",
			Contents: contents,
		},
	}
}

// ServiceMenu is the main service menu card.
func ServiceMenu() *messaging_api.FlexMessage {
	return &messaging_api.FlexMessage{
		AltText: "VibPath 服務選單",
		Contents: bodyBubble(
			text("📋 VibPath 服務選單", "lg", "bold"),
			text("🎵 頻率治療 — 查看療程與設備", "sm", "regular"),
			text("🏢 公司介紹 — 了解 VibPath", "sm", "regular"),
			text("📖 產品手冊 — 下載使用說明", "sm", "regular"),
			text("💬 直接輸入問題，AI 客服為您解答", "sm", "regular"),
			&messaging_api.FlexButton{
				Style:  "primary",
				Action: &messaging_api.MessageAction{Label: "頻率治療", Text: "頻率治療"},
			},
		),
	}
}

// HelpMessage is the plain-text usage guide with service shortcuts.
func HelpMessage() *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text: `🤖 VibPath 智能客服使用說明

🎵 頻率治療服務：
• 輸入「頻率治療」或「服務項目」查看療程

🏢 企業服務：
• 輸入「公司介紹」了解我們的服務

💬 智能對話：
• 直接輸入問題，AI 會為您解答
• 輸入「ai開關」切換 AI 自動回覆

🔧 其他功能：
• 輸入「選單」顯示服務選單
• 輸入「幫助」顯示此說明

有任何問題都可以直接詢問我！`,
		QuickReply: QuickReplyServices(),
	}
}

// FrequencyServicesCarousel lists the four frequency products.
func FrequencyServicesCarousel() *messaging_api.FlexMessage {
	products := []struct {
		title string
		desc  string
		data  string
	}{
		{"🌍 7.83Hz 舒曼共振", "地球的基本振動頻率，深度放鬆與助眠", "explain_7_83hz"},
		{"🧠 13頻脈輪波", "對應完整脈輪系統的能量調理", "explain_13freq"},
		{"⚡ 40Hz γ波", "高度專注時的大腦腦波", "explain_40hz"},
		{"🔄 雙頻複合", "α波與θ波的複合治療", "explain_double_freq"},
	}

	bubbles := make([]messaging_api.FlexBubble, 0, len(products))
	for _, p := range products {
		bubbles = append(bubbles, *bodyBubble(
			text(p.title, "lg", "bold"),
			text(p.desc, "sm", "regular"),
			&messaging_api.FlexButton{
				Style:  "primary",
				Action: &messaging_api.PostbackAction{Label: "詳細說明", Data: p.data, DisplayText: p.title + "說明"},
			},
		))
	}

	return &messaging_api.FlexMessage{
		AltText:  "VibPath 頻率治療服務",
		Contents: &messaging_api.FlexCarousel{Contents: bubbles},
	}
}

// CompanyIntroduction is the company profile card.
func CompanyIntroduction() *messaging_api.FlexMessage {
	return &messaging_api.FlexMessage{
		AltText: "VibPath 公司介紹",
		Contents: bodyBubble(
			text("🏢 VibPath 頻率治療中心", "lg", "bold"),
			text("專業的頻率治療設備製造商，專精於極低頻電磁波技術。", "sm", "regular"),
			text("• 波形極低失真度\n• 磁場強度充足\n• 專業頻率配方", "sm", "regular"),
			&messaging_api.FlexButton{
				Style:  "link",
				Action: &messaging_api.MessageAction{Label: "查看服務", Text: "頻率治療"},
			},
		),
	}
}

// ManualDownloadCard links to the product manual.
func ManualDownloadCard() *messaging_api.FlexMessage {
	return &messaging_api.FlexMessage{
		AltText: "VibPath 產品手冊",
		Contents: bodyBubble(
			text("📖 產品使用手冊", "lg", "bold"),
			text("完整的設備操作說明與頻率配方指南。", "sm", "regular"),
			&messaging_api.FlexButton{
				Style:  "primary",
				Action: &messaging_api.UriAction{Label: "下載手冊", Uri: "https://vibpath.com/static/manual.pdf"},
			},
		),
	}
}

// WelcomeMessages is the follow-event greeting bundle.
func WelcomeMessages() []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{
		&messaging_api.TextMessage{
			Text:       "🤖 歡迎使用 VibPath 智能客服！\n\n🎵 專業頻率治療服務\n🏢 企業諮詢服務\n💬 智能對話助手",
			QuickReply: QuickReplyServices(),
		},
		ServiceMenu(),
	}
}

// ApologyMessage is the generic recoverable-failure reply: AI was enabled
// but the call failed and no template matched.
func ApologyMessage() *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text:       "抱歉，我暫時無法處理您的請求，請稍後再試或使用快速回覆按鈕。",
		QuickReply: QuickReplyDetailed(),
	}
}
