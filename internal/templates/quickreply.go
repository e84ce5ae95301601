package templates

import "github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

func messageItem(label, text string) messaging_api.QuickReplyItem {
	return messaging_api.QuickReplyItem{
		Action: &messaging_api.MessageAction{Label: label, Text: text},
	}
}

func postbackItem(label, data, displayText string) messaging_api.QuickReplyItem {
	return messaging_api.QuickReplyItem{
		Action: &messaging_api.PostbackAction{Label: label, Data: data, DisplayText: displayText},
	}
}

// QuickReplyServices is the basic service shortcut row.
func QuickReplyServices() *messaging_api.QuickReply {
	return &messaging_api.QuickReply{
		Items: []messaging_api.QuickReplyItem{
			messageItem("🏢 公司介紹", "公司介紹"),
			messageItem("🎵 頻率治療", "頻率治療"),
			messageItem("📋 選單", "選單"),
			postbackItem("💡 快速解說", "explain_frequency", "頻率治療原理說明"),
		},
	}
}

// QuickReplyDetailed offers per-product explanation shortcuts. Attached to
// AI text replies so a failed follow-up question still has an exit.
func QuickReplyDetailed() *messaging_api.QuickReply {
	return &messaging_api.QuickReply{
		Items: []messaging_api.QuickReplyItem{
			postbackItem("🌍 7.83Hz", "explain_7_83hz", "7.83Hz 舒曼共振說明"),
			postbackItem("🧠 13Hz", "explain_13freq", "13Hz α波頻率說明"),
			postbackItem("⚡ 40Hz", "explain_40hz", "40Hz γ波頻率說明"),
			postbackItem("🔄 雙頻", "explain_double_freq", "雙頻複合治療說明"),
			postbackItem("🏢 公司", "explain_company", "VibPath 公司介紹"),
			messageItem("🛒 購買", "頻率治療"),
		},
	}
}

// QuickReplyBasic is the row attached to template fallbacks and toggle replies.
func QuickReplyBasic() *messaging_api.QuickReply {
	return &messaging_api.QuickReply{
		Items: []messaging_api.QuickReplyItem{
			messageItem("📋 選單", "選單"),
			messageItem("❓ 幫助", "幫助"),
			messageItem("🤖 AI開關", "ai開關"),
			messageItem("ℹ️ AI狀態", "ai狀態"),
		},
	}
}
