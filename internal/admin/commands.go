package admin

import (
	"regexp"
	"strconv"
	"strings"
)

// Pause command grammar: the 暫停 prefix optionally followed by a number and
// a unit token. Longer unit spellings come first in the alternation so "min"
// is not consumed as bare "m".
var pauseRe = regexp.MustCompile(`^暫停\s*(\d+)\s*(分鐘|分|mins|min|m|小時|hours|hour|hrs|hr|h)`)

var resumeKeywords = []string{"恢復", "繼續", "啟動", "resume", "start"}

// ParsePauseCommand recognizes a pause command and returns the duration in
// minutes. A bare 暫停 defaults to 60; a valid prefix with an unrecognized
// tail also defaults to 60. ok is false when text is not a pause command.
func ParsePauseCommand(text string) (minutes int, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if !strings.HasPrefix(text, "暫停") {
		return 0, false
	}
	if text == "暫停" {
		return 60, true
	}

	m := pauseRe.FindStringSubmatch(text)
	if m == nil {
		// Valid prefix, unparseable tail: fall back to the default hour.
		return 60, true
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 60, true
	}
	switch m[2] {
	case "小時", "hours", "hour", "hrs", "hr", "h":
		return n * 60, true
	default:
		return n, true
	}
}

// ParseResumeCommand reports whether text is a resume command.
func ParseResumeCommand(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, kw := range resumeKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseStatusCommand reports whether text is a status query.
func ParseStatusCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "狀態", "status":
		return true
	}
	return false
}

// ParseHelpCommand reports whether text asks for the admin help text.
// Exact match only, so ordinary messages containing these words pass through.
func ParseHelpCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "指令", "commands", "admin":
		return true
	}
	return false
}

// HelpMessage is the fixed admin command reference.
func HelpMessage() string {
	return `👤 管理員指令說明

⏸️ 暫停 Bot
• 暫停 → 暫停 1 小時
• 暫停15分鐘 / 暫停15m / 暫停15min
• 暫停2小時 / 暫停2h / 暫停2hr

▶️ 恢復運作
• 恢復 / 繼續 / resume

📊 查看狀態
• 狀態 / status

💡 顯示說明
• 指令 / commands / admin`
}
