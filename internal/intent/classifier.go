// Package intent maps raw message text to a small closed set of intent tags
// via ordered keyword-set matching.
package intent

import "strings"

// Intent is one of the closed tags the dispatcher routes on.
type Intent string

const (
	Manual    Intent = "manual"
	Frequency Intent = "frequency"
	Business  Intent = "business"
	Menu      Intent = "menu"
	Help      Intent = "help"
	General   Intent = "general"
)

type rule struct {
	tag      Intent
	keywords []string
}

// Evaluation is ordered and first-match-wins. Keyword sets overlap (公司
// alone matches business but yields to a manual keyword present earlier in
// priority), so more specific tags come first: manual → frequency →
// business → menu → help.
var rules = []rule{
	{Manual, []string{"手冊", "說明書", "產品手冊", "使用手冊", "下載手冊", "manual"}},
	{Frequency, []string{"頻率", "赫茲", "hz", "療程", "四夜", "服務項目", "頻率治療", "商品", "產品", "購買", "價格"}},
	{Business, []string{"公司介紹", "關於我們", "企業簡介", "主業", "業務介紹", "公司", "企業"}},
	{Menu, []string{"選單", "menu", "服務", "功能"}},
	{Help, []string{"幫助", "help", "說明", "使用方法", "怎麼用"}},
}

// Detect classifies text. Matching is case-insensitive substring containment
// against fixed keyword lists; no tokenization, no fuzzing. Unmatched text
// is General.
func Detect(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tag
			}
		}
	}
	return General
}
