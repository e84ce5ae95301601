package templates

// explanations holds the postback explanation texts, keyed by action id.
var explanations = map[string]string{
	"explain_company": `🏢 VibPath 頻率治療中心

我們是專業的頻率治療設備製造商，專精於極低頻電磁波技術。

🔬 核心技術優勢：
• 波形極低失真度 - 確保治療效果最大化
• 磁場強度充足 - 提供更深層的共振效果
• 專業頻率配方 - 基於科學研究和實務經驗

📞 歡迎體驗我們的專業產品！`,

	"explain_frequency": `🎵 頻率治療原理說明

頻率治療是運用特定的極低頻電磁波來調節身心狀態的自然療法。

🧠 科學基礎：
• α波(7.83-8Hz)：大腦靜下來後的狀態，助眠效果
• θ波(4Hz)：醒睡之間的腦波，更積極的助眠作用
• γ波(40Hz)：高度專注時的大腦腦波

🎯 主要應用：
• 助眠放鬆：舒曼波、α波、θ波
• 提升專注：γ波(40Hz)
• 脈輪調理：13頻脈輪波`,

	"explain_7_83hz": `🌍 7.83Hz 舒曼共振療法

7.83Hz 是地球的基本振動頻率，被稱為「地球心跳」，主要用於助眠。

🌱 主要功效：
• 深度放鬆身心，有效助眠
• 釋放日常累積的壓力
• 改善睡眠品質

⏰ 使用建議：
睡前使用30-60分鐘，幫助身心放鬆，自然進入深層睡眠狀態。`,

	"explain_13freq": `🕉️ 13頻脈輪波療法

13頻脈輪波屬於瑜珈系統，對應從海底輪到頂輪的完整能量中心調理。

🎯 主要功效：
• 平衡身體各個能量中心
• 促進能量流動順暢
• 輔助冥想修行進入更深層狀態`,

	"explain_40hz": `⚡ 40Hz γ波療法

40Hz 是高度專注時的大腦腦波，幫助提升工作與學習效率。

🎯 主要功效：
• 提升專注力與清晰度
• 支援深度工作狀態
• 活化大腦認知功能`,

	"explain_double_freq": `🔄 雙頻複合治療

α波與θ波的複合輸出，兼顧放鬆與深層定靜。

🎯 主要功效：
• 比單頻更全面的放鬆效果
• θ波幫助進入更深的定靜狀態
• 適合修行輔助與深度休息`,
}

// Explanation returns the canned text for a postback action id.
func Explanation(key string) (string, bool) {
	s, ok := explanations[key]
	return s, ok
}
