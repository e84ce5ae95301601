package intent

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"產品手冊在哪", Manual},
		{"請給我使用手冊", Manual},
		{"MANUAL please", Manual},
		{"7.83Hz 是什麼", Frequency},
		{"你們的療程有哪些", Frequency},
		{"產品價格多少", Frequency},
		{"公司介紹", Business},
		{"關於我們", Business},
		{"你們公司在做什麼", Business},
		{"選單", Menu},
		{"menu", Menu},
		{"有什麼服務", Menu},
		{"幫助", Help},
		{"怎麼用", Help},
		{"你好", General},
		{"", General},
		// Overlapping keywords: manual wins over business when both match.
		{"公司的產品手冊", Manual},
		// Frequency outranks business for product questions.
		{"公司的商品", Frequency},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
