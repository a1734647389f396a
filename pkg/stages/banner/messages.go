package banner

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Video":                "動画",
		"Resolution":           "解像度",
		"Duration":             "再生時間",
		"ASCII Width":          "ASCII 幅",
		"characters":           "文字",
		"Color":                "カラー",
		"Enabled":              "有効",
		"Audio":                "音声",
		"Starting...":          "開始中...",
		"Disabled":             "無効",
		"Press Ctrl+C to stop": "Ctrl+C で停止",
	})
}
