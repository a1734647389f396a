package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session
		"Error: Video file '%s' not found.":      "エラー: 動画ファイル '%s' が見つかりません。",
		"Error: Could not open video file '%s'.": "エラー: 動画ファイル '%s' を開けませんでした。",
		"Error: %s":                              "エラー: %s",
		"Playback stopped.":                      "再生を停止しました。",
		"Finished playing %d frames":             "%d フレームの再生が完了しました",
		"Interrupted, stopping playback...":      "中断されました。再生を停止しています...",
		"Opened %s: %dx%d, %.3f fps, %d frames":  "%s を開きました: %dx%d, %.3f fps, %d フレーム",
		"Frame rate %.3f is invalid, using %.0f": "フレームレート %.3f は無効です。%.0f を使用します",
		"Character width: %d (terminal %d)":      "文字幅: %d (端末 %d)",

		// Playback
		"Playback started at %.3f fps (%s per frame)": "%.3f fps で再生開始 (1フレーム %s)",
		"Frame %d took %s, behind schedule by %s":     "フレーム %d に %s かかり、%s 遅れています",
		"Playback ended: %s after %d frames":          "再生終了: %s (%d フレーム)",
		"Frame %d could not be rendered: %s":          "フレーム %d を描画できませんでした: %s",

		// Decoder
		"Probing %s with %s":                       "%s を %s で解析中",
		"ffprobe not available, reading MP4 boxes": "ffprobe が利用できません。MP4 ボックスを読み取ります",
		"Starting decoder: %s":                     "デコーダーを起動中: %s",
		"Decoder stopped":                          "デコーダーを停止しました",

		// Audio
		"ffplay not found - playing without audio": "ffplay が見つかりません - 音声なしで再生します",
		"Install ffmpeg to enable audio:":          "音声を有効にするには ffmpeg をインストールしてください:",
		"Failed to start audio: %s":                "音声の開始に失敗しました: %s",
		"Audio started (pid %d)":                   "音声を開始しました (pid %d)",
		"Audio did not exit within %s, killing":    "音声が %s 以内に終了しないため強制終了します",
		"Audio stopped":                            "音声を停止しました",

		// Debug sink
		"Debug output enabled: %s":          "デバッグ出力が有効です: %s",
		"Failed to save debug frame %d: %s": "デバッグフレーム %d の保存に失敗しました: %s",

		// CLI
		"No video file specified.":    "動画ファイルが指定されていません。",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
