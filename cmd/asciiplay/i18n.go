// Package main provides localization for the asciiplay CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Rendering":       "描画",
		"Audio and Tools": "音声と外部ツール",
		"Configuration":   "設定",
		"Debug":           "デバッグ",
		"Logging":         "ログ",

		// Root command
		"Play videos in the terminal as colored ASCII art": "動画をカラーASCIIアートとして端末で再生",
		"Enter video file path: ":                          "動画ファイルのパスを入力してください: ",

		// Rendering flags
		"ASCII width in characters (default: terminal width)":       "ASCIIの幅（文字数、デフォルト: 端末の幅）",
		"Character ramp from darkest to brightest":                  "暗い順から明るい順に並べた文字列",
		"Downsampling filter (area, nearest, bilinear, catmullrom)": "縮小フィルタ（area, nearest, bilinear, catmullrom）",

		// Audio and tool flags
		"Play without audio": "音声なしで再生",
		"Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)":   "ffmpegのパス（未指定時は環境変数FFMPEG_PATH、次にPATH）",
		"Path to ffprobe (falls back to FFPROBE_PATH env, then PATH)": "ffprobeのパス（未指定時は環境変数FFPROBE_PATH、次にPATH）",
		"Path to ffplay (falls back to FFPLAY_PATH env, then PATH)":   "ffplayのパス（未指定時は環境変数FFPLAY_PATH、次にPATH）",

		// Configuration flags
		"YAML configuration file":                           "YAML設定ファイル",
		"Output playback summary to file (Markdown format)": "再生サマリーをファイルに出力（Markdown形式）",

		// Debug flags
		"Enable debug output":                         "デバッグ出力を有効化",
		"Directory for debug output":                  "デバッグ出力先ディレクトリ",
		"Save every Nth frame to the debug directory": "N フレームごとにデバッグディレクトリへ保存",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "すべてのログ出力を抑制",
	})
}
