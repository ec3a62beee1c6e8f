// Package main provides localization for the laserpreview CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Output":        "出力先",
		"Material":      "素材",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Commands
		"Preview laser engravings of photographs on glass and wood": "写真のレーザー彫刻をガラスや木材でプレビュー",
		"Render an engraving preview":                               "彫刻プレビューを生成",
		"Render a pencil sketch on paper":                           "紙に描いた鉛筆画を生成",
		"Interactively re-render a preview from commands on stdin":  "標準入力のコマンドでプレビューを対話的に再生成",
		"YAML configuration file":                                   "YAML設定ファイル",
		"Log level (debug, info, warn, error)":                      "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                                   "すべてのログ出力を抑制",
		"Save intermediate images":                                  "中間画像を保存",
		"Directory for intermediate images":                         "中間画像の保存先ディレクトリ",
		"Output image path":                                         "出力画像のパス",
		"Output format (png, jpeg, webp)":                           "出力形式 (png, jpeg, webp)",
		"JPEG quality (1-100)":                                      "JPEG品質 (1-100)",
		"Longest side of the working canvas":                        "作業キャンバスの長辺",
		"Output execution summary to file (Markdown format)":        "実行サマリーをファイルに出力（Markdown形式）",
		"Material texture as name=path (wood, glass, paper)":        "素材テクスチャを 名前=パス で指定 (wood, glass, paper)",
		"Material (glass or wood)":                                  "素材 (glass または wood)",
		"Engraving depth in percent (10-100)":                       "彫刻の深さ（パーセント, 10-100）",
		"Also write the alpha-masked export to this path":           "アルファマスク付きの書き出しをこのパスにも保存",
		"invalid --texture %q, want name=path":                      "--texture %q が不正です。名前=パス の形式で指定してください",
		"an input image is required":                                "入力画像が必要です",
		"--output is required":                                      "--output は必須です",
		"Summary saved to %s":                                       "サマリーを %s に保存しました",
		"Failed to write summary: %s":                               "サマリーの書き込みに失敗しました: %s",

		// Watch
		"Commands: depth <percent>, material <glass|wood>, open <image>, quit": "コマンド: depth <パーセント>, material <glass|wood>, open <画像>, quit",
		"Preview %d ready: %s on %s at %d%%":                                   "プレビュー %d 完成: %s (%s, 深さ %d%%)",
		"Generation %d failed: %s":                                             "世代 %d の生成に失敗しました: %s",
		"usage: depth <percent>":                                               "使い方: depth <パーセント>",
		"usage: material <glass|wood>":                                         "使い方: material <glass|wood>",
		"usage: open <image>":                                                  "使い方: open <画像>",
		"invalid depth %q":                                                     "深さ %q が不正です",
		"unknown command %q":                                                   "不明なコマンド %q",

		// Summary
		"Preview Summary": "プレビューサマリー",
		"Generated":       "生成日時",
		"Generated by":    "生成ツール",
		"Source":          "元画像",
		"Settings":        "設定",
		"Intensity Map":   "強度マップ",
		"Timing":          "処理時間",
		"Outputs":         "出力",
		"Item":            "項目",
		"Value":           "値",
		"File":            "ファイル",
		"File Size":       "ファイルサイズ",
		"Natural Size":    "元のサイズ",
		"Working Size":    "作業サイズ",
		"Scale":           "倍率",
		"Mode":            "モード",
		"Depth":           "深さ",
		"Texture":         "テクスチャ",
		"Applied":         "適用",
		"Procedural":      "手続き的",
		"Blur Radius":     "ぼかし半径",
		"Contrast":        "コントラスト",
		"Mean Stroke":     "平均ストローク",
		"Stroke Std Dev":  "ストローク標準偏差",
		"Engraved Pixels": "彫刻ピクセル",
		"Normalize":       "正規化",
		"Tone":            "トーン",
		"Composite":       "合成",
		"Export":          "書き出し",
		"Total":           "合計",
		"Format":          "形式",
		"transparent":     "透過",
	})
}
