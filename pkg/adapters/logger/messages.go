package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":                   "パイプラインを開始します",
		"Pipeline completed successfully":     "パイプラインが正常に完了しました",
		"Reading %s":                          "%s を読み込み中",
		"Working canvas %dx%d (source %dx%d)": "作業キャンバス %dx%d (元画像 %dx%d)",
		"Extracting sketch":                   "線画を抽出中",
		"Compositing on %s at depth %d%%":     "%s に深さ %d%% で合成中",
		"Framing sketch on paper":             "線画を紙に配置中",
		"Wrote %s (%d bytes)":                 "%s を書き出しました (%d バイト)",
		"Interrupted, shutting down...":       "中断されました。シャットダウン中...",

		// Normalize stage
		"Normalized %dx%d to %dx%d (scale %.3f)": "%dx%d を %dx%d に正規化しました (倍率 %.3f)",

		// Tone stage
		"Extracting sketch %dx%d (blur radius %.0f)": "%dx%d の線画を抽出中 (ぼかし半径 %.0f)",

		// Material stage
		"Compositing %s at depth %.2f":               "%s を深さ %.2f で合成中",
		"No %s texture, using procedural background": "%s のテクスチャがないため手続き的背景を使用します",
		"No %s texture: %v":                          "%s のテクスチャがありません: %v",

		// Paper stage
		"No paper texture, skipping grain":             "紙のテクスチャがないため質感を省略します",
		"Sketch framed on paper %dx%d (border %.1fpx)": "線画を %dx%d の紙に配置しました (枠 %.1fpx)",

		// Export stage
		"Transparent export keeps %d of %d pixels": "透過書き出しで %d / %d ピクセルを保持しました",

		// Session
		"Generation %d scheduled in %v": "世代 %d を %v 後に予約しました",
		"Generation %d computing":       "世代 %d を計算中",
		"Generation %d discarded":       "世代 %d を破棄しました",

		// Warnings
		"Texture unavailable, using procedural background: %s":         "テクスチャを利用できないため手続き的背景を使用します: %s",
		"JPEG has no alpha channel, writing transparent export as PNG": "JPEGはアルファチャンネルを持たないため、透過書き出しをPNGで保存します",
		"Failed to save debug output: %v":                              "デバッグ出力の保存に失敗しました: %v",

		// Errors
		"Failed to read input: %s":         "入力の読み込みに失敗しました: %s",
		"Failed to decode input: %s":       "入力のデコードに失敗しました: %s",
		"Failed to normalize source: %s":   "元画像の正規化に失敗しました: %s",
		"Failed to extract sketch: %s":     "線画の抽出に失敗しました: %s",
		"Failed to composite material: %s": "素材の合成に失敗しました: %s",
		"Failed to frame sketch: %s":       "線画の配置に失敗しました: %s",
		"Failed to export preview: %s":     "プレビューの書き出しに失敗しました: %s",
		"Failed to encode output: %s":      "出力のエンコードに失敗しました: %s",
		"Failed to write output: %s":       "出力の書き込みに失敗しました: %s",
	})
}
