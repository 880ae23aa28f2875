package common

// エラーメッセージの絵文字定数
const (
	ErrorIcon   = "❌"
	SuccessIcon = "✅"
)

// エラーメッセージフォーマット定数
const (
	// 一覧取得エラー
	ListErrorFormat = "%s %s一覧の取得に失敗: %w"

	// リソース操作エラー
	GetErrorFormat    = "%s %s の取得に失敗: %w"
	UpdateErrorFormat = "%s %s の更新に失敗: %w"

	// 成功メッセージ
	UpdateSuccessFormat = "%s %s を更新しました"
)
