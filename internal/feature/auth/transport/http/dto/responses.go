package dto

// TokenRes は認証成功時のレスポンスボディを表します。
type TokenRes struct {
	Token string `json:"token"`
}

// MessageRes は汎用の成功メッセージレスポンスを表します。
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes は汎用のエラーレスポンスを表します。
type ErrorRes struct {
	Error string `json:"error"`
}
