package models

// SystemUsername 系統通知使用的發送者名稱
const SystemUsername = "System"

// ChatMessage 是對客戶端傳送的統一訊息格式，歷史回放與即時廣播皆同
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// IncomingMessage 是客戶端經由 WebSocket 傳入的訊息格式
type IncomingMessage struct {
	Username string `json:"username"`
	Side     string `json:"side"`
	Message  string `json:"message"`
}

// Valid 檢查訊息是否包含所有必要欄位
func (m IncomingMessage) Valid() bool {
	return m.Username != "" && m.Side != "" && m.Message != ""
}

// NewSystemMessage 創建一條系統通知
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Username: SystemUsername, Message: content}
}
