// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了所有的 HTTP 處理器（handlers），包括 REST API 和
// WebSocket 連接點。它負責將 HTTP 請求轉換為適當的服務調用，
// 並將結果轉換回 HTTP 響應。
package api
