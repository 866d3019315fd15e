// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了各種中間件函數，用於在 HTTP 請求處理過程中執行額外的操作。
// 目前只有身份驗證中間件，負責解析 JWT token 並把用戶信息放進請求上下文。
package middleware
