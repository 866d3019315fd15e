package service

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Daksh-T/Civil-Debate/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接，對應一個 (主題, 用戶名) 組合
type Client struct {
	Conn     *websocket.Conn         // WebSocket 連接
	TopicID  string                  // 主題 ID
	Username string                  // 用戶名
	Send     chan models.ChatMessage // 訊息發送通道，用於異步傳送訊息
}

// NewClient 創建一個帶緩衝發送通道的客戶端
func NewClient(conn *websocket.Conn, topicID, username string) *Client {
	return &Client{
		Conn:     conn,
		TopicID:  topicID,
		Username: username,
		Send:     make(chan models.ChatMessage, 256),
	}
}

// WebSocketManager 管理所有的 WebSocket 連接和訊息傳遞
// 兩層 map: topicID -> username -> client，每個 (主題, 用戶名) 最多一個連接
type WebSocketManager struct {
	clients    map[string]map[string]*Client
	clientsMux sync.RWMutex // 保護 clients map 的讀寫鎖
}

// NewWebSocketManager 創建並初始化新的連接管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[string]map[string]*Client),
	}
}

// Register 註冊客戶端連接
// 同一 (主題, 用戶名) 的新連接直接覆蓋舊條目，不主動關閉舊連接
func (m *WebSocketManager) Register(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.TopicID] == nil {
		m.clients[client.TopicID] = make(map[string]*Client)
	}
	m.clients[client.TopicID][client.Username] = client
}

// Unregister 移除客戶端連接；主題沒有剩餘連接時一併移除主題條目
// 條目不存在時不做任何事
func (m *WebSocketManager) Unregister(topicID, username string) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[topicID]; ok {
		delete(clients, username)
		if len(clients) == 0 {
			delete(m.clients, topicID)
		}
	}
}

// LookupAll 回傳主題目前所有連接的快照
func (m *WebSocketManager) LookupAll(topicID string) []*Client {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	clients := make([]*Client, 0, len(m.clients[topicID]))
	for _, client := range m.clients[topicID] {
		clients = append(clients, client)
	}
	return clients
}

// LookupOne 查詢主題內特定用戶的連接
func (m *WebSocketManager) LookupOne(topicID, username string) (*Client, bool) {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	client, ok := m.clients[topicID][username]
	return client, ok
}

// Broadcast 向主題內目前所有連接廣播訊息
// 以呼叫當下的連接快照為準，個別客戶端失敗不影響其他客戶端
func (m *WebSocketManager) Broadcast(topicID string, msg models.ChatMessage) {
	for _, client := range m.LookupAll(topicID) {
		m.deliver(client, msg)
	}
}

// SendPrivate 向主題內特定用戶傳送私人訊息；用戶不在線時靜默忽略
func (m *WebSocketManager) SendPrivate(topicID, username string, msg models.ChatMessage) {
	client, ok := m.LookupOne(topicID, username)
	if !ok {
		log.Printf("user %s not found in topic %s", username, topicID)
		return
	}
	m.deliver(client, msg)
}

// BroadcastSystemMessage 向主題廣播系統通知
func (m *WebSocketManager) BroadcastSystemMessage(topicID, content string) {
	m.Broadcast(topicID, models.NewSystemMessage(content))
}

// SendSystemMessage 向主題內特定用戶傳送系統通知
func (m *WebSocketManager) SendSystemMessage(topicID, username, content string) {
	m.SendPrivate(topicID, username, models.NewSystemMessage(content))
}

// CloseTopic 強制關閉主題的所有連接並移除主題條目，用於主題刪除
func (m *WebSocketManager) CloseTopic(topicID string) {
	m.clientsMux.Lock()
	clients := m.clients[topicID]
	delete(m.clients, topicID)
	m.clientsMux.Unlock()

	for _, client := range clients {
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// deliver 將訊息放入客戶端的發送隊列
// 隊列已滿視為客戶端失效：記錄日誌、移除並關閉連接，不重試
func (m *WebSocketManager) deliver(client *Client, msg models.ChatMessage) {
	select {
	case client.Send <- msg:
	default:
		log.Printf("send buffer full, dropping client %s in topic %s", client.Username, client.TopicID)
		m.Unregister(client.TopicID, client.Username)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// WritePump 處理向客戶端發送訊息的邏輯，每個連接由一個 goroutine 執行
func (m *WebSocketManager) WritePump(client *Client) {
	// 心跳計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(msg); err != nil {
				log.Printf("write to %s failed: %v", client.Username, err)
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
