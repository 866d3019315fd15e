package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager     *service.WebSocketManager
	topicService  *service.TopicService
	debateService *service.DebateService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, topicService *service.TopicService, debateService *service.DebateService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:     wsManager,
		topicService:  topicService,
		debateService: debateService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 連接後先回放主題的全部歷史訊息，之後進入讀取循環，
// 每條合法訊息交給 DebateService 異步處理
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	topicID := c.Param("id")
	username := currentUsername(c)

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	client := service.NewClient(conn, topicID, username)
	h.wsManager.Register(client)

	// 連接關閉時清理註冊條目
	// 已送交審核的訊息不會被取消，其投遞只會找不到收件人
	defer func() {
		h.wsManager.Unregister(topicID, username)
		conn.Close()
	}()

	go h.wsManager.WritePump(client)

	// 回放歷史訊息，舊到新
	if history, err := h.topicService.GetMessages(topicID); err == nil {
		for _, msg := range history {
			client.Send <- msg
		}
	} else {
		log.Printf("history replay for topic %s failed: %v", topicID, err)
	}

	h.readLoop(client)
}

// readLoop 持續讀取客戶端訊息直到連接關閉
func (h *WebSocketHandler) readLoop(client *service.Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg models.IncomingMessage
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			return
		}

		// 缺少任何欄位的訊息只回覆一條錯誤，不做任何後續處理
		if !msg.Valid() {
			h.wsManager.SendPrivate(client.TopicID, client.Username,
				models.NewSystemMessage("Invalid message format."))
			continue
		}

		// 每條訊息是獨立的處理單元，審核期間不阻塞讀取循環
		go h.debateService.HandleIncoming(client.TopicID, msg.Username, msg.Side, msg.Message)
	}
}
