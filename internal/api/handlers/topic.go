package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/service"
)

// TopicHandler 處理與辯論主題相關的請求
type TopicHandler struct {
	topicService *service.TopicService
}

// NewTopicHandler 創建一個新的 TopicHandler 實例
func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// currentUsername 從認證中間件設置的上下文中取得用戶名
func currentUsername(c *gin.Context) string {
	value, _ := c.Get("username")
	username, _ := value.(string)
	return username
}

// statusFromError 將服務層的拒絕對應到 HTTP 狀態碼
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidSide), errors.Is(err, service.ErrNotParticipant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateTopic 處理創建主題的請求
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.topicService.CreateTopic(input.Title, currentUsername(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建主題失敗"})
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// ListTopics 處理獲取主題列表的請求
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topicService.ListTopics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋主題列表"})
		return
	}

	c.JSON(http.StatusOK, topics)
}

// GetTopic 處理獲取單一主題的請求
func (h *TopicHandler) GetTopic(c *gin.Context) {
	topic, err := h.topicService.GetTopic(c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, topic)
}

// JoinTopic 處理以指定立場加入主題的請求
func (h *TopicHandler) JoinTopic(c *gin.Context) {
	var input struct {
		Side string `json:"side" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.topicService.JoinTopic(c.Param("id"), currentUsername(c), models.Side(input.Side))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// LeaveTopic 處理離開主題的請求
func (h *TopicHandler) LeaveTopic(c *gin.Context) {
	if err := h.topicService.LeaveTopic(c.Param("id"), currentUsername(c)); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have left the debate."})
}

// DeleteTopic 處理刪除主題的請求，只有創建者可以執行
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	if err := h.topicService.DeleteTopic(c.Param("id"), currentUsername(c)); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debate topic deleted successfully."})
}

// GetMessages 處理獲取主題歷史訊息的請求
func (h *TopicHandler) GetMessages(c *gin.Context) {
	topicID := c.Param("id")
	if _, err := h.topicService.GetTopic(topicID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	messages, err := h.topicService.GetMessages(topicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋辯論訊息"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
