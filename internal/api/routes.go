package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-T/Civil-Debate/internal/api/handlers"
	"github.com/Daksh-T/Civil-Debate/internal/middleware"
	"github.com/Daksh-T/Civil-Debate/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	topicHandler := handlers.NewTopicHandler(services.Topic)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Topic, services.Debate)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 辯論主題相關
		topics := authorized.Group("/topics")
		{
			// 基本操作
			topics.GET("", topicHandler.ListTopics)                // 獲取主題列表
			topics.POST("", topicHandler.CreateTopic)              // 創建主題
			topics.GET("/:id", topicHandler.GetTopic)              // 獲取主題信息
			topics.GET("/:id/messages", topicHandler.GetMessages)  // 獲取歷史訊息

			// 主題參與
			topics.POST("/:id/join", topicHandler.JoinTopic)     // 加入主題
			topics.POST("/:id/leave", topicHandler.LeaveTopic)   // 離開主題
			topics.POST("/:id/delete", topicHandler.DeleteTopic) // 刪除主題（限創建者）

			// WebSocket 連接點（token 經由查詢參數傳遞）
			topics.GET("/:id/ws", wsHandler.HandleWebSocket)
		}
	}
}
