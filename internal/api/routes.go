package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MauryzetMateos10/chat-prueba/internal/api/handlers"
	"github.com/MauryzetMateos10/chat-prueba/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, staticDir string) {
	// 初始化 handlers
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager)

	// 靜態資源，聊天前端從這裡提供
	r.Static("/public", staticDir)
	r.StaticFile("/", staticDir+"/index.html")

	// WebSocket 連接點
	r.GET("/ws", wsHandler.HandleWebSocket)

	// API 路由群組
	api := r.Group("/api")
	{
		// 產生一個新的唯一識別碼
		api.GET("/id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id": uuid.NewString(),
			})
		})

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})
}
