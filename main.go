package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/MauryzetMateos10/chat-prueba/internal/api"
	"github.com/MauryzetMateos10/chat-prueba/internal/models"
	"github.com/MauryzetMateos10/chat-prueba/internal/repository"
	"github.com/MauryzetMateos10/chat-prueba/internal/service"
	"github.com/MauryzetMateos10/chat-prueba/internal/storage"
	"github.com/MauryzetMateos10/chat-prueba/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 配置文件是可選的，預設值可以用環境變量覆蓋
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 這裡遷移 User 和 Message 兩個模型
	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 和 services
	repos := repository.NewRepositories(db.DB)
	services := service.NewServices(repos)

	// 啟動 WebSocket 管理器的事件迴圈
	go services.WebSocketManager.Run()

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg.Static.Dir)

	// 啟動伺服器
	log.Printf("Listening on %s", cfg.Server.Address())
	if err := r.Run(cfg.Server.Address()); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
