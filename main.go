package main

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-T/Civil-Debate/internal/api"
	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/repository"
	"github.com/Daksh-T/Civil-Debate/internal/service"
	"github.com/Daksh-T/Civil-Debate/internal/storage"
	"github.com/Daksh-T/Civil-Debate/internal/utils"
	"github.com/Daksh-T/Civil-Debate/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 設定 JWT 簽發密鑰
	utils.Init(cfg.JWT.Secret)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}, &models.Topic{}, &models.Participant{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 前端靜態文件
	if cfg.Server.StaticDir != "" {
		r.Static("/static", cfg.Server.StaticDir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.Server.StaticDir, "index.html"))
		})
	}

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
