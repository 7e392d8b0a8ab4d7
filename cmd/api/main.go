package main

import (
	"os"

	"github.com/joho/godotenv"

	"StockScreener/pkg/api"
	"StockScreener/pkg/config"
	"StockScreener/pkg/database"
	"StockScreener/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.Get()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 连接数据库
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer db.Close()

	// 创建API服务器
	server := api.NewServer(cfg.API.Port, cfg.API.ReadTimeout.Std(), cfg.API.WriteTimeout.Std())
	server.SetupRoutes(api.NewHandlers(db))

	// 启动并等待中断信号
	server.Start()
}
