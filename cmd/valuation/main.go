package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"StockScreener/pkg/config"
	"StockScreener/pkg/database"
	"StockScreener/pkg/logger"
	"StockScreener/pkg/pipeline"
	"StockScreener/pkg/provider"
	"StockScreener/pkg/retry"
)

func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.Get()

	code := flag.String("code", "", "只采集指定股票代码的估值指标")
	flag.Parse()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 连接数据库并初始化数据表
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 创建数据源与采集器
	aktools := provider.NewAKToolsClient(
		cfg.DataSources.AKTools.BaseURL,
		cfg.DataSources.AKTools.Timeout.Std(),
	)
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.Collector.MaxRetries
	collector := pipeline.NewCollector(aktools, db, policy, cfg.Collector.StockDelay.Std())

	if *code != "" {
		if err := collector.CollectValuationByCode(*code); err != nil {
			log.Fatalf("收集股票 %s 的估值指标失败: %v", *code, err)
		}
		return
	}

	if err := collector.CollectValuations(); err != nil {
		log.Fatalf("收集估值指标失败: %v", err)
	}
}
