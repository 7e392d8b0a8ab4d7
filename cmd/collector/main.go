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
	// .env 存在时先载入，再用环境变量覆盖配置
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.Get()

	var (
		code     = flag.String("code", "", "只采集指定股票代码的数据")
		skipList = flag.Bool("skip-list", false, "跳过股票列表收集")
		onlyList = flag.Bool("only-list", false, "只收集股票列表")
	)
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
	log.Info("数据库表创建成功")

	// 创建数据源与采集器
	aktools := provider.NewAKToolsClient(
		cfg.DataSources.AKTools.BaseURL,
		cfg.DataSources.AKTools.Timeout.Std(),
	)
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.Collector.MaxRetries
	collector := pipeline.NewCollector(aktools, db, policy, cfg.Collector.StockDelay.Std())

	// 指定了股票代码时只处理这一只
	if *code != "" {
		if err := collector.CollectFinancialsByCode(*code); err != nil {
			log.Fatalf("收集股票 %s 的财务指标失败: %v", *code, err)
		}
		return
	}

	if !*skipList {
		if err := collector.CollectStockList(); err != nil {
			log.Fatalf("收集股票列表失败: %v", err)
		}
	}
	if *onlyList {
		return
	}

	if err := collector.CollectFinancials(); err != nil {
		log.Fatalf("收集财务指标失败: %v", err)
	}
}
