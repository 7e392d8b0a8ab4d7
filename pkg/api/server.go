package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chenjiandongx/ginprom"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockScreener/pkg/logger"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(port string, readTimeout, writeTimeout time.Duration) *Server {
	router := gin.New()

	// 设置中间件
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)

	// 监控指标
	s.router.GET("/metrics", ginprom.PromHandler(promhttp.Handler()))

	// API v1 路由组
	v1 := s.router.Group("/api/v1")
	{
		// 股票查询接口
		v1.GET("/stocks/:code/basic", handlers.GetStockBasic)
		v1.GET("/stocks/:code/financials", handlers.GetStockFinancials)
		v1.GET("/stocks/:code/valuations", handlers.GetStockValuations)

		// SQL透传接口
		v1.POST("/execute-sql", handlers.ExecuteSQL)
	}
}

// Start 启动服务器并等待中断信号
func (s *Server) Start() {
	log := logger.Get()

	// 在goroutine中启动服务器
	go func() {
		log.Infof("API服务器启动在 %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	log.Info("服务器已关闭")
}
