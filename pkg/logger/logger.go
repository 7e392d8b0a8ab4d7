// Package logger 基于zap的全局结构化日志
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init 按运行环境初始化全局日志器。
// 生产环境使用JSON编码，其余环境使用控制台编码。
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "prod" || env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get 获取全局日志器，未初始化时退回开发配置
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("dev")
	}
	return sugar
}

// Sync 刷新缓冲的日志，进程退出前调用
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
