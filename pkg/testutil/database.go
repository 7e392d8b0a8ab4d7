// Package testutil 测试用的内存数据库工具
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"StockScreener/pkg/model"
)

// SetupTestDB 创建内存SQLite数据库并迁移全部数据表
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Stock{},
		&model.FinancialIndicator{},
		&model.StockValuation{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	return db
}

// TeardownTestDB 关闭测试数据库连接
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("获取底层连接失败: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("关闭测试数据库失败: %v", err)
	}
}
