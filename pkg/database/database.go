package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"StockScreener/pkg/config"
	"StockScreener/pkg/model"
)

// DB 数据库连接
type DB struct {
	db *gorm.DB
}

// New 按配置建立PostgreSQL连接
func New(cfg *config.Config) (*DB, error) {
	pg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DBName, pg.SSLMode,
	)

	// 连接数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &DB{db: db}, nil
}

// NewWithGorm 基于已有的gorm连接创建DB，主要用于测试
func NewWithGorm(db *gorm.DB) *DB {
	return &DB{db: db}
}

// AutoMigrate 创建或更新数据表
func (d *DB) AutoMigrate() error {
	if err := d.db.AutoMigrate(
		&model.Stock{},
		&model.FinancialIndicator{},
		&model.StockValuation{},
	); err != nil {
		return fmt.Errorf("创建数据表失败: %w", err)
	}
	return nil
}

// Gorm 返回底层gorm连接
func (d *DB) Gorm() *gorm.DB {
	return d.db
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
