package model

import (
	"time"
)

// Stock 股票基本信息
type Stock struct {
	Code        string     `gorm:"type:varchar(10);primaryKey" json:"code"`
	Name        string     `gorm:"type:varchar(50);not null" json:"name"`
	Industry    *string    `gorm:"type:varchar(50)" json:"industry"`
	Market      string     `gorm:"type:varchar(20)" json:"market"`
	ListingDate *time.Time `gorm:"type:date" json:"listing_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Financials []FinancialIndicator `gorm:"foreignKey:StockCode;references:Code" json:"financials,omitempty"`
	Valuations []StockValuation     `gorm:"foreignKey:StockCode;references:Code" json:"valuations,omitempty"`
}

// TableName 指定表名
func (Stock) TableName() string {
	return "stock_basic"
}
