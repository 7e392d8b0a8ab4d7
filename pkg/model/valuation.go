package model

import (
	"time"
)

// StockValuation 股票估值指标，按月留存一条快照。
// 主键为 "{code}_{date}" 形式的组合键，已有记录不会被覆盖。
type StockValuation struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	StockCode string    `gorm:"type:varchar(10);not null;index" json:"stock_code"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`

	// 估值指标
	PeTTM            *float64 `json:"pe_ttm"`             // 市盈率(TTM)
	Pb               *float64 `json:"pb"`                 // 市净率
	PsTTM            *float64 `json:"ps_ttm"`             // 市销率(TTM)
	DividendYieldTTM *float64 `json:"dividend_yield_ttm"` // 股息率TTM(%)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Stock Stock `gorm:"foreignKey:StockCode;references:Code" json:"stock,omitempty"`
}

// TableName 指定表名
func (StockValuation) TableName() string {
	return "stock_valuations"
}
