package model

import (
	"time"
)

// FinancialIndicator 财务指标，每只股票每个报告期一条记录。
// 主键为 "{code}_{report_date}" 形式的组合键，已有记录不会被覆盖。
type FinancialIndicator struct {
	ID         string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	StockCode  string    `gorm:"type:varchar(10);not null;index" json:"stock_code"`
	ReportDate time.Time `gorm:"type:date;not null;index" json:"report_date"`

	// 成长能力指标
	NetProfit          *int64   `json:"net_profit"`            // 净利润(元)
	NetProfitGrowth    *float64 `json:"net_profit_growth"`     // 净利润同比增长率(%)
	NonNetProfit       *int64   `json:"non_net_profit"`        // 扣非净利润(元)
	NonNetProfitGrowth *float64 `json:"non_net_profit_growth"` // 扣非净利润同比增长率(%)
	TotalRevenue       *int64   `json:"total_revenue"`         // 营业总收入(元)
	TotalRevenueGrowth *float64 `json:"total_revenue_growth"`  // 营业总收入同比增长率(%)

	// 每股指标
	EPS                    *float64 `json:"eps"`                       // 基本每股收益(元)
	BPS                    *float64 `json:"bps"`                       // 每股净资产(元)
	CapitalReservePerShare *float64 `json:"capital_reserve_per_share"` // 每股资本公积金(元)
	UndistProfitPerShare   *float64 `json:"undist_profit_per_share"`   // 每股未分配利润(元)
	OCFPS                  *float64 `json:"ocfps"`                     // 每股经营现金流(元)

	// 盈利能力指标
	NetProfitMargin   *float64 `json:"net_profit_margin"`   // 销售净利率(%)
	GrossProfitMargin *float64 `json:"gross_profit_margin"` // 销售毛利率(%)
	ROE               *float64 `json:"roe"`                 // 净资产收益率(%)
	ROEDiluted        *float64 `json:"roe_diluted"`         // 净资产收益率-摊薄(%)

	// 运营能力指标
	OperatingCycle         *float64 `json:"operating_cycle"`          // 营业周期(天)
	InventoryTurnover      *float64 `json:"inventory_turnover"`       // 存货周转率(次)
	InventoryTurnoverDays  *float64 `json:"inventory_turnover_days"`  // 存货周转天数(天)
	ReceivableTurnoverDays *float64 `json:"receivable_turnover_days"` // 应收账款周转天数(天)

	// 偿债能力指标
	CurrentRatio           *float64 `json:"current_ratio"`            // 流动比率
	QuickRatio             *float64 `json:"quick_ratio"`              // 速动比率
	ConservativeQuickRatio *float64 `json:"conservative_quick_ratio"` // 保守速动比率
	EquityRatio            *float64 `json:"equity_ratio"`             // 产权比率
	DebtRatio              *float64 `json:"debt_ratio"`               // 资产负债率(%)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Stock Stock `gorm:"foreignKey:StockCode;references:Code" json:"stock,omitempty"`
}

// TableName 指定表名
func (FinancialIndicator) TableName() string {
	return "stock_financials"
}
