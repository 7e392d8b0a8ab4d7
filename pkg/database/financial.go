package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"StockScreener/pkg/model"
)

type FinancialDB struct {
	db *gorm.DB
}

func (d *DB) Financial() *FinancialDB {
	return &FinancialDB{db: d.db}
}

func (f *FinancialDB) ExistsByID(id string) (bool, error) {
	var count int64
	err := f.db.Model(&model.FinancialIndicator{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetByStockCode 按股票代码查询财务指标，报告期倒序。
// startDate/endDate 为nil时不限制区间。
func (f *FinancialDB) GetByStockCode(code string, startDate, endDate *time.Time, limit int) ([]*model.FinancialIndicator, error) {
	query := f.db.Where("stock_code = ?", code)
	if startDate != nil {
		query = query.Where("report_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("report_date <= ?", *endDate)
	}

	var indicators []*model.FinancialIndicator
	err := query.Order("report_date DESC").Limit(limit).Find(&indicators).Error
	if err != nil {
		return nil, fmt.Errorf("查询财务指标失败: %w", err)
	}
	return indicators, nil
}

func (f *FinancialDB) CountByStockCode(code string) (int64, error) {
	var count int64
	err := f.db.Model(&model.FinancialIndicator{}).Where("stock_code = ?", code).Count(&count).Error
	return count, err
}
