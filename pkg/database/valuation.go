package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"StockScreener/pkg/model"
)

type ValuationDB struct {
	db *gorm.DB
}

func (d *DB) Valuation() *ValuationDB {
	return &ValuationDB{db: d.db}
}

func (v *ValuationDB) ExistsByID(id string) (bool, error) {
	var count int64
	err := v.db.Model(&model.StockValuation{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetByStockCode 按股票代码查询估值指标，日期倒序。
// startDate/endDate 为nil时不限制区间。
func (v *ValuationDB) GetByStockCode(code string, startDate, endDate *time.Time, limit int) ([]*model.StockValuation, error) {
	query := v.db.Where("stock_code = ?", code)
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var valuations []*model.StockValuation
	err := query.Order("date DESC").Limit(limit).Find(&valuations).Error
	if err != nil {
		return nil, fmt.Errorf("查询估值指标失败: %w", err)
	}
	return valuations, nil
}

func (v *ValuationDB) CountByStockCode(code string) (int64, error) {
	var count int64
	err := v.db.Model(&model.StockValuation{}).Where("stock_code = ?", code).Count(&count).Error
	return count, err
}
