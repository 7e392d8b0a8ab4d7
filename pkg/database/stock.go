package database

import (
	"fmt"

	"gorm.io/gorm"

	"StockScreener/pkg/model"
)

type StockDB struct {
	db *gorm.DB
}

func (d *DB) Stock() *StockDB {
	return &StockDB{db: d.db}
}

func (s *StockDB) Create(stock *model.Stock) error {
	return s.db.Create(stock).Error
}

func (s *StockDB) Save(stock *model.Stock) error {
	return s.db.Save(stock).Error
}

func (s *StockDB) GetByCode(code string) (*model.Stock, error) {
	var stock model.Stock
	err := s.db.First(&stock, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("股票 %s 不存在: %w", code, err)
		}
		return nil, fmt.Errorf("获取股票信息失败: %w", err)
	}
	return &stock, nil
}

func (s *StockDB) GetAll() ([]*model.Stock, error) {
	var stocks []*model.Stock
	err := s.db.Order("code ASC").Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("查询股票列表失败: %w", err)
	}
	return stocks, nil
}

// GetWithoutFinancials 查询还没有任何财务指标的股票，用于增量采集
func (s *StockDB) GetWithoutFinancials() ([]*model.Stock, error) {
	var stocks []*model.Stock
	err := s.db.
		Select("stock_basic.*").
		Joins("LEFT JOIN stock_financials ON stock_financials.stock_code = stock_basic.code").
		Where("stock_financials.id IS NULL").
		Order("stock_basic.code ASC").
		Find(&stocks).Error

	if err != nil {
		return nil, fmt.Errorf("查询缺少财务指标的股票失败: %w", err)
	}
	return stocks, nil
}

// GetWithoutValuations 查询还没有任何估值数据的股票，用于增量采集
func (s *StockDB) GetWithoutValuations() ([]*model.Stock, error) {
	var stocks []*model.Stock
	subQuery := s.db.Model(&model.StockValuation{}).Distinct("stock_code")
	err := s.db.
		Where("code NOT IN (?)", subQuery).
		Order("code ASC").
		Find(&stocks).Error

	if err != nil {
		return nil, fmt.Errorf("查询缺少估值数据的股票失败: %w", err)
	}
	return stocks, nil
}
