// Package pipeline 行情参考数据的采集与入库。
// 拉取、规范化、对账写入按股票顺序执行，一只股票一笔事务，
// 单只股票的失败不会中断整轮采集。
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"StockScreener/pkg/convert"
	"StockScreener/pkg/database"
	"StockScreener/pkg/logger"
	"StockScreener/pkg/model"
	"StockScreener/pkg/provider"
	"StockScreener/pkg/retry"
)

// reportDateKey 财务摘要中的报告期字段，按原样透传不参与数值转换
const reportDateKey = "报告期"

// Collector 数据采集器
type Collector struct {
	provider provider.DataProvider
	db       *database.DB
	policy   retry.Policy
	pace     time.Duration       // 相邻股票之间的间隔
	sleep    func(time.Duration) // 测试中可替换
}

// NewCollector 创建数据采集器
func NewCollector(p provider.DataProvider, db *database.DB, policy retry.Policy, pace time.Duration) *Collector {
	return &Collector{
		provider: p,
		db:       db,
		policy:   policy,
		pace:     pace,
		sleep:    time.Sleep,
	}
}

// CollectStockList 收集股票列表：首次见到的股票新建，
// 已有股票的描述字段整体刷新（最后写入生效）。
func (c *Collector) CollectStockList() error {
	log := logger.Get()
	runID := uuid.New().String()

	log.Infof("开始收集股票列表 run=%s", runID)
	stocks, err := c.provider.ListStocks()
	if err != nil {
		return fmt.Errorf("获取股票列表失败: %w", err)
	}
	log.Infof("获取到 %d 只股票", len(stocks))

	for _, brief := range stocks {
		detail, err := c.provider.GetStockDetail(brief.Code)
		if err != nil {
			log.Warnf("无法获取股票 %s 的详细信息: %v", brief.Code, err)
			continue
		}
		if err := c.upsertStock(detail); err != nil {
			log.Errorf("保存股票 %s 失败: %v", detail.Code, err)
		}
	}

	log.Infof("股票列表收集完成 run=%s，共 %d 条记录", runID, len(stocks))
	return nil
}

func (c *Collector) upsertStock(detail *provider.StockDetail) error {
	log := logger.Get()
	stockDB := c.db.Stock()

	listingDate := parseListingDate(detail.Code, detail.ListDate)
	var industry *string
	if detail.Industry != "" {
		industry = &detail.Industry
	}

	existing, err := stockDB.GetByCode(detail.Code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stock := &model.Stock{
			Code:        detail.Code,
			Name:        detail.Name,
			Industry:    industry,
			Market:      detail.Market,
			ListingDate: listingDate,
		}
		if err := stockDB.Create(stock); err != nil {
			return err
		}
		log.Infof("添加新股票: %s - %s (%s)", detail.Code, detail.Name, detail.Industry)
		return nil
	}

	existing.Name = detail.Name
	existing.Industry = industry
	existing.Market = detail.Market
	if listingDate != nil {
		existing.ListingDate = listingDate
	}
	if err := stockDB.Save(existing); err != nil {
		return err
	}
	log.Infof("更新股票信息: %s - %s (%s)", detail.Code, detail.Name, detail.Industry)
	return nil
}

// parseListingDate 解析YYYYMMDD格式的上市日期，其他形式告警后置空
func parseListingDate(code, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if len(raw) != 8 {
		logger.Get().Warnf("股票 %s 的上市日期格式不正确: %s", code, raw)
		return nil
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		logger.Get().Warnf("无法解析股票 %s 的上市日期: %s, 错误: %v", code, raw, err)
		return nil
	}
	return &t
}

// CollectFinancials 收集财务指标，只处理还没有任何财务指标的股票
func (c *Collector) CollectFinancials() error {
	log := logger.Get()
	runID := uuid.New().String()

	stocks, err := c.db.Stock().GetWithoutFinancials()
	if err != nil {
		return err
	}
	log.Infof("开始收集财务指标 run=%s，找到 %d 只没有财务指标的股票", runID, len(stocks))

	for _, stock := range stocks {
		if err := c.processStockFinancials(stock); err != nil {
			log.Errorf("处理股票 %s - %s 的财务指标时出错: %v", stock.Code, stock.Name, err)
		}
	}

	log.Infof("财务指标收集完成 run=%s", runID)
	return nil
}

// CollectFinancialsByCode 收集指定股票的财务指标
func (c *Collector) CollectFinancialsByCode(code string) error {
	stock, err := c.db.Stock().GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnf("股票 %s 不存在", code)
			return nil
		}
		return err
	}
	return c.processStockFinancials(stock)
}

// processStockFinancials 拉取一只股票的财务摘要并按报告期对账写入。
// 已存在的报告期跳过，整只股票在一笔事务内提交。
func (c *Collector) processStockFinancials(stock *model.Stock) error {
	log := logger.Get()

	label := fmt.Sprintf("股票 %s - %s 的财务指标", stock.Code, stock.Name)
	records, err := retry.Fetch(c.policy, label, func() ([]map[string]interface{}, error) {
		return c.provider.GetFinancialAbstract(stock.Code)
	})
	if err != nil || len(records) == 0 {
		// 拉取失败或无数据都只影响当前股票，日志已在retry中记录
		return nil
	}
	log.Infof("获取到%s %d 期", label, len(records))

	tx := c.db.Gorm().Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}

	inserted := 0
	for _, record := range records {
		converted := convert.Record(record, reportDateKey)

		reportDateStr := convert.OptString(converted, reportDateKey)
		if reportDateStr == "" {
			log.Warnf("股票 %s - %s 某期财务指标缺少报告期，跳过该条记录", stock.Code, stock.Name)
			continue
		}
		reportDate, err := parseDay(reportDateStr)
		if err != nil {
			log.Warnf("股票 %s - %s 的报告期格式不正确: %s", stock.Code, stock.Name, reportDateStr)
			continue
		}

		indicator := buildFinancial(stock.Code, reportDate, converted)

		var count int64
		if err := tx.Model(&model.FinancialIndicator{}).Where("id = ?", indicator.ID).Count(&count).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("查询已有财务指标失败: %w", err)
		}
		if count > 0 {
			log.Infof("股票 %s 的报告期 %s 财务指标已存在，跳过", stock.Code, reportDate.Format("2006-01-02"))
			continue
		}

		if err := tx.Create(indicator).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("写入财务指标失败: %w", err)
		}
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	log.Infof("股票 %s - %s 的财务指标处理完成，新增 %d 条", stock.Code, stock.Name, inserted)
	return nil
}

// buildFinancial 将规范化后的财务摘要记录映射为指标模型
func buildFinancial(code string, reportDate time.Time, record map[string]interface{}) *model.FinancialIndicator {
	return &model.FinancialIndicator{
		ID:         fmt.Sprintf("%s_%s", code, reportDate.Format("2006-01-02")),
		StockCode:  code,
		ReportDate: reportDate,

		NetProfit:          convert.OptInt64(record, "净利润"),
		NetProfitGrowth:    convert.OptFloat(record, "净利润同比增长率"),
		NonNetProfit:       convert.OptInt64(record, "扣非净利润"),
		NonNetProfitGrowth: convert.OptFloat(record, "扣非净利润同比增长率"),
		TotalRevenue:       convert.OptInt64(record, "营业总收入"),
		TotalRevenueGrowth: convert.OptFloat(record, "营业总收入同比增长率"),

		EPS:                    convert.OptFloat(record, "基本每股收益"),
		BPS:                    convert.OptFloat(record, "每股净资产"),
		CapitalReservePerShare: convert.OptFloat(record, "每股资本公积金"),
		UndistProfitPerShare:   convert.OptFloat(record, "每股未分配利润"),
		OCFPS:                  convert.OptFloat(record, "每股经营现金流"),

		NetProfitMargin:   convert.OptFloat(record, "销售净利率"),
		GrossProfitMargin: convert.OptFloat(record, "销售毛利率"),
		ROE:               convert.OptFloat(record, "净资产收益率"),
		ROEDiluted:        convert.OptFloat(record, "净资产收益率-摊薄"),

		OperatingCycle:         convert.OptFloat(record, "营业周期"),
		InventoryTurnover:      convert.OptFloat(record, "存货周转率"),
		InventoryTurnoverDays:  convert.OptFloat(record, "存货周转天数"),
		ReceivableTurnoverDays: convert.OptFloat(record, "应收账款周转天数"),

		CurrentRatio:           convert.OptFloat(record, "流动比率"),
		QuickRatio:             convert.OptFloat(record, "速动比率"),
		ConservativeQuickRatio: convert.OptFloat(record, "保守速动比率"),
		EquityRatio:            convert.OptFloat(record, "产权比率"),
		DebtRatio:              convert.OptFloat(record, "资产负债率"),
	}
}

// CollectValuations 收集估值指标，只处理还没有任何估值数据的股票。
// 相邻股票之间加入固定间隔，避免请求过于频繁。
func (c *Collector) CollectValuations() error {
	log := logger.Get()
	runID := uuid.New().String()

	stocks, err := c.db.Stock().GetWithoutValuations()
	if err != nil {
		return err
	}
	log.Infof("开始收集估值指标 run=%s，找到 %d 只没有估值数据的股票", runID, len(stocks))

	for i, stock := range stocks {
		if i > 0 && c.pace > 0 {
			c.sleep(c.pace)
		}
		log.Infof("处理股票 %s - %s", stock.Code, stock.Name)
		if err := c.processStockValuations(stock); err != nil {
			log.Errorf("处理股票 %s - %s 的估值指标时出错: %v", stock.Code, stock.Name, err)
		}
	}

	log.Infof("估值指标收集完成 run=%s", runID)
	return nil
}

// CollectValuationByCode 收集指定股票的估值指标
func (c *Collector) CollectValuationByCode(code string) error {
	stock, err := c.db.Stock().GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnf("股票 %s 不存在", code)
			return nil
		}
		return err
	}
	return c.processStockValuations(stock)
}

// processStockValuations 拉取一只股票的每日估值序列，按月降采样后对账写入。
// 已存在的日期跳过，整只股票在一笔事务内提交。
func (c *Collector) processStockValuations(stock *model.Stock) error {
	log := logger.Get()

	label := fmt.Sprintf("股票 %s - %s 的估值指标", stock.Code, stock.Name)
	records, err := retry.Fetch(c.policy, label, func() ([]provider.ValuationRecord, error) {
		return c.provider.GetValuationSeries(stock.Code)
	})
	if err != nil || len(records) == 0 {
		return nil
	}

	monthly := MonthlyFirst(records)
	log.Infof("获取到%s %d 条，降采样后 %d 个月份", label, len(records), len(monthly))

	tx := c.db.Gorm().Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}

	inserted := 0
	for _, record := range monthly {
		date, err := parseDay(record.TradeDate)
		if err != nil {
			log.Warnf("股票 %s 的估值日期格式不正确: %s", stock.Code, record.TradeDate)
			continue
		}

		valuation := &model.StockValuation{
			ID:               fmt.Sprintf("%s_%s", stock.Code, date.Format("2006-01-02")),
			StockCode:        stock.Code,
			Date:             date,
			PeTTM:            record.PeTTM,
			Pb:               record.Pb,
			PsTTM:            record.PsTTM,
			DividendYieldTTM: record.DividendYieldTTM,
		}

		var count int64
		if err := tx.Model(&model.StockValuation{}).Where("id = ?", valuation.ID).Count(&count).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("查询已有估值指标失败: %w", err)
		}
		if count > 0 {
			log.Infof("股票 %s 的估值指标已存在，日期：%s", stock.Code, date.Format("2006-01-02"))
			continue
		}

		if err := tx.Create(valuation).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("写入估值指标失败: %w", err)
		}
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	log.Infof("股票 %s - %s 的估值指标处理完成，新增 %d 条", stock.Code, stock.Name, inserted)
	return nil
}
