package pipeline

import (
	"sort"
	"strings"
	"time"

	"StockScreener/pkg/logger"
	"StockScreener/pkg/provider"
)

// MonthlyFirst 按自然月降采样：每个月份只保留日期最早的一条观测。
// 输入顺序不限，输出按日期升序。日期无法解析的观测记录告警后丢弃。
func MonthlyFirst(records []provider.ValuationRecord) []provider.ValuationRecord {
	type dated struct {
		date   time.Time
		record provider.ValuationRecord
	}

	byMonth := make(map[string]dated)
	for _, record := range records {
		d, err := parseDay(record.TradeDate)
		if err != nil {
			logger.Get().Warnf("估值数据的日期格式不正确，跳过该条记录: %q", record.TradeDate)
			continue
		}

		key := d.Format("2006-01")
		current, ok := byMonth[key]
		if !ok || d.Before(current.date) {
			byMonth[key] = dated{date: d, record: record}
		}
	}

	selected := make([]dated, 0, len(byMonth))
	for _, d := range byMonth {
		selected = append(selected, d)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].date.Before(selected[j].date)
	})

	result := make([]provider.ValuationRecord, 0, len(selected))
	for _, d := range selected {
		result = append(result, d.record)
	}
	return result
}

// parseDay 解析 YYYY-MM-DD 格式的日期，容忍带时间后缀的形式
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}
